package settlement

import (
	"context"
	"fmt"

	"connectrpc.com/connect"
	"github.com/pdcgo/treasury_service/treasury_core"
	"github.com/pdcgo/treasury_service/treasury_iface"
	"github.com/pdcgo/treasury_service/treasury_model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PaymentFail abandons a payment from any non-terminal state. Nothing was
// credited yet so no compensating entry is needed.
func (s *settlementServiceImpl) PaymentFail(
	ctx context.Context,
	req *connect.Request[treasury_iface.PaymentFailRequest],
) (*connect.Response[treasury_iface.PaymentFailResponse], error) {
	var err error
	result := treasury_iface.PaymentFailResponse{}
	pay := req.Msg

	agent := s.auth.AuthIdentityFromHeader(req.Header()).Identity()

	if pay.Reason == "" {
		return connect.NewResponse(&result), &treasury_core.ValidationError{
			Field:  "reason",
			Reason: "missing",
		}
	}

	db := s.db.WithContext(ctx)
	err = db.Transaction(func(tx *gorm.DB) error {
		var payment treasury_model.Payment
		err = tx.
			Clauses(clause.Locking{
				Strength: "UPDATE",
			}).
			Model(&treasury_model.Payment{}).
			First(&payment, pay.PaymentId).
			Error

		if err != nil {
			return err
		}

		if !payment.Status.CanTransition(treasury_model.PaymentFailed) {
			return &treasury_core.InvalidTransitionError{
				Entity: fmt.Sprintf("payment %d", payment.ID),
				From:   string(payment.Status),
				To:     string(treasury_model.PaymentFailed),
			}
		}

		payment.Status = treasury_model.PaymentFailed
		payment.FailReason = pay.Reason
		payment.ReviewedByID = agent.IdentityID()
		err = tx.Save(&payment).Error
		if err != nil {
			return err
		}

		result.Status = string(payment.Status)
		return nil
	})

	return connect.NewResponse(&result), err
}
