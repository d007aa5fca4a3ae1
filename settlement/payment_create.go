package settlement

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/pdcgo/treasury_service/treasury_core"
	"github.com/pdcgo/treasury_service/treasury_iface"
	"github.com/pdcgo/treasury_service/treasury_model"
	"gorm.io/gorm"
)

// PaymentCreate records an amount awaiting settlement. No pool is touched
// here, cash starts in pending_deposit and mobile money in pending_review
// with the auto confirm deadline persisted on the row.
func (s *settlementServiceImpl) PaymentCreate(
	ctx context.Context,
	req *connect.Request[treasury_iface.PaymentCreateRequest],
) (*connect.Response[treasury_iface.PaymentCreateResponse], error) {
	var err error
	result := treasury_iface.PaymentCreateResponse{}
	pay := req.Msg

	agent := s.auth.AuthIdentityFromHeader(req.Header()).Identity()

	kind := treasury_model.PaymentKind(pay.Kind)
	if !kind.Valid() {
		return connect.NewResponse(&result), &treasury_core.ValidationError{
			Field:  "kind",
			Reason: "must be student_fee or expense",
		}
	}

	method := treasury_model.PaymentMethod(pay.Method)
	if !method.Valid() {
		return connect.NewResponse(&result), &treasury_core.ValidationError{
			Field:  "method",
			Reason: "must be cash or mobile_money",
		}
	}

	if pay.Amount <= 0 {
		return connect.NewResponse(&result), &treasury_core.ValidationError{
			Field:  "amount",
			Reason: "must be positive",
		}
	}

	payment := treasury_model.Payment{
		Kind:         kind,
		Method:       method,
		Amount:       pay.Amount,
		StudentID:    pay.StudentId,
		Desc:         pay.Desc,
		RecordedByID: agent.IdentityID(),
		CreatedAt:    time.Now(),
	}

	switch method {
	case treasury_model.CashMethod:
		payment.Status = treasury_model.PaymentPendingDeposit
	case treasury_model.MobileMoneyMethod:
		payment.Status = treasury_model.PaymentPendingReview
		deadline := time.Now().Add(AutoConfirmDelay)
		payment.AutoConfirmAt = &deadline
	}

	db := s.db.WithContext(ctx)
	err = db.Transaction(func(tx *gorm.DB) error {
		return tx.Save(&payment).Error
	})

	if err != nil {
		return connect.NewResponse(&result), err
	}

	if payment.AutoConfirmAt != nil && s.scheduler != nil {
		// best effort, the recurring sweep covers a lost task
		err = s.scheduler.Schedule(ctx, *payment.AutoConfirmAt)
		if err != nil {
			slog.Warn("sweep schedule failed",
				slog.Uint64("payment_id", uint64(payment.ID)),
				slog.String("err", err.Error()),
			)
		}
	}

	result.PaymentId = payment.ID
	result.Status = string(payment.Status)
	if payment.AutoConfirmAt != nil {
		result.AutoConfirmAt = payment.AutoConfirmAt.UnixMicro()
	}

	return connect.NewResponse(&result), nil
}
