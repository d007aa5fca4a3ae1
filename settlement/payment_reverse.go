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

// PaymentReverse undoes a confirmed payment. The ledger is append-only so
// the reversal is a compensating adjustment entry for the original
// amount, never an edit.
func (s *settlementServiceImpl) PaymentReverse(
	ctx context.Context,
	req *connect.Request[treasury_iface.PaymentReverseRequest],
) (*connect.Response[treasury_iface.PaymentReverseResponse], error) {
	var err error
	result := treasury_iface.PaymentReverseResponse{}
	pay := req.Msg

	agent := s.auth.AuthIdentityFromHeader(req.Header()).Identity()

	if pay.Reason == "" {
		return connect.NewResponse(&result), &treasury_core.ValidationError{
			Field:  "reason",
			Reason: "missing",
		}
	}

	db := s.db.WithContext(ctx)
	err = treasury_core.OpenLedger(ctx, db, func(tx *gorm.DB, ledger treasury_core.LedgerManage) error {
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

		if !payment.Status.CanTransition(treasury_model.PaymentReversed) {
			return &treasury_core.InvalidTransitionError{
				Entity: fmt.Sprintf("payment %d", payment.ID),
				From:   string(payment.Status),
				To:     string(treasury_model.PaymentReversed),
			}
		}

		ref := treasury_core.NewRefID(&treasury_core.RefData{
			RefType: treasury_core.ReversalRef,
			ID:      payment.ID,
		})

		apply := ledger.
			NewApplyEntry(agent.IdentityID()).
			Type(treasury_core.AdjustmentEntry).
			Ref(ref).
			Desc(fmt.Sprintf("reverse payment %d", payment.ID)).
			Notes(pay.Reason).
			Payment(payment.ID).
			Student(payment.StudentID)

		if payment.Kind == treasury_model.ExpenseKind {
			apply.To(payment.SettlePool(), payment.Amount)
		} else {
			apply.From(payment.SettlePool(), payment.Amount)
		}

		err = apply.Commit().Err()
		if err != nil {
			return err
		}

		payment.Status = treasury_model.PaymentReversed
		payment.ReviewedByID = agent.IdentityID()
		payment.FailReason = pay.Reason
		err = tx.Save(&payment).Error
		if err != nil {
			return err
		}

		result.EntryId = apply.Entry().ID
		result.Status = string(payment.Status)
		return nil
	})

	return connect.NewResponse(&result), err
}
