package settlement

import (
	"context"
	"fmt"
	"time"

	"connectrpc.com/connect"
	"github.com/pdcgo/treasury_service/treasury_core"
	"github.com/pdcgo/treasury_service/treasury_iface"
	"github.com/pdcgo/treasury_service/treasury_model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PaymentConfirm settles a payment manually. Confirmation is the only
// point where money reaches a pool, for the exact recorded amount.
func (s *settlementServiceImpl) PaymentConfirm(
	ctx context.Context,
	req *connect.Request[treasury_iface.PaymentConfirmRequest],
) (*connect.Response[treasury_iface.PaymentConfirmResponse], error) {
	var err error
	result := treasury_iface.PaymentConfirmResponse{}
	pay := req.Msg

	agent := s.auth.AuthIdentityFromHeader(req.Header()).Identity()

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

		if !payment.Status.CanTransition(treasury_model.PaymentConfirmed) {
			return &treasury_core.InvalidTransitionError{
				Entity: fmt.Sprintf("payment %d", payment.ID),
				From:   string(payment.Status),
				To:     string(treasury_model.PaymentConfirmed),
			}
		}

		entry, err := settleEntry(ledger, &payment, agent.IdentityID())
		if err != nil {
			return err
		}

		payment.Status = treasury_model.PaymentConfirmed
		payment.ConfirmedByID = agent.IdentityID()
		payment.ConfirmedAt = time.Now()
		err = tx.Save(&payment).Error
		if err != nil {
			return err
		}

		result.EntryId = entry.ID
		result.Status = string(payment.Status)
		return nil
	})

	return connect.NewResponse(&result), err
}

// settleEntry books the settlement movement of a payment, student fees
// credit the pool the money arrived in, expenses debit it.
func settleEntry(ledger treasury_core.LedgerManage, payment *treasury_model.Payment, userID uint) (*treasury_core.LedgerEntry, error) {
	ref := treasury_core.NewRefID(&treasury_core.RefData{
		RefType: treasury_core.PaymentRef,
		ID:      payment.ID,
	})

	apply := ledger.
		NewApplyEntry(userID).
		Type(payment.SettleEntryType()).
		Ref(ref).
		Desc(fmt.Sprintf("settle payment %s", ref)).
		Payment(payment.ID).
		Student(payment.StudentID)

	if payment.Kind == treasury_model.ExpenseKind {
		apply.From(payment.SettlePool(), payment.Amount)
	} else {
		apply.To(payment.SettlePool(), payment.Amount)
	}

	err := apply.Commit().Err()
	if err != nil {
		return nil, err
	}

	return apply.Entry(), nil
}
