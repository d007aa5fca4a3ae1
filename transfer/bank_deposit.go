package transfer

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

// BankDeposit banks counted cash from the safe. One bank_deposit ledger
// entry, the bank transfer row, one cash deposit per payment and every
// payment moved pending_deposit -> deposited, all in one commit. A counted
// amount that disagrees with the payment sum is rejected, never absorbed.
func (t *transferServiceImpl) BankDeposit(
	ctx context.Context,
	req *connect.Request[treasury_iface.BankDepositRequest],
) (*connect.Response[treasury_iface.BankDepositResponse], error) {
	var err error
	result := treasury_iface.BankDepositResponse{}
	pay := req.Msg

	agent := t.auth.AuthIdentityFromHeader(req.Header()).Identity()

	if len(pay.PaymentIds) == 0 {
		return connect.NewResponse(&result), &treasury_core.ValidationError{
			Field:  "payment_ids",
			Reason: "empty",
		}
	}
	if pay.CountedDepositAmount <= 0 {
		return connect.NewResponse(&result), &treasury_core.ValidationError{
			Field:  "counted_deposit_amount",
			Reason: "must be positive",
		}
	}
	if pay.BankReference == "" {
		return connect.NewResponse(&result), &treasury_core.ValidationError{
			Field:  "bank_reference",
			Reason: "missing",
		}
	}

	transferDate := time.UnixMicro(pay.TransferAt).Local()
	if pay.TransferAt == 0 {
		transferDate = time.Now()
	}

	db := t.db.WithContext(ctx)
	var snap *treasury_core.TreasurySnapshot
	err = treasury_core.OpenLedger(ctx, db, func(tx *gorm.DB, ledger treasury_core.LedgerManage) error {
		snap = ledger.Snapshot()

		var payments []*treasury_model.Payment
		err = tx.
			Clauses(clause.Locking{
				Strength: "UPDATE",
			}).
			Model(&treasury_model.Payment{}).
			Where("id IN ?", pay.PaymentIds).
			Find(&payments).
			Error

		if err != nil {
			return err
		}

		if len(payments) != len(pay.PaymentIds) {
			return fmt.Errorf("payment not found, requested %d got %d", len(pay.PaymentIds), len(payments))
		}

		var sum int64
		for _, payment := range payments {
			if payment.Status != treasury_model.PaymentPendingDeposit {
				return &treasury_core.InvalidTransitionError{
					Entity: fmt.Sprintf("payment %d", payment.ID),
					From:   string(payment.Status),
					To:     string(treasury_model.PaymentDeposited),
				}
			}
			sum += payment.Amount
		}

		if sum != pay.CountedDepositAmount {
			return &treasury_core.ValidationError{
				Field:  "counted_deposit_amount",
				Reason: fmt.Sprintf("counted %d but pending payments sum to %d", pay.CountedDepositAmount, sum),
			}
		}

		transfer := treasury_model.BankTransfer{
			Amount:        pay.CountedDepositAmount,
			TransferDate:  transferDate,
			BankReference: pay.BankReference,
			RecordedByID:  agent.IdentityID(),
			CreatedAt:     time.Now(),
		}

		err = tx.Save(&transfer).Error
		if err != nil {
			return err
		}

		ref := treasury_core.NewRefID(&treasury_core.RefData{
			RefType: treasury_core.BankDepositRef,
			ID:      transfer.ID,
		})

		entry := ledger.
			NewApplyEntry(agent.IdentityID()).
			Type(treasury_core.BankDepositEntry).
			To(treasury_core.BankPool, pay.CountedDepositAmount).
			From(treasury_core.SafePool, pay.CountedDepositAmount).
			Ref(ref).
			Desc(fmt.Sprintf("bank deposit %s", pay.BankReference)).
			Commit()

		err = entry.Err()
		if err != nil {
			return err
		}

		now := time.Now()
		for _, payment := range payments {
			deposit := treasury_model.CashDeposit{
				PaymentID:      payment.ID,
				BankTransferID: transfer.ID,
				DepositedAt:    now,
			}

			err = tx.Save(&deposit).Error
			if err != nil {
				return err
			}

			payment.Status = treasury_model.PaymentDeposited
			err = tx.Save(payment).Error
			if err != nil {
				return err
			}
		}

		result.BankTransferId = transfer.ID
		result.EntryId = entry.Entry().ID
		return nil
	})

	if err != nil {
		return connect.NewResponse(&result), err
	}

	result.Balances = snap.Iface()
	return connect.NewResponse(&result), nil
}
