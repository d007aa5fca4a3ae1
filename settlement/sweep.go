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

// SettlementSweep confirms every mobile money payment whose review window
// has elapsed. Each payment is settled in its own ledger commit behind a
// conditional status update, so a sweep that races a manual confirm or a
// duplicate sweep skips the payment instead of settling it twice.
func (s *settlementServiceImpl) SettlementSweep(
	ctx context.Context,
	req *connect.Request[treasury_iface.SettlementSweepRequest],
) (*connect.Response[treasury_iface.SettlementSweepResponse], error) {
	var err error
	result := treasury_iface.SettlementSweepResponse{}

	db := s.db.WithContext(ctx)
	now := time.Now()

	var dueIDs []uint
	err = db.
		Model(&treasury_model.Payment{}).
		Where("status = ?", treasury_model.PaymentPendingReview).
		Where("auto_confirm_at is not null").
		Where("auto_confirm_at <= ?", now).
		Order("id asc").
		Pluck("id", &dueIDs).
		Error

	if err != nil {
		return connect.NewResponse(&result), err
	}

	for _, payID := range dueIDs {
		confirmed, err := s.sweepOne(ctx, db, payID, now)
		if err != nil {
			slog.Error("sweep confirm failed", slog.Any("err", err), slog.Any("payment_id", payID))
			continue
		}
		if confirmed {
			result.ConfirmedCount += 1
		}
	}

	return connect.NewResponse(&result), nil
}

func (s *settlementServiceImpl) sweepOne(ctx context.Context, db *gorm.DB, payID uint, now time.Time) (bool, error) {
	confirmed := false
	err := treasury_core.OpenLedger(ctx, db, func(tx *gorm.DB, ledger treasury_core.LedgerManage) error {
		confirmed = false
		res := tx.
			Model(&treasury_model.Payment{}).
			Where("id = ?", payID).
			Where("status = ?", treasury_model.PaymentPendingReview).
			Updates(map[string]interface{}{
				"status":       treasury_model.PaymentConfirmed,
				"confirmed_at": now,
			})

		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return treasury_core.ErrSkipLedger
		}

		var payment treasury_model.Payment
		err := tx.
			Model(&treasury_model.Payment{}).
			First(&payment, payID).
			Error

		if err != nil {
			return err
		}

		_, err = settleEntry(ledger, &payment, payment.RecordedByID)
		if err != nil {
			return err
		}

		confirmed = true
		return nil
	})

	return confirmed, err
}
