package reconciliation

import (
	"context"
	"fmt"
	"time"

	"connectrpc.com/connect"
	"github.com/pdcgo/treasury_service/treasury_core"
	"github.com/pdcgo/treasury_service/treasury_iface"
	"github.com/pdcgo/treasury_service/treasury_model"
	"gorm.io/gorm"
)

// VerificationCreate records a physical count of a pool for one day and
// compares it against what the ledger implies at end of that day. A clean
// count approves immediately, any discrepancy flags the day for review and
// needs an explanation up front.
func (r *reconServiceImpl) VerificationCreate(
	ctx context.Context,
	req *connect.Request[treasury_iface.VerificationCreateRequest],
) (*connect.Response[treasury_iface.VerificationCreateResponse], error) {
	var err error
	result := treasury_iface.VerificationCreateResponse{}
	pay := req.Msg

	agent := r.auth.AuthIdentityFromHeader(req.Header()).Identity()

	pool := treasury_core.CashPool(pay.Pool)
	if !pool.Valid() {
		return connect.NewResponse(&result), &treasury_core.ValidationError{
			Field:  "pool",
			Reason: fmt.Sprintf("unknown pool %s", pay.Pool),
		}
	}
	if pay.CountedBalance < 0 {
		return connect.NewResponse(&result), &treasury_core.ValidationError{
			Field:  "counted_balance",
			Reason: "negative",
		}
	}

	day := time.Now()
	if pay.VerificationDate != 0 {
		day = time.UnixMicro(pay.VerificationDate).Local()
	}
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	db := r.db.WithContext(ctx)
	err = db.Transaction(func(tx *gorm.DB) error {
		var existing treasury_model.DailyVerification
		err = tx.
			Model(&treasury_model.DailyVerification{}).
			Where("verification_date = ?", day).
			Where("pool = ?", pool).
			Limit(1).
			Find(&existing).
			Error

		if err != nil {
			return err
		}
		if existing.ID != 0 {
			return &treasury_core.PreconditionError{
				Reason: fmt.Sprintf("pool %s already verified for %s", pool, day.Format("2006-01-02")),
			}
		}

		expected, err := treasury_core.BalanceAsOf(tx, pool, day.Add(24*time.Hour))
		if err != nil {
			return err
		}

		discrepancy := pay.CountedBalance - expected
		status := treasury_model.VerificationApproved
		if discrepancy != 0 {
			if pay.Explanation == "" {
				return &treasury_core.ValidationError{
					Field:  "explanation",
					Reason: fmt.Sprintf("required, count is off by %+d", discrepancy),
				}
			}
			status = treasury_model.VerificationFlagged
		}

		verification := treasury_model.DailyVerification{
			VerificationDate: day,
			Pool:             pool,
			ExpectedBalance:  expected,
			CountedBalance:   pay.CountedBalance,
			Discrepancy:      discrepancy,
			Status:           status,
			Explanation:      pay.Explanation,
			VerifiedByID:     agent.IdentityID(),
		}

		err = tx.Save(&verification).Error
		if err != nil {
			return err
		}

		result.VerificationId = verification.ID
		result.ExpectedBalance = expected
		result.Discrepancy = discrepancy
		result.Status = string(status)
		return nil
	})

	return connect.NewResponse(&result), err
}
