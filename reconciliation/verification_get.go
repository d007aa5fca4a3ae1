package reconciliation

import (
	"context"
	"fmt"
	"time"

	"connectrpc.com/connect"
	"github.com/pdcgo/treasury_service/treasury_core"
	"github.com/pdcgo/treasury_service/treasury_iface"
	"github.com/pdcgo/treasury_service/treasury_model"
)

// VerificationGet implements treasury_iface.ReconciliationService.
func (r *reconServiceImpl) VerificationGet(
	ctx context.Context,
	req *connect.Request[treasury_iface.VerificationGetRequest],
) (*connect.Response[treasury_iface.VerificationGetResponse], error) {
	var err error
	result := treasury_iface.VerificationGetResponse{}
	pay := req.Msg

	pool := treasury_core.CashPool(pay.Pool)
	if !pool.Valid() {
		return connect.NewResponse(&result), &treasury_core.ValidationError{
			Field:  "pool",
			Reason: fmt.Sprintf("unknown pool %s", pay.Pool),
		}
	}

	day := time.UnixMicro(pay.VerificationDate).Local()
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	var verification treasury_model.DailyVerification
	err = r.db.
		WithContext(ctx).
		Model(&treasury_model.DailyVerification{}).
		Where("verification_date = ?", day).
		Where("pool = ?", pool).
		Limit(1).
		Find(&verification).
		Error

	if err != nil {
		return connect.NewResponse(&result), err
	}
	if verification.ID == 0 {
		return connect.NewResponse(&result), &treasury_core.PreconditionError{
			Reason: fmt.Sprintf("pool %s not verified for %s", pool, day.Format("2006-01-02")),
		}
	}

	result.Verification = verification.Iface()
	return connect.NewResponse(&result), nil
}
