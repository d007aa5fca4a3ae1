package transfer

import (
	"context"
	"fmt"
	"time"

	"connectrpc.com/connect"
	"github.com/pdcgo/treasury_service/treasury_core"
	"github.com/pdcgo/treasury_service/treasury_iface"
	"gorm.io/gorm"
)

// DailyOpening moves the float from the safe to the registry drawer. The
// registry must be closed (zero). When the counted safe balance differs
// from the recorded one a second adjustment entry corrects the safe, both
// rows commit as one unit.
func (t *transferServiceImpl) DailyOpening(
	ctx context.Context,
	req *connect.Request[treasury_iface.DailyOpeningRequest],
) (*connect.Response[treasury_iface.DailyOpeningResponse], error) {
	var err error
	result := treasury_iface.DailyOpeningResponse{}
	pay := req.Msg

	agent := t.auth.AuthIdentityFromHeader(req.Header()).Identity()

	if pay.FloatAmount <= 0 {
		return connect.NewResponse(&result), &treasury_core.ValidationError{
			Field:  "float_amount",
			Reason: "must be positive",
		}
	}
	if pay.CountedSafeBalance < 0 {
		return connect.NewResponse(&result), &treasury_core.ValidationError{
			Field:  "counted_safe_balance",
			Reason: "must not be negative",
		}
	}

	db := t.db.WithContext(ctx)
	var snap *treasury_core.TreasurySnapshot
	err = treasury_core.OpenLedger(ctx, db, func(tx *gorm.DB, ledger treasury_core.LedgerManage) error {
		// closure may re-run on a version conflict
		result.EntryIds = nil
		snap = ledger.Snapshot()

		if snap.RegistryBalance != 0 {
			return &treasury_core.PreconditionError{
				Reason: fmt.Sprintf("registry not closed, balance %d", snap.RegistryBalance),
			}
		}

		if pay.CountedSafeBalance < pay.FloatAmount {
			return &treasury_core.InsufficientFundsError{
				Pool:      treasury_core.SafePool,
				Requested: pay.FloatAmount,
				Available: pay.CountedSafeBalance,
			}
		}

		discrepancy := pay.CountedSafeBalance - snap.SafeBalance
		result.Discrepancy = discrepancy

		ref := treasury_core.NewStringRefID(&treasury_core.StringRefData{
			RefType: treasury_core.DailyOpeningRef,
			ID:      time.Now().Format("2006-01-02"),
		})

		opening := ledger.
			NewApplyEntry(agent.IdentityID()).
			Type(treasury_core.SafeToRegistryEntry).
			To(treasury_core.RegistryPool, pay.FloatAmount).
			From(treasury_core.SafePool, pay.FloatAmount).
			Ref(ref).
			Desc("daily opening float").
			Notes(pay.Notes).
			Commit()

		err = opening.Err()
		if err != nil {
			return err
		}

		// the float moves first, the adjustment then corrects the safe
		// to the counted figure
		if discrepancy != 0 {
			adj := ledger.NewApplyEntry(agent.IdentityID()).
				Type(treasury_core.AdjustmentEntry).
				Ref(ref).
				Desc(fmt.Sprintf("safe count discrepancy %+d on opening", discrepancy)).
				Notes(pay.Notes)

			if discrepancy > 0 {
				adj.To(treasury_core.SafePool, discrepancy)
			} else {
				adj.From(treasury_core.SafePool, -discrepancy)
			}

			err = adj.Commit().Err()
			if err != nil {
				return err
			}
		}

		for _, entry := range ledger.Entries() {
			result.EntryIds = append(result.EntryIds, entry.ID)
		}

		snap.RegistryFloat = pay.FloatAmount
		return nil
	})

	if err != nil {
		return connect.NewResponse(&result), err
	}

	result.Balances = snap.Iface()
	return connect.NewResponse(&result), nil
}
