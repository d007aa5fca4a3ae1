package transfer

import (
	"context"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/pdcgo/treasury_service/treasury_core"
	"github.com/pdcgo/treasury_service/treasury_iface"
	"gorm.io/gorm"
)

// MobileMoneyFee debits a flat operator fee from the wallet pool.
func (t *transferServiceImpl) MobileMoneyFee(
	ctx context.Context,
	req *connect.Request[treasury_iface.MobileMoneyFeeRequest],
) (*connect.Response[treasury_iface.MobileMoneyFeeResponse], error) {
	var err error
	result := treasury_iface.MobileMoneyFeeResponse{}
	pay := req.Msg

	agent := t.auth.AuthIdentityFromHeader(req.Header()).Identity()

	if pay.Amount <= 0 {
		return connect.NewResponse(&result), &treasury_core.ValidationError{
			Field:  "amount",
			Reason: "must be positive",
		}
	}
	if pay.Desc == "" {
		return connect.NewResponse(&result), &treasury_core.ValidationError{
			Field:  "desc",
			Reason: "missing",
		}
	}

	ref := treasury_core.NewStringRefID(&treasury_core.StringRefData{
		RefType: treasury_core.MobileFeeRef,
		ID:      uuid.New().String(),
	})

	db := t.db.WithContext(ctx)
	var snap *treasury_core.TreasurySnapshot
	err = treasury_core.OpenLedger(ctx, db, func(tx *gorm.DB, ledger treasury_core.LedgerManage) error {
		snap = ledger.Snapshot()

		entry := ledger.
			NewApplyEntry(agent.IdentityID()).
			Type(treasury_core.MobileMoneyFeeEntry).
			From(treasury_core.MobileMoneyPool, pay.Amount).
			Ref(ref).
			Desc(pay.Desc).
			Commit()

		err = entry.Err()
		if err != nil {
			return err
		}

		result.EntryId = entry.Entry().ID
		return nil
	})

	if err != nil {
		return connect.NewResponse(&result), err
	}

	result.Balances = snap.Iface()
	return connect.NewResponse(&result), nil
}
