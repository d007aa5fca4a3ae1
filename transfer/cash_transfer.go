package transfer

import (
	"context"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/pdcgo/treasury_service/treasury_core"
	"github.com/pdcgo/treasury_service/treasury_iface"
	"gorm.io/gorm"
)

// CashTransfer books an ad-hoc movement between safe and registry. Notes
// are an audit requirement, at least 10 characters.
func (t *transferServiceImpl) CashTransfer(
	ctx context.Context,
	req *connect.Request[treasury_iface.CashTransferRequest],
) (*connect.Response[treasury_iface.CashTransferResponse], error) {
	var err error
	result := treasury_iface.CashTransferResponse{}
	pay := req.Msg

	agent := t.auth.AuthIdentityFromHeader(req.Header()).Identity()

	var from, to treasury_core.CashPool
	switch treasury_core.EntryType(pay.Direction) {
	case treasury_core.SafeToRegistryEntry:
		from, to = treasury_core.SafePool, treasury_core.RegistryPool
	case treasury_core.RegistryToSafeEntry:
		from, to = treasury_core.RegistryPool, treasury_core.SafePool
	default:
		return connect.NewResponse(&result), &treasury_core.ValidationError{
			Field:  "direction",
			Reason: "must be safe_to_registry or registry_to_safe",
		}
	}

	if pay.Amount <= 0 {
		return connect.NewResponse(&result), &treasury_core.ValidationError{
			Field:  "amount",
			Reason: "must be positive",
		}
	}
	if len(pay.Notes) < 10 {
		return connect.NewResponse(&result), &treasury_core.ValidationError{
			Field:  "notes",
			Reason: "audit notes need at least 10 characters",
		}
	}

	ref := treasury_core.NewStringRefID(&treasury_core.StringRefData{
		RefType: treasury_core.CashTransferRef,
		ID:      uuid.New().String(),
	})

	db := t.db.WithContext(ctx)
	var snap *treasury_core.TreasurySnapshot
	err = treasury_core.OpenLedger(ctx, db, func(tx *gorm.DB, ledger treasury_core.LedgerManage) error {
		snap = ledger.Snapshot()

		entry := ledger.
			NewApplyEntry(agent.IdentityID()).
			Type(treasury_core.EntryType(pay.Direction)).
			To(to, pay.Amount).
			From(from, pay.Amount).
			Ref(ref).
			Desc(pay.Direction).
			Notes(pay.Notes).
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
