package ledger

import (
	"context"
	"time"

	"connectrpc.com/connect"
	"github.com/pdcgo/treasury_service/treasury_core"
	"github.com/pdcgo/treasury_service/treasury_iface"
)

// EntryList implements treasury_iface.LedgerService.
func (l *ledgerServiceImpl) EntryList(
	ctx context.Context,
	req *connect.Request[treasury_iface.EntryListRequest],
) (*connect.Response[treasury_iface.EntryListResponse], error) {
	var err error
	result := treasury_iface.EntryListResponse{
		Data: []*treasury_iface.EntryItem{},
	}
	pay := req.Msg

	err = l.
		auth.
		AuthIdentityFromHeader(req.Header()).
		Err()
	if err != nil {
		return connect.NewResponse(&result), err
	}

	var from, to time.Time
	if pay.TimeFrom != 0 {
		from = time.UnixMicro(pay.TimeFrom).Local()
	}
	if pay.TimeTo != 0 {
		to = time.UnixMicro(pay.TimeTo).Local()
	}

	db := l.db.WithContext(ctx)
	err = treasury_core.NewHistory(db).
		DateRange(from, to).
		Type(treasury_core.EntryType(pay.EntryType)).
		Pool(treasury_core.CashPool(pay.Pool)).
		Payment(pay.PaymentId).
		Iterate(func(entry *treasury_core.LedgerEntry) error {
			result.Data = append(result.Data, entry.Iface())
			return nil
		})

	return connect.NewResponse(&result), err
}
