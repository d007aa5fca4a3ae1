package ledger

import (
	"context"

	"connectrpc.com/connect"
	"github.com/pdcgo/treasury_service/treasury_core"
	"github.com/pdcgo/treasury_service/treasury_iface"
)

// BalanceGet implements treasury_iface.LedgerService.
func (l *ledgerServiceImpl) BalanceGet(
	ctx context.Context,
	req *connect.Request[treasury_iface.BalanceGetRequest],
) (*connect.Response[treasury_iface.BalanceGetResponse], error) {
	var err error
	result := treasury_iface.BalanceGetResponse{}

	err = l.
		auth.
		AuthIdentityFromHeader(req.Header()).
		Err()
	if err != nil {
		return connect.NewResponse(&result), err
	}

	snap, err := treasury_core.CurrentBalances(l.db.WithContext(ctx))
	if err != nil {
		return connect.NewResponse(&result), err
	}

	result.Balances = snap.Iface()
	return connect.NewResponse(&result), nil
}
