package ledger_test

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/pdcgo/shared/authorization/authorization_mock"
	"github.com/pdcgo/shared/pkg/moretest"
	"github.com/pdcgo/shared/pkg/moretest/moretest_mock"
	"github.com/pdcgo/treasury_service/ledger"
	"github.com/pdcgo/treasury_service/treasury_core"
	"github.com/pdcgo/treasury_service/treasury_iface"
	"github.com/pdcgo/treasury_service/treasury_mock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestLedgerReads(t *testing.T) {
	var db gorm.DB

	moretest.Suite(t, "testing ledger reads",
		moretest.SetupListFunc{
			moretest_mock.MockSqliteDatabase(&db),
			treasury_mock.MigrateTreasury(&db),
			treasury_mock.SeedSnapshot(&db),
			treasury_mock.SeedBalances(&db, 1, map[treasury_core.CashPool]int64{
				treasury_core.SafePool:        4_000_000,
				treasury_core.MobileMoneyPool: 250_000,
			}),
		},
		func(t *testing.T) {
			ctx := context.Background()
			service := ledger.NewLedgerService(&db, &authorization_mock.EmptyAuthorizationMock{})

			t.Run("balance get returns the snapshot", func(t *testing.T) {
				res, err := service.BalanceGet(ctx, &connect.Request[treasury_iface.BalanceGetRequest]{
					Msg: &treasury_iface.BalanceGetRequest{},
				})

				assert.Nil(t, err)
				assert.Equal(t, int64(4_000_000), res.Msg.Balances.Safe)
				assert.Equal(t, int64(250_000), res.Msg.Balances.MobileMoney)
				assert.Equal(t, int64(0), res.Msg.Balances.Bank)
			})

			t.Run("entry list filters by type", func(t *testing.T) {
				res, err := service.EntryList(ctx, &connect.Request[treasury_iface.EntryListRequest]{
					Msg: &treasury_iface.EntryListRequest{
						EntryType: string(treasury_core.AdjustmentEntry),
					},
				})

				assert.Nil(t, err)
				assert.Equal(t, 2, len(res.Msg.Data))
				for _, item := range res.Msg.Data {
					assert.Equal(t, string(treasury_core.AdjustmentEntry), item.EntryType)
				}
			})

			t.Run("entry list filters by pool", func(t *testing.T) {
				res, err := service.EntryList(ctx, &connect.Request[treasury_iface.EntryListRequest]{
					Msg: &treasury_iface.EntryListRequest{
						Pool: string(treasury_core.MobileMoneyPool),
					},
				})

				assert.Nil(t, err)
				assert.Equal(t, 1, len(res.Msg.Data))
				assert.Equal(t, int64(250_000), res.Msg.Data[0].MobileMoneyBalanceAfter)
			})
		},
	)
}
