package transfer_test

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/pdcgo/shared/authorization/authorization_mock"
	"github.com/pdcgo/shared/pkg/moretest"
	"github.com/pdcgo/shared/pkg/moretest/moretest_mock"
	"github.com/pdcgo/treasury_service/transfer"
	"github.com/pdcgo/treasury_service/treasury_core"
	"github.com/pdcgo/treasury_service/treasury_iface"
	"github.com/pdcgo/treasury_service/treasury_mock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestDailyOpening(t *testing.T) {
	var db gorm.DB

	moretest.Suite(t, "testing daily opening",
		moretest.SetupListFunc{
			moretest_mock.MockSqliteDatabase(&db),
			treasury_mock.MigrateTreasury(&db),
			treasury_mock.SeedSnapshot(&db),
			treasury_mock.SeedBalances(&db, 1, map[treasury_core.CashPool]int64{
				treasury_core.SafePool: 10_000_000,
			}),
		},
		func(t *testing.T) {
			ctx := context.Background()
			service := transfer.NewTransferService(&db, &authorization_mock.EmptyAuthorizationMock{
				AuthIdentityMock: &authorization_mock.AuthIdentityMock{
					IdentityMock: &authorization_mock.IdentityMock{
						ID: 20,
					},
				},
			})

			t.Run("clean count moves the float", func(t *testing.T) {
				res, err := service.DailyOpening(ctx, &connect.Request[treasury_iface.DailyOpeningRequest]{
					Msg: &treasury_iface.DailyOpeningRequest{
						CountedSafeBalance: 10_000_000,
						FloatAmount:        2_000_000,
					},
				})

				assert.Nil(t, err)
				assert.Equal(t, int64(0), res.Msg.Discrepancy)
				assert.Equal(t, 1, len(res.Msg.EntryIds))
				assert.Equal(t, int64(2_000_000), res.Msg.Balances.Registry)
				assert.Equal(t, int64(8_000_000), res.Msg.Balances.Safe)
			})

			t.Run("second opening rejected while registry holds cash", func(t *testing.T) {
				_, err := service.DailyOpening(ctx, &connect.Request[treasury_iface.DailyOpeningRequest]{
					Msg: &treasury_iface.DailyOpeningRequest{
						CountedSafeBalance: 8_000_000,
						FloatAmount:        2_000_000,
					},
				})

				var precondition *treasury_core.PreconditionError
				assert.ErrorAs(t, err, &precondition)
			})

			t.Run("float must be positive", func(t *testing.T) {
				_, err := service.DailyOpening(ctx, &connect.Request[treasury_iface.DailyOpeningRequest]{
					Msg: &treasury_iface.DailyOpeningRequest{
						CountedSafeBalance: 8_000_000,
					},
				})

				var validation *treasury_core.ValidationError
				assert.ErrorAs(t, err, &validation)
			})
		},
	)
}

func TestDailyOpeningDiscrepancy(t *testing.T) {
	var db gorm.DB

	moretest.Suite(t, "testing opening with short count",
		moretest.SetupListFunc{
			moretest_mock.MockSqliteDatabase(&db),
			treasury_mock.MigrateTreasury(&db),
			treasury_mock.SeedSnapshot(&db),
			treasury_mock.SeedBalances(&db, 1, map[treasury_core.CashPool]int64{
				treasury_core.SafePool: 10_000_000,
			}),
		},
		func(t *testing.T) {
			service := transfer.NewTransferService(&db, &authorization_mock.EmptyAuthorizationMock{
				AuthIdentityMock: &authorization_mock.AuthIdentityMock{
					IdentityMock: &authorization_mock.IdentityMock{
						ID: 20,
					},
				},
			})

			res, err := service.DailyOpening(context.Background(), &connect.Request[treasury_iface.DailyOpeningRequest]{
				Msg: &treasury_iface.DailyOpeningRequest{
					CountedSafeBalance: 9_950_000,
					FloatAmount:        2_000_000,
					Notes:              "till short after weekend",
				},
			})

			assert.Nil(t, err)
			assert.Equal(t, int64(-50_000), res.Msg.Discrepancy)
			assert.Equal(t, 2, len(res.Msg.EntryIds))

			// float moves first, the adjustment then corrects the safe
			var entries treasury_core.LedgerEntryList
			err = db.
				Where("id in ?", res.Msg.EntryIds).
				Order("id asc").
				Find(&entries).
				Error
			assert.Nil(t, err)
			assert.Equal(t, treasury_core.SafeToRegistryEntry, entries[0].EntryType)
			assert.Equal(t, treasury_core.AdjustmentEntry, entries[1].EntryType)

			assert.Equal(t, int64(7_950_000), res.Msg.Balances.Safe)
			assert.Equal(t, int64(2_000_000), res.Msg.Balances.Registry)
		},
	)
}
