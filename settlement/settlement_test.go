package settlement_test

import (
	"context"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/pdcgo/shared/authorization/authorization_mock"
	"github.com/pdcgo/shared/pkg/moretest"
	"github.com/pdcgo/shared/pkg/moretest/moretest_mock"
	"github.com/pdcgo/treasury_service/settlement"
	"github.com/pdcgo/treasury_service/treasury_core"
	"github.com/pdcgo/treasury_service/treasury_iface"
	"github.com/pdcgo/treasury_service/treasury_mock"
	"github.com/pdcgo/treasury_service/treasury_model"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestPaymentLifecycleCash(t *testing.T) {
	var db gorm.DB

	moretest.Suite(t, "testing cash payment lifecycle",
		moretest.SetupListFunc{
			moretest_mock.MockSqliteDatabase(&db),
			treasury_mock.MigrateTreasury(&db),
			treasury_mock.SeedSnapshot(&db),
			treasury_mock.SeedBalances(&db, 1, map[treasury_core.CashPool]int64{
				treasury_core.RegistryPool: 2_000_000,
			}),
		},
		func(t *testing.T) {
			ctx := context.Background()
			service := settlement.NewSettlementService(&db, &authorization_mock.EmptyAuthorizationMock{
				AuthIdentityMock: &authorization_mock.AuthIdentityMock{
					IdentityMock: &authorization_mock.IdentityMock{
						ID: 20,
					},
				},
			}, nil)

			var paymentID uint

			t.Run("create starts in pending_deposit without touching pools", func(t *testing.T) {
				res, err := service.PaymentCreate(ctx, &connect.Request[treasury_iface.PaymentCreateRequest]{
					Msg: &treasury_iface.PaymentCreateRequest{
						Kind:      string(treasury_model.StudentFeeKind),
						Method:    string(treasury_model.CashMethod),
						Amount:    60_000,
						StudentId: 12,
						Desc:      "term 2 fee",
					},
				})

				assert.Nil(t, err)
				assert.Equal(t, string(treasury_model.PaymentPendingDeposit), res.Msg.Status)
				assert.Equal(t, int64(0), res.Msg.AutoConfirmAt)
				paymentID = res.Msg.PaymentId

				snap, err := treasury_core.CurrentBalances(&db)
				assert.Nil(t, err)
				assert.Equal(t, int64(2_000_000), snap.RegistryBalance)
			})

			t.Run("confirm credits the registry with the recorded amount", func(t *testing.T) {
				res, err := service.PaymentConfirm(ctx, &connect.Request[treasury_iface.PaymentConfirmRequest]{
					Msg: &treasury_iface.PaymentConfirmRequest{
						PaymentId: paymentID,
					},
				})

				assert.Nil(t, err)
				assert.Equal(t, string(treasury_model.PaymentConfirmed), res.Msg.Status)
				assert.NotEqual(t, uint(0), res.Msg.EntryId)

				snap, err := treasury_core.CurrentBalances(&db)
				assert.Nil(t, err)
				assert.Equal(t, int64(2_060_000), snap.RegistryBalance)
			})

			t.Run("confirm is not repeatable", func(t *testing.T) {
				_, err := service.PaymentConfirm(ctx, &connect.Request[treasury_iface.PaymentConfirmRequest]{
					Msg: &treasury_iface.PaymentConfirmRequest{
						PaymentId: paymentID,
					},
				})

				var transition *treasury_core.InvalidTransitionError
				assert.ErrorAs(t, err, &transition)
			})

			t.Run("reverse books a compensating adjustment", func(t *testing.T) {
				res, err := service.PaymentReverse(ctx, &connect.Request[treasury_iface.PaymentReverseRequest]{
					Msg: &treasury_iface.PaymentReverseRequest{
						PaymentId: paymentID,
						Reason:    "duplicate receipt entry",
					},
				})

				assert.Nil(t, err)
				assert.Equal(t, string(treasury_model.PaymentReversed), res.Msg.Status)

				snap, err := treasury_core.CurrentBalances(&db)
				assert.Nil(t, err)
				assert.Equal(t, int64(2_000_000), snap.RegistryBalance)

				var entry treasury_core.LedgerEntry
				err = db.
					Model(&treasury_core.LedgerEntry{}).
					First(&entry, res.Msg.EntryId).
					Error
				assert.Nil(t, err)
				assert.Equal(t, treasury_core.AdjustmentEntry, entry.EntryType)
				assert.Equal(t, "duplicate receipt entry", entry.Notes)
			})

			t.Run("reversed is terminal", func(t *testing.T) {
				_, err := service.PaymentFail(ctx, &connect.Request[treasury_iface.PaymentFailRequest]{
					Msg: &treasury_iface.PaymentFailRequest{
						PaymentId: paymentID,
						Reason:    "should not work",
					},
				})

				var transition *treasury_core.InvalidTransitionError
				assert.ErrorAs(t, err, &transition)
			})
		},
	)
}

func TestPaymentFail(t *testing.T) {
	var db gorm.DB

	payment := &treasury_model.Payment{
		Kind:   treasury_model.StudentFeeKind,
		Method: treasury_model.CashMethod,
		Status: treasury_model.PaymentPendingDeposit,
		Amount: 15_000,
	}

	moretest.Suite(t, "testing payment fail",
		moretest.SetupListFunc{
			moretest_mock.MockSqliteDatabase(&db),
			treasury_mock.MigrateTreasury(&db),
			treasury_mock.SeedSnapshot(&db),
			treasury_mock.SeedPayment(&db, payment),
		},
		func(t *testing.T) {
			ctx := context.Background()
			service := settlement.NewSettlementService(&db, &authorization_mock.EmptyAuthorizationMock{
				AuthIdentityMock: &authorization_mock.AuthIdentityMock{
					IdentityMock: &authorization_mock.IdentityMock{
						ID: 20,
					},
				},
			}, nil)

			t.Run("reason is required", func(t *testing.T) {
				_, err := service.PaymentFail(ctx, &connect.Request[treasury_iface.PaymentFailRequest]{
					Msg: &treasury_iface.PaymentFailRequest{
						PaymentId: payment.ID,
					},
				})

				var validation *treasury_core.ValidationError
				assert.ErrorAs(t, err, &validation)
			})

			t.Run("fail needs no ledger entry", func(t *testing.T) {
				res, err := service.PaymentFail(ctx, &connect.Request[treasury_iface.PaymentFailRequest]{
					Msg: &treasury_iface.PaymentFailRequest{
						PaymentId: payment.ID,
						Reason:    "student cancelled",
					},
				})

				assert.Nil(t, err)
				assert.Equal(t, string(treasury_model.PaymentFailed), res.Msg.Status)

				var count int64
				err = db.Model(&treasury_core.LedgerEntry{}).Count(&count).Error
				assert.Nil(t, err)
				assert.Equal(t, int64(0), count)
			})
		},
	)
}

func TestSettlementSweep(t *testing.T) {
	var db gorm.DB

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(23 * time.Hour)

	due := &treasury_model.Payment{
		Kind:          treasury_model.StudentFeeKind,
		Method:        treasury_model.MobileMoneyMethod,
		Status:        treasury_model.PaymentPendingReview,
		Amount:        25_000,
		AutoConfirmAt: &past,
	}
	notDue := &treasury_model.Payment{
		Kind:          treasury_model.StudentFeeKind,
		Method:        treasury_model.MobileMoneyMethod,
		Status:        treasury_model.PaymentPendingReview,
		Amount:        80_000,
		AutoConfirmAt: &future,
	}

	moretest.Suite(t, "testing settlement sweep",
		moretest.SetupListFunc{
			moretest_mock.MockSqliteDatabase(&db),
			treasury_mock.MigrateTreasury(&db),
			treasury_mock.SeedSnapshot(&db),
			treasury_mock.SeedPayment(&db, due),
			treasury_mock.SeedPayment(&db, notDue),
		},
		func(t *testing.T) {
			ctx := context.Background()
			service := settlement.NewSettlementService(&db, &authorization_mock.EmptyAuthorizationMock{
				AuthIdentityMock: &authorization_mock.AuthIdentityMock{
					IdentityMock: &authorization_mock.IdentityMock{
						ID: 20,
					},
				},
			}, nil)

			t.Run("sweep confirms only payments past the deadline", func(t *testing.T) {
				res, err := service.SettlementSweep(ctx, &connect.Request[treasury_iface.SettlementSweepRequest]{
					Msg: &treasury_iface.SettlementSweepRequest{},
				})

				assert.Nil(t, err)
				assert.Equal(t, 1, res.Msg.ConfirmedCount)

				snap, err := treasury_core.CurrentBalances(&db)
				assert.Nil(t, err)
				assert.Equal(t, int64(25_000), snap.MobileMoneyBalance)

				var payment treasury_model.Payment
				err = db.Model(&treasury_model.Payment{}).First(&payment, notDue.ID).Error
				assert.Nil(t, err)
				assert.Equal(t, treasury_model.PaymentPendingReview, payment.Status)
			})

			t.Run("second sweep settles nothing", func(t *testing.T) {
				res, err := service.SettlementSweep(ctx, &connect.Request[treasury_iface.SettlementSweepRequest]{
					Msg: &treasury_iface.SettlementSweepRequest{},
				})

				assert.Nil(t, err)
				assert.Equal(t, 0, res.Msg.ConfirmedCount)

				snap, err := treasury_core.CurrentBalances(&db)
				assert.Nil(t, err)
				assert.Equal(t, int64(25_000), snap.MobileMoneyBalance)

				var entries int64
				err = db.Model(&treasury_core.LedgerEntry{}).Count(&entries).Error
				assert.Nil(t, err)
				assert.Equal(t, int64(1), entries)
			})
		},
	)
}
