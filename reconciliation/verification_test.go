package reconciliation_test

import (
	"context"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/pdcgo/shared/authorization/authorization_mock"
	"github.com/pdcgo/shared/pkg/moretest"
	"github.com/pdcgo/shared/pkg/moretest/moretest_mock"
	"github.com/pdcgo/shared/pkg/ware_cache"
	"github.com/pdcgo/treasury_service/reconciliation"
	"github.com/pdcgo/treasury_service/treasury_core"
	"github.com/pdcgo/treasury_service/treasury_iface"
	"github.com/pdcgo/treasury_service/treasury_mock"
	"github.com/pdcgo/treasury_service/treasury_model"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestVerificationCreate(t *testing.T) {
	var db gorm.DB

	moretest.Suite(t, "testing verification create",
		moretest.SetupListFunc{
			moretest_mock.MockSqliteDatabase(&db),
			treasury_mock.MigrateTreasury(&db),
			treasury_mock.SeedSnapshot(&db),
			treasury_mock.SeedBalances(&db, 1, map[treasury_core.CashPool]int64{
				treasury_core.SafePool: 3_000_000,
			}),
		},
		func(t *testing.T) {
			ctx := context.Background()
			service := reconciliation.NewReconciliationService(
				&db,
				&authorization_mock.EmptyAuthorizationMock{
					AuthIdentityMock: &authorization_mock.AuthIdentityMock{
						IdentityMock: &authorization_mock.IdentityMock{
							ID: 20,
						},
					},
				},
				ware_cache.NewLocalCache(),
			)

			// counting today, the seeded entries land in the running day
			day := time.Now()

			t.Run("clean count approves immediately", func(t *testing.T) {
				res, err := service.VerificationCreate(ctx, &connect.Request[treasury_iface.VerificationCreateRequest]{
					Msg: &treasury_iface.VerificationCreateRequest{
						Pool:             string(treasury_core.SafePool),
						VerificationDate: day.UnixMicro(),
						CountedBalance:   3_000_000,
					},
				})

				assert.Nil(t, err)
				assert.Equal(t, int64(3_000_000), res.Msg.ExpectedBalance)
				assert.Equal(t, int64(0), res.Msg.Discrepancy)
				assert.Equal(t, string(treasury_model.VerificationApproved), res.Msg.Status)
			})

			t.Run("one verification per pool per day", func(t *testing.T) {
				_, err := service.VerificationCreate(ctx, &connect.Request[treasury_iface.VerificationCreateRequest]{
					Msg: &treasury_iface.VerificationCreateRequest{
						Pool:             string(treasury_core.SafePool),
						VerificationDate: day.UnixMicro(),
						CountedBalance:   3_000_000,
					},
				})

				var precondition *treasury_core.PreconditionError
				assert.ErrorAs(t, err, &precondition)
			})

			t.Run("discrepancy without explanation rejected", func(t *testing.T) {
				_, err := service.VerificationCreate(ctx, &connect.Request[treasury_iface.VerificationCreateRequest]{
					Msg: &treasury_iface.VerificationCreateRequest{
						Pool:             string(treasury_core.RegistryPool),
						VerificationDate: day.UnixMicro(),
						CountedBalance:   10_000,
					},
				})

				var validation *treasury_core.ValidationError
				assert.ErrorAs(t, err, &validation)
			})

			t.Run("discrepancy with explanation flags the day", func(t *testing.T) {
				res, err := service.VerificationCreate(ctx, &connect.Request[treasury_iface.VerificationCreateRequest]{
					Msg: &treasury_iface.VerificationCreateRequest{
						Pool:             string(treasury_core.RegistryPool),
						VerificationDate: day.UnixMicro(),
						CountedBalance:   10_000,
						Explanation:      "extra note found under the drawer",
					},
				})

				assert.Nil(t, err)
				assert.Equal(t, int64(10_000), res.Msg.Discrepancy)
				assert.Equal(t, string(treasury_model.VerificationFlagged), res.Msg.Status)
			})
		},
	)
}

func TestVerificationReview(t *testing.T) {
	var db gorm.DB

	verification := &treasury_model.DailyVerification{
		VerificationDate: time.Date(2026, 5, 4, 0, 0, 0, 0, time.Local),
		Pool:             treasury_core.SafePool,
		ExpectedBalance:  3_000_000,
		CountedBalance:   2_940_000,
		Discrepancy:      -60_000,
		Status:           treasury_model.VerificationFlagged,
		Explanation:      "two receipts missing",
		VerifiedByID:     99,
	}

	var seedVerification moretest.SetupFunc = func(t *testing.T) func() error {
		err := db.Save(verification).Error
		assert.Nil(t, err)
		return nil
	}

	moretest.Suite(t, "testing verification review",
		moretest.SetupListFunc{
			moretest_mock.MockSqliteDatabase(&db),
			treasury_mock.MigrateTreasury(&db),
			treasury_mock.SeedSnapshot(&db),
			treasury_mock.SeedBalances(&db, 1, map[treasury_core.CashPool]int64{
				treasury_core.SafePool: 3_000_000,
			}),
			seedVerification,
		},
		func(t *testing.T) {
			ctx := context.Background()
			service := reconciliation.NewReconciliationService(
				&db,
				&authorization_mock.EmptyAuthorizationMock{
					AuthIdentityMock: &authorization_mock.AuthIdentityMock{
						IdentityMock: &authorization_mock.IdentityMock{
							ID: 20,
						},
					},
				},
				ware_cache.NewLocalCache(),
			)

			t.Run("approval books the correction", func(t *testing.T) {
				res, err := service.VerificationReview(ctx, &connect.Request[treasury_iface.VerificationReviewRequest]{
					Msg: &treasury_iface.VerificationReviewRequest{
						VerificationId: verification.ID,
						Approve:        true,
						ReviewNotes:    "loss confirmed with the cashier",
					},
				})

				assert.Nil(t, err)
				assert.Equal(t, string(treasury_model.VerificationApproved), res.Msg.Status)
				assert.NotEqual(t, uint(0), res.Msg.EntryId)

				snap, err := treasury_core.CurrentBalances(&db)
				assert.Nil(t, err)
				assert.Equal(t, int64(2_940_000), snap.SafeBalance)
			})

			t.Run("approved verification cannot be reviewed again", func(t *testing.T) {
				_, err := service.VerificationReview(ctx, &connect.Request[treasury_iface.VerificationReviewRequest]{
					Msg: &treasury_iface.VerificationReviewRequest{
						VerificationId: verification.ID,
						Approve:        true,
					},
				})

				var transition *treasury_core.InvalidTransitionError
				assert.ErrorAs(t, err, &transition)
			})
		},
	)
}

func TestVerificationReviewMakerChecker(t *testing.T) {
	var db gorm.DB

	verification := &treasury_model.DailyVerification{
		VerificationDate: time.Date(2026, 5, 5, 0, 0, 0, 0, time.Local),
		Pool:             treasury_core.RegistryPool,
		ExpectedBalance:  100_000,
		CountedBalance:   90_000,
		Discrepancy:      -10_000,
		Status:           treasury_model.VerificationFlagged,
		Explanation:      "short at closing",
	}

	var seedVerification moretest.SetupFunc = func(t *testing.T) func() error {
		// same user as the mocked identity reviewing below
		verification.VerifiedByID = 20

		err := db.Save(verification).Error
		assert.Nil(t, err)
		return nil
	}

	moretest.Suite(t, "testing maker checker on review",
		moretest.SetupListFunc{
			moretest_mock.MockSqliteDatabase(&db),
			treasury_mock.MigrateTreasury(&db),
			treasury_mock.SeedSnapshot(&db),
			seedVerification,
		},
		func(t *testing.T) {
			service := reconciliation.NewReconciliationService(
				&db,
				&authorization_mock.EmptyAuthorizationMock{
					AuthIdentityMock: &authorization_mock.AuthIdentityMock{
						IdentityMock: &authorization_mock.IdentityMock{
							ID: 20,
						},
					},
				},
				ware_cache.NewLocalCache(),
			)

			_, err := service.VerificationReview(context.Background(), &connect.Request[treasury_iface.VerificationReviewRequest]{
				Msg: &treasury_iface.VerificationReviewRequest{
					VerificationId: verification.ID,
					Approve:        true,
				},
			})

			var precondition *treasury_core.PreconditionError
			assert.ErrorAs(t, err, &precondition)
		},
	)
}
