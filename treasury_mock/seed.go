package treasury_mock

import (
	"context"
	"testing"
	"time"

	"github.com/pdcgo/shared/pkg/moretest"
	"github.com/pdcgo/treasury_service/treasury_core"
	"github.com/pdcgo/treasury_service/treasury_model"
	"github.com/zeebo/assert"
	"gorm.io/gorm"
)

// MigrateTreasury migrates every table the treasury service touches.
func MigrateTreasury(db *gorm.DB) moretest.SetupFunc {
	return func(t *testing.T) func() error {
		err := db.AutoMigrate(
			&treasury_core.TreasurySnapshot{},
			&treasury_core.LedgerEntry{},
			&treasury_model.Payment{},
			&treasury_model.BankTransfer{},
			&treasury_model.CashDeposit{},
			&treasury_model.DailyVerification{},
		)
		assert.Nil(t, err)

		return nil
	}
}

// SeedSnapshot creates the genesis snapshot row at zero. Every pool
// balance before seeding entries is zero by definition.
func SeedSnapshot(db *gorm.DB) moretest.SetupFunc {
	return func(t *testing.T) func() error {
		var old treasury_core.TreasurySnapshot
		err := db.
			Model(&treasury_core.TreasurySnapshot{}).
			Order("id asc").
			Limit(1).
			Find(&old).
			Error
		assert.Nil(t, err)

		if old.ID != 0 {
			return nil
		}

		snap := treasury_core.TreasurySnapshot{
			SafeThresholdMin: 500_000,
			SafeThresholdMax: 20_000_000,
		}
		err = db.Save(&snap).Error
		assert.Nil(t, err)

		return nil
	}
}

// SeedBalances funds pools through real adjustment entries so balance
// history and the snapshot agree from the start.
func SeedBalances(db *gorm.DB, userID uint, balances map[treasury_core.CashPool]int64) moretest.SetupFunc {
	return SeedBalancesAt(db, userID, time.Time{}, balances)
}

// SeedBalancesAt funds pools with entries stamped at a fixed time so later
// seeds can use dates after it. A zero time stamps the commit time.
func SeedBalancesAt(db *gorm.DB, userID uint, at time.Time, balances map[treasury_core.CashPool]int64) moretest.SetupFunc {
	return func(t *testing.T) func() error {
		err := treasury_core.OpenLedger(
			context.Background(),
			db,
			func(tx *gorm.DB, ledger treasury_core.LedgerManage) error {
				for _, pool := range treasury_core.AllPools() {
					amount := balances[pool]
					if amount == 0 {
						continue
					}

					entry := ledger.
						NewApplyEntry(userID).
						Type(treasury_core.AdjustmentEntry).
						Ref(treasury_core.NewStringRefID(&treasury_core.StringRefData{
							RefType: treasury_core.AdjustmentRef,
							ID:      "seed_" + string(pool),
						})).
						Desc("seed " + string(pool) + " balance").
						To(pool, amount)

					if !at.IsZero() {
						entry.EntryTime(at)
					}

					err := entry.Commit().Err()
					if err != nil {
						return err
					}
				}
				return nil
			},
		)
		assert.Nil(t, err)

		return nil
	}
}

// SeedPayment inserts a payment row directly in the given status.
func SeedPayment(db *gorm.DB, payment *treasury_model.Payment) moretest.SetupFunc {
	return func(t *testing.T) func() error {
		err := db.Save(payment).Error
		assert.Nil(t, err)

		return nil
	}
}
