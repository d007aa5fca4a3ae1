package treasury_core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

var (
	commitRetryMax     = 5
	commitRetryBackoff = 20 * time.Millisecond
)

// LedgerManage is handed to the OpenLedger closure. It carries the working
// snapshot the apply-entry builders mutate and collects the entries of the
// logical operation.
type LedgerManage interface {
	Snapshot() *TreasurySnapshot
	NewApplyEntry(recordedByID uint) ApplyEntry
	Entries() LedgerEntryList
}

type ledgerManageImpl struct {
	tx       *gorm.DB
	snapshot *TreasurySnapshot
	entries  LedgerEntryList
}

// Snapshot implements LedgerManage.
func (l *ledgerManageImpl) Snapshot() *TreasurySnapshot {
	return l.snapshot
}

// Entries implements LedgerManage.
func (l *ledgerManageImpl) Entries() LedgerEntryList {
	return l.entries
}

// NewApplyEntry implements LedgerManage.
func (l *ledgerManageImpl) NewApplyEntry(recordedByID uint) ApplyEntry {
	return &applyEntryImpl{
		tx:           l.tx,
		snapshot:     l.snapshot,
		recordedByID: recordedByID,
		deltas:       map[CashPool]int64{},
		afterCommit:  l.afterCommit,
	}
}

func (l *ledgerManageImpl) afterCommit(entry *LedgerEntry) error {
	l.entries = append(l.entries, entry)
	return nil
}

// OpenLedger is the only mutation path of the treasury snapshot. The
// closure runs inside one database transaction against a fresh snapshot
// read; every entry committed through the LedgerManage and the snapshot
// update land together or not at all. Committed entries must extend the
// ledger head in recorded_at order and their post balances must chain onto
// the snapshot write. The snapshot write is guarded on the
// version read at open, a lost race yields ErrVersionConflict and the whole
// closure is re-run with backoff until the retry budget is spent.
func OpenLedger(ctx context.Context, db *gorm.DB, handle func(tx *gorm.DB, ledger LedgerManage) error) error {
	var err error

	for attempt := 0; attempt < commitRetryMax; attempt++ {
		err = openLedgerOnce(ctx, db, handle)
		if !errors.Is(err, ErrVersionConflict) {
			break
		}
		time.Sleep(commitRetryBackoff * time.Duration(attempt+1))
	}

	if errors.Is(err, ErrSkipLedger) {
		return nil
	}

	return err
}

func openLedgerOnce(ctx context.Context, db *gorm.DB, handle func(tx *gorm.DB, ledger LedgerManage) error) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var snap TreasurySnapshot
		err := tx.
			Model(&TreasurySnapshot{}).
			Order("id asc").
			Limit(1).
			Find(&snap).
			Error

		if err != nil {
			return err
		}
		if snap.ID == 0 {
			return ErrSnapshotNotFound
		}

		version := snap.Version
		opened := snap

		var head LedgerEntry
		err = tx.
			Model(&LedgerEntry{}).
			Order("recorded_at desc, id desc").
			Limit(1).
			Find(&head).
			Error

		if err != nil {
			return err
		}

		var prev *LedgerEntry
		if head.ID != 0 {
			prev = &head
		}

		hdlr := ledgerManageImpl{
			tx:       tx,
			snapshot: &snap,
		}

		err = handle(tx, &hdlr)
		if err != nil {
			return err
		}

		if len(hdlr.entries) == 0 {
			return errors.New("entries empty in ledger commit")
		}

		for _, entry := range hdlr.entries {
			if entry.ID == 0 {
				return fmt.Errorf("theres entry not saved desc %s", entry.Desc)
			}
		}

		// new rows must extend the ledger, never predate its head
		last := prev
		for _, entry := range hdlr.entries {
			if last != nil && entry.RecordedAt.Before(last.RecordedAt) {
				return &ValidationError{
					Field:  "recorded_at",
					Reason: fmt.Sprintf("entry %s recorded before the ledger head", entry.RefID),
				}
			}
			last = entry
		}

		// post balances must chain from the head onto the snapshot write
		for _, pool := range AllPools() {
			chained := opened.Balance(pool)
			before := prev
			for _, entry := range hdlr.entries {
				chained += entry.PoolDelta(pool, before)
				before = entry
			}
			if chained != snap.Balance(pool) {
				return fmt.Errorf("%s balance does not chain from the ledger head", pool)
			}
		}

		res := tx.
			Model(&TreasurySnapshot{}).
			Where("id = ?", snap.ID).
			Where("version = ?", version).
			Updates(map[string]interface{}{
				"registry_balance":     snap.RegistryBalance,
				"safe_balance":         snap.SafeBalance,
				"bank_balance":         snap.BankBalance,
				"mobile_money_balance": snap.MobileMoneyBalance,
				"registry_float":       snap.RegistryFloat,
				"safe_threshold_min":   snap.SafeThresholdMin,
				"safe_threshold_max":   snap.SafeThresholdMax,
				"version":              version + 1,
				"updated_at":           time.Now(),
			})

		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrVersionConflict
		}

		snap.Version = version + 1
		snap.UpdatedAt = time.Now()
		return nil
	})
}

// CurrentBalances is the lock free read of the snapshot row.
func CurrentBalances(db *gorm.DB) (*TreasurySnapshot, error) {
	var snap TreasurySnapshot
	err := db.
		Model(&TreasurySnapshot{}).
		Order("id asc").
		Limit(1).
		Find(&snap).
		Error

	if err != nil {
		return &snap, err
	}
	if snap.ID == 0 {
		return &snap, ErrSnapshotNotFound
	}

	return &snap, nil
}
