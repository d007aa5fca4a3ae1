package treasury_core

import (
	"time"

	"gorm.io/gorm"
)

// History is the read only view over ledger entries, ordered by
// recorded_at ascending. Iterate streams in batches so exports over long
// ranges stay bounded.
type History interface {
	DateRange(from, to time.Time) History
	Type(t EntryType) History
	Pool(p CashPool) History
	RecordedBy(userID uint) History
	Payment(paymentID uint) History
	Iterate(fn func(entry *LedgerEntry) error) error
}

type historyImpl struct {
	db    *gorm.DB
	query *gorm.DB
}

func NewHistory(db *gorm.DB) History {
	return &historyImpl{
		db:    db,
		query: db.Model(&LedgerEntry{}),
	}
}

// DateRange implements History. to is exclusive.
func (h *historyImpl) DateRange(from, to time.Time) History {
	if !from.IsZero() {
		h.query = h.query.Where("recorded_at >= ?", from)
	}
	if !to.IsZero() {
		h.query = h.query.Where("recorded_at < ?", to)
	}
	return h
}

// Type implements History.
func (h *historyImpl) Type(t EntryType) History {
	if t != "" {
		h.query = h.query.Where("entry_type = ?", t)
	}
	return h
}

// Pool implements History.
func (h *historyImpl) Pool(p CashPool) History {
	if p != "" {
		h.query = h.query.Where("pool = ? OR other_pool = ?", p, p)
	}
	return h
}

// RecordedBy implements History.
func (h *historyImpl) RecordedBy(userID uint) History {
	if userID != 0 {
		h.query = h.query.Where("recorded_by_id = ?", userID)
	}
	return h
}

// Payment implements History.
func (h *historyImpl) Payment(paymentID uint) History {
	if paymentID != 0 {
		h.query = h.query.Where("payment_id = ?", paymentID)
	}
	return h
}

// Iterate implements History.
func (h *historyImpl) Iterate(fn func(entry *LedgerEntry) error) error {
	var batch LedgerEntryList
	res := h.query.
		Order("recorded_at asc, id asc").
		FindInBatches(&batch, 200, func(tx *gorm.DB, n int) error {
			for _, entry := range batch {
				err := fn(entry)
				if err != nil {
					return err
				}
			}
			return nil
		})

	return res.Error
}

// BalanceAsOf returns the pool balance the ledger implies at t, the post
// balance of the latest entry recorded strictly before t. A ledger with no
// entry up to t reports zero, genesis is all zero and seeded balances are
// written as adjustment entries.
func BalanceAsOf(db *gorm.DB, pool CashPool, t time.Time) (int64, error) {
	last, err := LastEntryBefore(db, t)
	if err != nil {
		return 0, err
	}
	if last == nil {
		return 0, nil
	}

	return last.BalanceAfter(pool), nil
}

// LastEntryBefore returns the latest entry strictly before t, nil when the
// ledger is empty up to t.
func LastEntryBefore(db *gorm.DB, t time.Time) (*LedgerEntry, error) {
	var last LedgerEntry
	err := db.
		Model(&LedgerEntry{}).
		Where("recorded_at < ?", t).
		Order("recorded_at desc, id desc").
		Limit(1).
		Find(&last).
		Error

	if err != nil {
		return nil, err
	}
	if last.ID == 0 {
		return nil, nil
	}

	return &last, nil
}
