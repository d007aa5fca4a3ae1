package treasury_core

import (
	"time"

	"gorm.io/gorm"
)

// ApplyEntry builds one ledger entry against the working snapshot. The
// first To or From call names the primary pool and fixes the recorded
// amount and direction, later calls add counter movements. Commit applies
// the deltas, stamps post balances for all four pools and saves the row.
type ApplyEntry interface {
	Type(t EntryType) ApplyEntry
	From(pool CashPool, amount int64) ApplyEntry
	To(pool CashPool, amount int64) ApplyEntry
	Ref(ref RefID) ApplyEntry
	Desc(desc string) ApplyEntry
	Notes(notes string) ApplyEntry
	Payment(paymentID uint) ApplyEntry
	Student(studentID uint) ApplyEntry
	EntryTime(t time.Time) ApplyEntry
	Commit() ApplyEntry
	Entry() *LedgerEntry
	Err() error
}

type applyEntryImpl struct {
	tx           *gorm.DB
	snapshot     *TreasurySnapshot
	recordedByID uint

	entryType EntryType
	deltas    map[CashPool]int64
	primary   CashPool
	otherPool CashPool
	direction EntryDirection
	amount    int64
	ref       RefID
	desc      string
	notes     string
	paymentID uint
	studentID uint
	entryTime time.Time

	entry       *LedgerEntry
	afterCommit func(entry *LedgerEntry) error
	err         error
}

// Type implements ApplyEntry.
func (a *applyEntryImpl) Type(t EntryType) ApplyEntry {
	if !t.Valid() {
		return a.setErr(&ValidationError{Field: "entry_type", Reason: "unknown type " + string(t)})
	}
	a.entryType = t
	return a
}

// To implements ApplyEntry.
func (a *applyEntryImpl) To(pool CashPool, amount int64) ApplyEntry {
	return a.move(pool, amount, DirectionIn)
}

// From implements ApplyEntry.
func (a *applyEntryImpl) From(pool CashPool, amount int64) ApplyEntry {
	return a.move(pool, amount, DirectionOut)
}

func (a *applyEntryImpl) move(pool CashPool, amount int64, dir EntryDirection) ApplyEntry {
	if !pool.Valid() {
		return a.setErr(&ValidationError{Field: "pool", Reason: "unknown pool " + string(pool)})
	}
	if amount <= 0 {
		return a.setErr(&ValidationError{Field: "amount", Reason: "must be positive"})
	}

	if a.primary == "" {
		a.primary = pool
		a.direction = dir
		a.amount = amount
	} else if a.otherPool == "" && pool != a.primary {
		a.otherPool = pool
	}

	if dir == DirectionIn {
		a.deltas[pool] += amount
	} else {
		a.deltas[pool] -= amount
	}

	return a
}

// Ref implements ApplyEntry.
func (a *applyEntryImpl) Ref(ref RefID) ApplyEntry {
	a.ref = ref
	return a
}

// Desc implements ApplyEntry.
func (a *applyEntryImpl) Desc(desc string) ApplyEntry {
	a.desc = desc
	return a
}

// Notes implements ApplyEntry.
func (a *applyEntryImpl) Notes(notes string) ApplyEntry {
	a.notes = notes
	return a
}

// Payment implements ApplyEntry.
func (a *applyEntryImpl) Payment(paymentID uint) ApplyEntry {
	a.paymentID = paymentID
	return a
}

// Student implements ApplyEntry.
func (a *applyEntryImpl) Student(studentID uint) ApplyEntry {
	a.studentID = studentID
	return a
}

// EntryTime implements ApplyEntry.
func (a *applyEntryImpl) EntryTime(t time.Time) ApplyEntry {
	a.entryTime = t
	return a
}

// Commit implements ApplyEntry.
func (a *applyEntryImpl) Commit() ApplyEntry {
	if a.err != nil {
		return a
	}

	if !a.entryType.Valid() {
		return a.setErr(&ValidationError{Field: "entry_type", Reason: "missing"})
	}
	if len(a.deltas) == 0 {
		return a.setErr(&ValidationError{Field: "amount", Reason: "entry has no movement"})
	}

	// balance check before touching the working snapshot, the whole entry
	// applies or not at all
	for pool, delta := range a.deltas {
		after := a.snapshot.Balance(pool) + delta
		if after < 0 {
			return a.setErr(&InsufficientFundsError{
				Pool:      pool,
				Requested: -delta,
				Available: a.snapshot.Balance(pool),
			})
		}
	}

	for pool, delta := range a.deltas {
		a.snapshot.SetBalance(pool, a.snapshot.Balance(pool)+delta)
	}

	if a.entryTime.IsZero() {
		a.entryTime = time.Now()
	}

	entry := LedgerEntry{
		RefID:     a.ref,
		EntryType: a.entryType,
		Direction: a.direction,
		Pool:      a.primary,
		OtherPool: a.otherPool,
		Amount:    a.amount,

		RegistryBalanceAfter:    a.snapshot.RegistryBalance,
		SafeBalanceAfter:        a.snapshot.SafeBalance,
		BankBalanceAfter:        a.snapshot.BankBalance,
		MobileMoneyBalanceAfter: a.snapshot.MobileMoneyBalance,

		RecordedByID: a.recordedByID,
		RecordedAt:   a.entryTime,
		Desc:         a.desc,
		Notes:        a.notes,
		PaymentID:    a.paymentID,
		StudentID:    a.studentID,
	}

	err := a.tx.Save(&entry).Error
	if err != nil {
		return a.setErr(err)
	}

	a.entry = &entry

	if a.afterCommit != nil {
		err = a.afterCommit(&entry)
		if err != nil {
			return a.setErr(err)
		}
	}

	return a
}

// Entry implements ApplyEntry.
func (a *applyEntryImpl) Entry() *LedgerEntry {
	return a.entry
}

// Err implements ApplyEntry.
func (a *applyEntryImpl) Err() error {
	return a.err
}

func (a *applyEntryImpl) setErr(err error) *applyEntryImpl {
	if a.err != nil {
		return a
	}

	if err != nil {
		a.err = err
	}

	return a
}
