package treasury_core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type CashPool string

const (
	RegistryPool    CashPool = "registry"
	SafePool        CashPool = "safe"
	BankPool        CashPool = "bank"
	MobileMoneyPool CashPool = "mobile_money"
)

func AllPools() []CashPool {
	return []CashPool{RegistryPool, SafePool, BankPool, MobileMoneyPool}
}

func (p CashPool) Valid() bool {
	switch p {
	case RegistryPool, SafePool, BankPool, MobileMoneyPool:
		return true
	}
	return false
}

type EntryType string

const (
	SafeToRegistryEntry EntryType = "safe_to_registry"
	RegistryToSafeEntry EntryType = "registry_to_safe"
	StudentPaymentEntry EntryType = "student_payment"
	ExpensePaymentEntry EntryType = "expense_payment"
	BankDepositEntry    EntryType = "bank_deposit"
	MobileMoneyFeeEntry EntryType = "mobile_money_fee"
	AdjustmentEntry     EntryType = "adjustment"
)

func (t EntryType) Valid() bool {
	switch t {
	case SafeToRegistryEntry, RegistryToSafeEntry, StudentPaymentEntry,
		ExpensePaymentEntry, BankDepositEntry, MobileMoneyFeeEntry, AdjustmentEntry:
		return true
	}
	return false
}

type EntryDirection string

const (
	DirectionIn  EntryDirection = "in"
	DirectionOut EntryDirection = "out"
)

// TreasurySnapshot is the single current-state row. All balances in the
// smallest currency unit. Mutated only through OpenLedger, version is the
// optimistic lock.
type TreasurySnapshot struct {
	ID                 uint      `json:"id" gorm:"primarykey"`
	RegistryBalance    int64     `json:"registry_balance"`
	SafeBalance        int64     `json:"safe_balance"`
	BankBalance        int64     `json:"bank_balance"`
	MobileMoneyBalance int64     `json:"mobile_money_balance"`
	RegistryFloat      int64     `json:"registry_float"`
	SafeThresholdMin   int64     `json:"safe_threshold_min"`
	SafeThresholdMax   int64     `json:"safe_threshold_max"`
	Version            uint      `json:"version"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (s *TreasurySnapshot) Balance(pool CashPool) int64 {
	switch pool {
	case RegistryPool:
		return s.RegistryBalance
	case SafePool:
		return s.SafeBalance
	case BankPool:
		return s.BankBalance
	case MobileMoneyPool:
		return s.MobileMoneyBalance
	}
	return 0
}

func (s *TreasurySnapshot) SetBalance(pool CashPool, amount int64) {
	switch pool {
	case RegistryPool:
		s.RegistryBalance = amount
	case SafePool:
		s.SafeBalance = amount
	case BankPool:
		s.BankBalance = amount
	case MobileMoneyPool:
		s.MobileMoneyBalance = amount
	}
}

// LedgerEntry is one immutable balance-affecting record. Post balances of
// all four pools are stored on every entry so the chain can be audited
// without replay.
type LedgerEntry struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	RefID     RefID          `json:"ref_id" gorm:"index"`
	EntryType EntryType      `json:"entry_type" gorm:"index"`
	Direction EntryDirection `json:"direction"`
	Pool      CashPool       `json:"pool" gorm:"index"`
	OtherPool CashPool       `json:"other_pool" gorm:"index"`
	Amount    int64          `json:"amount"`

	RegistryBalanceAfter    int64 `json:"registry_balance_after"`
	SafeBalanceAfter        int64 `json:"safe_balance_after"`
	BankBalanceAfter        int64 `json:"bank_balance_after"`
	MobileMoneyBalanceAfter int64 `json:"mobile_money_balance_after"`

	RecordedByID uint      `json:"recorded_by_id"`
	RecordedAt   time.Time `json:"recorded_at" gorm:"index"`
	Desc         string    `json:"desc"`
	Notes        string    `json:"notes"`
	PaymentID    uint      `json:"payment_id"`
	StudentID    uint      `json:"student_id"`
}

func (e *LedgerEntry) BalanceAfter(pool CashPool) int64 {
	switch pool {
	case RegistryPool:
		return e.RegistryBalanceAfter
	case SafePool:
		return e.SafeBalanceAfter
	case BankPool:
		return e.BankBalanceAfter
	case MobileMoneyPool:
		return e.MobileMoneyBalanceAfter
	}
	return 0
}

type LedgerEntryList []*LedgerEntry

// PoolDelta recovers the signed delta an entry applied to a pool, given
// the entry preceding it in the chain. prev may be nil for the first entry.
func (e *LedgerEntry) PoolDelta(pool CashPool, prev *LedgerEntry) int64 {
	var before int64
	if prev != nil {
		before = prev.BalanceAfter(pool)
	}
	return e.BalanceAfter(pool) - before
}

type RefType string

const (
	DailyOpeningRef RefType = "daily_opening"
	CashTransferRef RefType = "cash_transfer"
	PaymentRef      RefType = "payment"
	BankDepositRef  RefType = "bank_deposit"
	MobileFeeRef    RefType = "mm_fee"
	VerificationRef RefType = "verification"
	ReversalRef     RefType = "reversal"
	AdjustmentRef   RefType = "adjustment"
)

type RefData struct {
	RefType RefType
	ID      uint
}

type RefID string

func NewRefID(data *RefData) RefID {
	return RefID(fmt.Sprintf("%s#%d", data.RefType, data.ID))
}

type StringRefData struct {
	RefType RefType
	ID      string
}

func NewStringRefID(data *StringRefData) RefID {
	return RefID(fmt.Sprintf("%s#%s", data.RefType, data.ID))
}

func (r RefID) Extract() (*RefData, error) {
	ss := strings.SplitN(string(r), "#", 2)
	if len(ss) != 2 {
		return nil, fmt.Errorf("ref id malformed %s", r)
	}
	idx, err := strconv.ParseUint(ss[1], 10, 64)
	if err != nil {
		return nil, err
	}
	return &RefData{
		RefType: RefType(ss[0]),
		ID:      uint(idx),
	}, nil
}
