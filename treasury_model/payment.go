package treasury_model

import (
	"time"

	"github.com/pdcgo/treasury_service/treasury_core"
)

type PaymentMethod string

const (
	CashMethod        PaymentMethod = "cash"
	MobileMoneyMethod PaymentMethod = "mobile_money"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case CashMethod, MobileMoneyMethod:
		return true
	}
	return false
}

type PaymentKind string

const (
	StudentFeeKind PaymentKind = "student_fee"
	ExpenseKind    PaymentKind = "expense"
)

func (k PaymentKind) Valid() bool {
	switch k {
	case StudentFeeKind, ExpenseKind:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPendingDeposit PaymentStatus = "pending_deposit"
	PaymentPendingReview  PaymentStatus = "pending_review"
	PaymentDeposited      PaymentStatus = "deposited"
	PaymentConfirmed      PaymentStatus = "confirmed"
	PaymentFailed         PaymentStatus = "failed"
	PaymentReversed       PaymentStatus = "reversed"
)

// paymentTransitions is the single transition table, every status change
// goes through CanTransition.
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPendingDeposit: {PaymentDeposited, PaymentFailed},
	PaymentPendingReview:  {PaymentConfirmed, PaymentFailed},
	PaymentDeposited:      {PaymentConfirmed, PaymentFailed},
	PaymentConfirmed:      {PaymentReversed},
	PaymentFailed:         {},
	PaymentReversed:       {},
}

func (s PaymentStatus) CanTransition(to PaymentStatus) bool {
	for _, next := range paymentTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

func (s PaymentStatus) Terminal() bool {
	return len(paymentTransitions[s]) == 0
}

// Payment is a recorded incoming (student fee) or outgoing (expense)
// amount awaiting settlement. No pool is touched before confirmation, the
// ledger entry exists only once status reaches confirmed.
type Payment struct {
	ID            uint          `json:"id" gorm:"primarykey"`
	Kind          PaymentKind   `json:"kind"`
	Method        PaymentMethod `json:"method"`
	Status        PaymentStatus `json:"status" gorm:"index"`
	Amount        int64         `json:"amount"`
	StudentID     uint          `json:"student_id"`
	AutoConfirmAt *time.Time    `json:"auto_confirm_at" gorm:"index"`
	RecordedByID  uint          `json:"recorded_by_id"`
	ConfirmedByID uint          `json:"confirmed_by_id"`
	ReviewedByID  uint          `json:"reviewed_by_id"`
	FailReason    string        `json:"fail_reason"`
	Desc          string        `json:"desc"`
	CreatedAt     time.Time     `json:"created_at"`
	ConfirmedAt   time.Time     `json:"confirmed_at"`
}

// GetEntityID implements authorization_iface.Entity.
func (p *Payment) GetEntityID() string {
	return "treasury/payment"
}

// SettlePool is the pool confirmation touches, cash through the registry
// drawer, mobile money on the wallet.
func (p *Payment) SettlePool() treasury_core.CashPool {
	if p.Method == MobileMoneyMethod {
		return treasury_core.MobileMoneyPool
	}
	return treasury_core.RegistryPool
}

func (p *Payment) SettleEntryType() treasury_core.EntryType {
	if p.Kind == ExpenseKind {
		return treasury_core.ExpensePaymentEntry
	}
	return treasury_core.StudentPaymentEntry
}

// CashDeposit joins a cash payment to the bank transfer that physically
// banked it.
type CashDeposit struct {
	ID             uint       `json:"id" gorm:"primarykey"`
	PaymentID      uint       `json:"payment_id" gorm:"index:deposit_payment,unique"`
	BankTransferID uint       `json:"bank_transfer_id" gorm:"index"`
	DepositedAt    time.Time  `json:"deposited_at"`
	VerifiedAt     *time.Time `json:"verified_at"`
	VerifiedByID   uint       `json:"verified_by_id"`
}
