package treasury_model

import (
	"time"

	"github.com/pdcgo/treasury_service/treasury_core"
)

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationFlagged  VerificationStatus = "flagged"
)

var verificationTransitions = map[VerificationStatus][]VerificationStatus{
	VerificationPending:  {VerificationApproved, VerificationFlagged},
	VerificationFlagged:  {VerificationApproved, VerificationPending},
	VerificationApproved: {},
}

func (s VerificationStatus) CanTransition(to VerificationStatus) bool {
	for _, next := range verificationTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// DailyVerification reconciles a physical count against the ledger, one
// per pool per day. Approval of a non zero discrepancy produces exactly
// one corrective adjustment entry.
type DailyVerification struct {
	ID               uint                   `json:"id" gorm:"primarykey"`
	VerificationDate time.Time              `json:"verification_date" gorm:"index:verif_day_pool,unique"`
	Pool             treasury_core.CashPool `json:"pool" gorm:"index:verif_day_pool,unique"`
	ExpectedBalance  int64                  `json:"expected_balance"`
	CountedBalance   int64                  `json:"counted_balance"`
	Discrepancy      int64                  `json:"discrepancy"`
	Status           VerificationStatus     `json:"status" gorm:"index"`
	Explanation      string                 `json:"explanation"`
	VerifiedByID     uint                   `json:"verified_by_id"`
	ReviewedByID     uint                   `json:"reviewed_by_id"`
	ReviewNotes      string                 `json:"review_notes"`
	CreatedAt        time.Time              `json:"created_at"`
	ReviewedAt       time.Time              `json:"reviewed_at"`
}

// GetEntityID implements authorization_iface.Entity.
func (d *DailyVerification) GetEntityID() string {
	return "treasury/daily_verification"
}
