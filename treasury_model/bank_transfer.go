package treasury_model

import "time"

// BankTransfer records physically moving counted cash from the safe to the
// bank. Always paired with exactly one bank_deposit ledger entry.
type BankTransfer struct {
	ID            uint      `json:"id" gorm:"primarykey"`
	Amount        int64     `json:"amount"`
	TransferDate  time.Time `json:"transfer_date" gorm:"index"`
	BankReference string    `json:"bank_reference"`
	RecordedByID  uint      `json:"recorded_by_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// GetEntityID implements authorization_iface.Entity.
func (b *BankTransfer) GetEntityID() string {
	return "treasury/bank_transfer"
}
