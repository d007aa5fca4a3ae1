// Package treasury_iface holds the wire messages of the treasury service.
// Timestamps travel as unix microseconds.
package treasury_iface

type TreasuryBalances struct {
	Registry    int64 `json:"registry"`
	Safe        int64 `json:"safe"`
	Bank        int64 `json:"bank"`
	MobileMoney int64 `json:"mobile_money"`
	Version     uint  `json:"version"`
	UpdatedAt   int64 `json:"updated_at"`
}

type EntryItem struct {
	Id        uint   `json:"id"`
	RefId     string `json:"ref_id"`
	EntryType string `json:"entry_type"`
	Direction string `json:"direction"`
	Pool      string `json:"pool"`
	OtherPool string `json:"other_pool"`
	Amount    int64  `json:"amount"`

	RegistryBalanceAfter    int64 `json:"registry_balance_after"`
	SafeBalanceAfter        int64 `json:"safe_balance_after"`
	BankBalanceAfter        int64 `json:"bank_balance_after"`
	MobileMoneyBalanceAfter int64 `json:"mobile_money_balance_after"`

	RecordedById uint   `json:"recorded_by_id"`
	RecordedAt   int64  `json:"recorded_at"`
	Desc         string `json:"desc"`
	Notes        string `json:"notes"`
	PaymentId    uint   `json:"payment_id"`
	StudentId    uint   `json:"student_id"`
}

type BalanceGetRequest struct{}

type BalanceGetResponse struct {
	Balances *TreasuryBalances `json:"balances"`
}

type EntryListRequest struct {
	TimeFrom  int64  `json:"time_from"`
	TimeTo    int64  `json:"time_to"`
	EntryType string `json:"entry_type"`
	Pool      string `json:"pool"`
	PaymentId uint   `json:"payment_id"`
}

type EntryListResponse struct {
	Data []*EntryItem `json:"data"`
}
