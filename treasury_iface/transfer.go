package treasury_iface

type DailyOpeningRequest struct {
	CountedSafeBalance int64  `json:"counted_safe_balance"`
	FloatAmount        int64  `json:"float_amount"`
	Notes              string `json:"notes"`
}

type DailyOpeningResponse struct {
	Discrepancy int64             `json:"discrepancy"`
	EntryIds    []uint            `json:"entry_ids"`
	Balances    *TreasuryBalances `json:"balances"`
}

type CashTransferRequest struct {
	// Direction is safe_to_registry or registry_to_safe.
	Direction string `json:"direction"`
	Amount    int64  `json:"amount"`
	Notes     string `json:"notes"`
}

type CashTransferResponse struct {
	EntryId  uint              `json:"entry_id"`
	Balances *TreasuryBalances `json:"balances"`
}

type BankDepositRequest struct {
	PaymentIds           []uint `json:"payment_ids"`
	CountedDepositAmount int64  `json:"counted_deposit_amount"`
	BankReference        string `json:"bank_reference"`
	TransferAt           int64  `json:"transfer_at"`
}

type BankDepositResponse struct {
	BankTransferId uint              `json:"bank_transfer_id"`
	EntryId        uint              `json:"entry_id"`
	Balances       *TreasuryBalances `json:"balances"`
}

type MobileMoneyFeeRequest struct {
	Amount int64  `json:"amount"`
	Desc   string `json:"desc"`
}

type MobileMoneyFeeResponse struct {
	EntryId  uint              `json:"entry_id"`
	Balances *TreasuryBalances `json:"balances"`
}
