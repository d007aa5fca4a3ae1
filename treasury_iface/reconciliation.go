package treasury_iface

type VerificationItem struct {
	Id               uint   `json:"id"`
	VerificationDate int64  `json:"verification_date"`
	Pool             string `json:"pool"`
	ExpectedBalance  int64  `json:"expected_balance"`
	CountedBalance   int64  `json:"counted_balance"`
	Discrepancy      int64  `json:"discrepancy"`
	Status           string `json:"status"`
	Explanation      string `json:"explanation"`
	VerifiedById     uint   `json:"verified_by_id"`
	ReviewedById     uint   `json:"reviewed_by_id"`
	ReviewNotes      string `json:"review_notes"`
	CreatedAt        int64  `json:"created_at"`
	ReviewedAt       int64  `json:"reviewed_at"`
}

type VerificationCreateRequest struct {
	Pool             string `json:"pool"`
	VerificationDate int64  `json:"verification_date"`
	CountedBalance   int64  `json:"counted_balance"`
	Explanation      string `json:"explanation"`
}

type VerificationCreateResponse struct {
	VerificationId  uint   `json:"verification_id"`
	ExpectedBalance int64  `json:"expected_balance"`
	Discrepancy     int64  `json:"discrepancy"`
	Status          string `json:"status"`
}

type VerificationReviewRequest struct {
	VerificationId uint   `json:"verification_id"`
	Approve        bool   `json:"approve"`
	ReviewNotes    string `json:"review_notes"`
}

type VerificationReviewResponse struct {
	Status  string `json:"status"`
	EntryId uint   `json:"entry_id"`
}

type VerificationGetRequest struct {
	Pool             string `json:"pool"`
	VerificationDate int64  `json:"verification_date"`
}

type VerificationGetResponse struct {
	Verification *VerificationItem `json:"verification"`
}

type TypeBreakdown struct {
	EntryType string `json:"entry_type"`
	TotalIn   int64  `json:"total_in"`
	TotalOut  int64  `json:"total_out"`
	Count     int    `json:"count"`
}

type DailyReportRequest struct {
	Date int64 `json:"date"`
}

type DailyReportResponse struct {
	Date     int64             `json:"date"`
	Opening  *TreasuryBalances `json:"opening"`
	Closing  *TreasuryBalances `json:"closing"`
	TotalIn  int64             `json:"total_in"`
	TotalOut int64             `json:"total_out"`
	ByType   []*TypeBreakdown  `json:"by_type"`
}
