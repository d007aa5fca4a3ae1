package treasury_iface

type PaymentItem struct {
	Id            uint   `json:"id"`
	Kind          string `json:"kind"`
	Method        string `json:"method"`
	Status        string `json:"status"`
	Amount        int64  `json:"amount"`
	StudentId     uint   `json:"student_id"`
	AutoConfirmAt int64  `json:"auto_confirm_at"`
	RecordedById  uint   `json:"recorded_by_id"`
	ConfirmedById uint   `json:"confirmed_by_id"`
	FailReason    string `json:"fail_reason"`
	Desc          string `json:"desc"`
	CreatedAt     int64  `json:"created_at"`
}

type PaymentCreateRequest struct {
	Kind      string `json:"kind"`
	Method    string `json:"method"`
	Amount    int64  `json:"amount"`
	StudentId uint   `json:"student_id"`
	Desc      string `json:"desc"`
}

type PaymentCreateResponse struct {
	PaymentId     uint   `json:"payment_id"`
	Status        string `json:"status"`
	AutoConfirmAt int64  `json:"auto_confirm_at"`
}

type PaymentConfirmRequest struct {
	PaymentId uint `json:"payment_id"`
}

type PaymentConfirmResponse struct {
	Status  string `json:"status"`
	EntryId uint   `json:"entry_id"`
}

type PaymentFailRequest struct {
	PaymentId uint   `json:"payment_id"`
	Reason    string `json:"reason"`
}

type PaymentFailResponse struct {
	Status string `json:"status"`
}

type PaymentReverseRequest struct {
	PaymentId uint   `json:"payment_id"`
	Reason    string `json:"reason"`
}

type PaymentReverseResponse struct {
	Status  string `json:"status"`
	EntryId uint   `json:"entry_id"`
}

type PaymentGetRequest struct {
	PaymentId uint `json:"payment_id"`
}

type PaymentGetResponse struct {
	Payment *PaymentItem `json:"payment"`
}

type SettlementSweepRequest struct{}

type SettlementSweepResponse struct {
	ConfirmedCount int `json:"confirmed_count"`
}
