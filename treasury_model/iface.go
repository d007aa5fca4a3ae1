package treasury_model

import "github.com/pdcgo/treasury_service/treasury_iface"

// Iface converts the payment for the api response.
func (p *Payment) Iface() *treasury_iface.PaymentItem {
	item := treasury_iface.PaymentItem{
		Id:            p.ID,
		Kind:          string(p.Kind),
		Method:        string(p.Method),
		Status:        string(p.Status),
		Amount:        p.Amount,
		StudentId:     p.StudentID,
		RecordedById:  p.RecordedByID,
		ConfirmedById: p.ConfirmedByID,
		FailReason:    p.FailReason,
		Desc:          p.Desc,
		CreatedAt:     p.CreatedAt.UnixMicro(),
	}

	if p.AutoConfirmAt != nil {
		item.AutoConfirmAt = p.AutoConfirmAt.UnixMicro()
	}

	return &item
}

// Iface converts the verification for the api response.
func (v *DailyVerification) Iface() *treasury_iface.VerificationItem {
	item := treasury_iface.VerificationItem{
		Id:               v.ID,
		Pool:             string(v.Pool),
		VerificationDate: v.VerificationDate.UnixMicro(),
		ExpectedBalance:  v.ExpectedBalance,
		CountedBalance:   v.CountedBalance,
		Discrepancy:      v.Discrepancy,
		Status:           string(v.Status),
		Explanation:      v.Explanation,
		VerifiedById:     v.VerifiedByID,
		ReviewedById:     v.ReviewedByID,
		ReviewNotes:      v.ReviewNotes,
		CreatedAt:        v.CreatedAt.UnixMicro(),
	}

	if !v.ReviewedAt.IsZero() {
		item.ReviewedAt = v.ReviewedAt.UnixMicro()
	}

	return &item
}
