package treasury_core

import (
	"github.com/pdcgo/treasury_service/treasury_iface"
)

func (s *TreasurySnapshot) Iface() *treasury_iface.TreasuryBalances {
	return &treasury_iface.TreasuryBalances{
		Registry:    s.RegistryBalance,
		Safe:        s.SafeBalance,
		Bank:        s.BankBalance,
		MobileMoney: s.MobileMoneyBalance,
		Version:     s.Version,
		UpdatedAt:   s.UpdatedAt.UnixMicro(),
	}
}

func (e *LedgerEntry) Iface() *treasury_iface.EntryItem {
	return &treasury_iface.EntryItem{
		Id:        e.ID,
		RefId:     string(e.RefID),
		EntryType: string(e.EntryType),
		Direction: string(e.Direction),
		Pool:      string(e.Pool),
		OtherPool: string(e.OtherPool),
		Amount:    e.Amount,

		RegistryBalanceAfter:    e.RegistryBalanceAfter,
		SafeBalanceAfter:        e.SafeBalanceAfter,
		BankBalanceAfter:        e.BankBalanceAfter,
		MobileMoneyBalanceAfter: e.MobileMoneyBalanceAfter,

		RecordedById: e.RecordedByID,
		RecordedAt:   e.RecordedAt.UnixMicro(),
		Desc:         e.Desc,
		Notes:        e.Notes,
		PaymentId:    e.PaymentID,
		StudentId:    e.StudentID,
	}
}
