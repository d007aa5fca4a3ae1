// Package ledger exposes the read side of the treasury ledger, balances
// and entry history. Mutations go through the transfer, settlement and
// reconciliation services.
package ledger

import (
	"github.com/pdcgo/shared/interfaces/authorization_iface"
	"gorm.io/gorm"
)

type ledgerServiceImpl struct {
	db   *gorm.DB
	auth authorization_iface.Authorization
}

func NewLedgerService(
	db *gorm.DB,
	auth authorization_iface.Authorization,
) *ledgerServiceImpl {
	return &ledgerServiceImpl{
		db:   db,
		auth: auth,
	}
}
