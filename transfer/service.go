package transfer

import (
	"github.com/pdcgo/shared/interfaces/authorization_iface"
	"gorm.io/gorm"
)

type transferServiceImpl struct {
	db   *gorm.DB
	auth authorization_iface.Authorization
}

func NewTransferService(db *gorm.DB, auth authorization_iface.Authorization) *transferServiceImpl {
	return &transferServiceImpl{
		db:   db,
		auth: auth,
	}
}
