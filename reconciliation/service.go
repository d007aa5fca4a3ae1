package reconciliation

import (
	"github.com/pdcgo/shared/interfaces/authorization_iface"
	"github.com/pdcgo/shared/pkg/ware_cache"
	"gorm.io/gorm"
)

type reconServiceImpl struct {
	db    *gorm.DB
	auth  authorization_iface.Authorization
	cache ware_cache.Cache
}

func NewReconciliationService(
	db *gorm.DB,
	auth authorization_iface.Authorization,
	cache ware_cache.Cache,
) *reconServiceImpl {
	return &reconServiceImpl{
		db:    db,
		auth:  auth,
		cache: cache,
	}
}
