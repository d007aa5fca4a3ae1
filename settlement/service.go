package settlement

import (
	"time"

	"github.com/pdcgo/shared/interfaces/authorization_iface"
	"gorm.io/gorm"
)

// AutoConfirmDelay is how long a mobile money payment waits in
// pending_review before the sweep confirms it without manual action.
const AutoConfirmDelay = 24 * time.Hour

type settlementServiceImpl struct {
	db        *gorm.DB
	auth      authorization_iface.Authorization
	scheduler *SweepScheduler
}

func NewSettlementService(
	db *gorm.DB,
	auth authorization_iface.Authorization,
	scheduler *SweepScheduler,
) *settlementServiceImpl {
	return &settlementServiceImpl{
		db:        db,
		auth:      auth,
		scheduler: scheduler,
	}
}
