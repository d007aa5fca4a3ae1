package treasury_service

import (
	"log"
	"net/http"

	"connectrpc.com/connect"
	"github.com/pdcgo/shared/interfaces/authorization_iface"
	"github.com/pdcgo/shared/pkg/ware_cache"
	"github.com/pdcgo/treasury_service/ledger"
	"github.com/pdcgo/treasury_service/reconciliation"
	"github.com/pdcgo/treasury_service/settlement"
	"github.com/pdcgo/treasury_service/transfer"
	"github.com/pdcgo/treasury_service/treasury_core"
	"github.com/pdcgo/treasury_service/treasury_iface"
	"github.com/pdcgo/treasury_service/treasury_model"
	"gorm.io/gorm"
)

type SeedHandler func() error

// NewSeedHandler creates the genesis snapshot when the database has none.
// All pools start at zero, opening balances arrive as adjustment entries.
func NewSeedHandler(
	db *gorm.DB,
) SeedHandler {
	return func() error {
		log.Println("seeding treasury service")

		var old treasury_core.TreasurySnapshot
		err := db.
			Model(&treasury_core.TreasurySnapshot{}).
			Order("id asc").
			Limit(1).
			Find(&old).
			Error
		if err != nil {
			return err
		}
		if old.ID != 0 {
			return nil
		}

		snap := treasury_core.TreasurySnapshot{
			SafeThresholdMin: 500_000,
			SafeThresholdMax: 20_000_000,
		}
		return db.Save(&snap).Error
	}
}

type MigrationHandler func() error

func NewMigrationHandler(
	db *gorm.DB,
) MigrationHandler {
	return func() error {
		log.Println("migrating treasury service")
		return db.AutoMigrate(
			&treasury_core.TreasurySnapshot{},
			&treasury_core.LedgerEntry{},

			&treasury_model.Payment{},
			&treasury_model.BankTransfer{},
			&treasury_model.CashDeposit{},
			&treasury_model.DailyVerification{},
		)
	}
}

type RegisterHandler func()

func NewRegister(
	db *gorm.DB,
	auth authorization_iface.Authorization,
	mux *http.ServeMux,
	cache ware_cache.Cache,
	scheduler *settlement.SweepScheduler,
) RegisterHandler {

	return func() {
		transferService := transfer.NewTransferService(db, auth)
		mux.Handle(treasury_iface.TransferServiceDailyOpeningProcedure,
			connect.NewUnaryHandler(treasury_iface.TransferServiceDailyOpeningProcedure, transferService.DailyOpening))
		mux.Handle(treasury_iface.TransferServiceCashTransferProcedure,
			connect.NewUnaryHandler(treasury_iface.TransferServiceCashTransferProcedure, transferService.CashTransfer))
		mux.Handle(treasury_iface.TransferServiceBankDepositProcedure,
			connect.NewUnaryHandler(treasury_iface.TransferServiceBankDepositProcedure, transferService.BankDeposit))
		mux.Handle(treasury_iface.TransferServiceMobileMoneyFeeProcedure,
			connect.NewUnaryHandler(treasury_iface.TransferServiceMobileMoneyFeeProcedure, transferService.MobileMoneyFee))

		settlementService := settlement.NewSettlementService(db, auth, scheduler)
		mux.Handle(treasury_iface.SettlementServicePaymentCreateProcedure,
			connect.NewUnaryHandler(treasury_iface.SettlementServicePaymentCreateProcedure, settlementService.PaymentCreate))
		mux.Handle(treasury_iface.SettlementServicePaymentConfirmProcedure,
			connect.NewUnaryHandler(treasury_iface.SettlementServicePaymentConfirmProcedure, settlementService.PaymentConfirm))
		mux.Handle(treasury_iface.SettlementServicePaymentFailProcedure,
			connect.NewUnaryHandler(treasury_iface.SettlementServicePaymentFailProcedure, settlementService.PaymentFail))
		mux.Handle(treasury_iface.SettlementServicePaymentReverseProcedure,
			connect.NewUnaryHandler(treasury_iface.SettlementServicePaymentReverseProcedure, settlementService.PaymentReverse))
		mux.Handle(treasury_iface.SettlementServicePaymentGetProcedure,
			connect.NewUnaryHandler(treasury_iface.SettlementServicePaymentGetProcedure, settlementService.PaymentGet))
		mux.Handle(treasury_iface.SettlementServiceSettlementSweepProcedure,
			connect.NewUnaryHandler(treasury_iface.SettlementServiceSettlementSweepProcedure, settlementService.SettlementSweep))

		ledgerService := ledger.NewLedgerService(db, auth)
		mux.Handle(treasury_iface.LedgerServiceBalanceGetProcedure,
			connect.NewUnaryHandler(treasury_iface.LedgerServiceBalanceGetProcedure, ledgerService.BalanceGet))
		mux.Handle(treasury_iface.LedgerServiceEntryListProcedure,
			connect.NewUnaryHandler(treasury_iface.LedgerServiceEntryListProcedure, ledgerService.EntryList))

		reconService := reconciliation.NewReconciliationService(db, auth, cache)
		mux.Handle(treasury_iface.ReconServiceVerificationCreateProcedure,
			connect.NewUnaryHandler(treasury_iface.ReconServiceVerificationCreateProcedure, reconService.VerificationCreate))
		mux.Handle(treasury_iface.ReconServiceVerificationReviewProcedure,
			connect.NewUnaryHandler(treasury_iface.ReconServiceVerificationReviewProcedure, reconService.VerificationReview))
		mux.Handle(treasury_iface.ReconServiceVerificationGetProcedure,
			connect.NewUnaryHandler(treasury_iface.ReconServiceVerificationGetProcedure, reconService.VerificationGet))
		mux.Handle(treasury_iface.ReconServiceDailyReportProcedure,
			connect.NewUnaryHandler(treasury_iface.ReconServiceDailyReportProcedure, reconService.DailyReport))
	}

}
