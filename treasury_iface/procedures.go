package treasury_iface

// Procedure paths of the treasury service handlers.
const (
	TransferServiceDailyOpeningProcedure   = "/treasury.v1.TransferService/DailyOpening"
	TransferServiceCashTransferProcedure   = "/treasury.v1.TransferService/CashTransfer"
	TransferServiceBankDepositProcedure    = "/treasury.v1.TransferService/BankDeposit"
	TransferServiceMobileMoneyFeeProcedure = "/treasury.v1.TransferService/MobileMoneyFee"

	SettlementServicePaymentCreateProcedure   = "/treasury.v1.SettlementService/PaymentCreate"
	SettlementServicePaymentConfirmProcedure  = "/treasury.v1.SettlementService/PaymentConfirm"
	SettlementServicePaymentFailProcedure     = "/treasury.v1.SettlementService/PaymentFail"
	SettlementServicePaymentReverseProcedure  = "/treasury.v1.SettlementService/PaymentReverse"
	SettlementServicePaymentGetProcedure      = "/treasury.v1.SettlementService/PaymentGet"
	SettlementServiceSettlementSweepProcedure = "/treasury.v1.SettlementService/SettlementSweep"

	LedgerServiceBalanceGetProcedure = "/treasury.v1.LedgerService/BalanceGet"
	LedgerServiceEntryListProcedure  = "/treasury.v1.LedgerService/EntryList"

	ReconServiceVerificationCreateProcedure = "/treasury.v1.ReconciliationService/VerificationCreate"
	ReconServiceVerificationReviewProcedure = "/treasury.v1.ReconciliationService/VerificationReview"
	ReconServiceVerificationGetProcedure    = "/treasury.v1.ReconciliationService/VerificationGet"
	ReconServiceDailyReportProcedure        = "/treasury.v1.ReconciliationService/DailyReport"
)
