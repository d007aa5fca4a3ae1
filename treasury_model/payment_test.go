package treasury_model_test

import (
	"testing"

	"github.com/pdcgo/treasury_service/treasury_core"
	"github.com/pdcgo/treasury_service/treasury_model"
	"github.com/stretchr/testify/assert"
)

func TestPaymentTransitions(t *testing.T) {
	type move struct {
		from    treasury_model.PaymentStatus
		to      treasury_model.PaymentStatus
		allowed bool
	}

	moves := []move{
		{treasury_model.PaymentPendingDeposit, treasury_model.PaymentDeposited, true},
		{treasury_model.PaymentPendingDeposit, treasury_model.PaymentFailed, true},
		{treasury_model.PaymentPendingDeposit, treasury_model.PaymentConfirmed, false},
		{treasury_model.PaymentPendingReview, treasury_model.PaymentConfirmed, true},
		{treasury_model.PaymentPendingReview, treasury_model.PaymentFailed, true},
		{treasury_model.PaymentPendingReview, treasury_model.PaymentDeposited, false},
		{treasury_model.PaymentDeposited, treasury_model.PaymentConfirmed, true},
		{treasury_model.PaymentDeposited, treasury_model.PaymentFailed, true},
		{treasury_model.PaymentConfirmed, treasury_model.PaymentReversed, true},
		{treasury_model.PaymentConfirmed, treasury_model.PaymentFailed, false},
		{treasury_model.PaymentFailed, treasury_model.PaymentConfirmed, false},
		{treasury_model.PaymentReversed, treasury_model.PaymentConfirmed, false},
	}

	for _, m := range moves {
		assert.Equal(t, m.allowed, m.from.CanTransition(m.to),
			"%s -> %s", m.from, m.to)
	}

	assert.True(t, treasury_model.PaymentFailed.Terminal())
	assert.True(t, treasury_model.PaymentReversed.Terminal())
	assert.False(t, treasury_model.PaymentConfirmed.Terminal())
}

func TestVerificationTransitions(t *testing.T) {
	assert.True(t, treasury_model.VerificationFlagged.CanTransition(treasury_model.VerificationApproved))
	assert.True(t, treasury_model.VerificationPending.CanTransition(treasury_model.VerificationFlagged))
	assert.False(t, treasury_model.VerificationApproved.CanTransition(treasury_model.VerificationFlagged))
}

func TestPaymentSettleTarget(t *testing.T) {
	cash := treasury_model.Payment{
		Kind:   treasury_model.StudentFeeKind,
		Method: treasury_model.CashMethod,
	}
	assert.Equal(t, treasury_core.RegistryPool, cash.SettlePool())
	assert.Equal(t, treasury_core.StudentPaymentEntry, cash.SettleEntryType())

	wallet := treasury_model.Payment{
		Kind:   treasury_model.ExpenseKind,
		Method: treasury_model.MobileMoneyMethod,
	}
	assert.Equal(t, treasury_core.MobileMoneyPool, wallet.SettlePool())
	assert.Equal(t, treasury_core.ExpensePaymentEntry, wallet.SettleEntryType())
}
