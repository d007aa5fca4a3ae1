package treasury_core

import (
	"errors"
	"fmt"
)

var (
	// ErrVersionConflict means the snapshot version moved between read and
	// write. OpenLedger retries it internally, callers only see it after
	// the retry budget is spent.
	ErrVersionConflict = errors.New("treasury snapshot version conflict")

	// ErrSkipLedger rolls back the current OpenLedger commit without
	// surfacing an error.
	ErrSkipLedger = errors.New("skip ledger commit")

	ErrSnapshotNotFound = errors.New("treasury snapshot not seeded")
)

type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Error implements error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

type InsufficientFundsError struct {
	Pool      CashPool `json:"pool"`
	Requested int64    `json:"requested"`
	Available int64    `json:"available"`
}

// Error implements error.
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds in %s pool, requested %d available %d",
		e.Pool, e.Requested, e.Available)
}

type PreconditionError struct {
	Reason string `json:"reason"`
}

// Error implements error.
func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed: %s", e.Reason)
}

type InvalidTransitionError struct {
	Entity string `json:"entity"`
	From   string `json:"from"`
	To     string `json:"to"`
}

// Error implements error.
func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s cannot transition %s -> %s", e.Entity, e.From, e.To)
}
