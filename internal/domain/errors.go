package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrInvalidAmount is returned for non-numeric, non-finite or non-positive amounts
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidEntry is returned when a required text field of a ledger entry is missing
	ErrInvalidEntry = errors.New("invalid entry")

	// ErrNotFound is returned when a ledger entry id is unknown or malformed
	ErrNotFound = errors.New("not found")

	// ErrInsufficientBalance is returned when an expense would drive the current amount below zero
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrNoBalance is returned when the balance singleton does not exist yet
	ErrNoBalance = errors.New("balance not initialized")

	// ErrPartialApply marks a ledger write whose paired balance write failed
	ErrPartialApply = errors.New("partial apply failure")

	// ErrStoreUnavailable wraps failures of the underlying persistence
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Op names a reconciliation operation
type Op string

const (
	OpAddDeposit    Op = "AddDeposit"
	OpUpdateDeposit Op = "UpdateDeposit"
	OpDeleteDeposit Op = "DeleteDeposit"
	OpAddExpense    Op = "AddExpense"
	OpUpdateExpense Op = "UpdateExpense"
	OpDeleteExpense Op = "DeleteExpense"
	OpRebuild       Op = "Rebuild"
)

// PartialApplyError reports that the ledger side of an operation landed
// while the balance side did not. The caller decides whether to compensate.
type PartialApplyError struct {
	Op      Op
	EntryID uuid.UUID
	Err     error
}

func (e *PartialApplyError) Error() string {
	return fmt.Sprintf("%s: ledger entry %s written but balance update failed: %v", e.Op, e.EntryID, e.Err)
}

// Is makes errors.Is(err, ErrPartialApply) hold for every PartialApplyError
func (e *PartialApplyError) Is(target error) bool {
	return target == ErrPartialApply
}

func (e *PartialApplyError) Unwrap() error {
	return e.Err
}

// IsDomainError reports whether err carries one of the domain sentinels
func IsDomainError(err error) bool {
	for _, sentinel := range []error{
		ErrInvalidAmount,
		ErrInvalidEntry,
		ErrNotFound,
		ErrInsufficientBalance,
		ErrNoBalance,
		ErrPartialApply,
		ErrStoreUnavailable,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
