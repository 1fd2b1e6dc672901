package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DepositRepository defines the interface for deposit persistence operations
type DepositRepository interface {
	// Create stores a new deposit
	Create(ctx context.Context, deposit *Deposit) error

	// GetByID retrieves a deposit by its ID
	// Returns ErrNotFound if the deposit does not exist
	GetByID(ctx context.Context, id uuid.UUID) (*Deposit, error)

	// Update overwrites every field of an existing deposit
	// Returns ErrNotFound if the deposit does not exist
	Update(ctx context.Context, deposit *Deposit) error

	// Delete removes a deposit
	// Returns ErrNotFound if the deposit does not exist
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves all deposits sorted by date descending
	List(ctx context.Context) ([]*Deposit, error)
}

// ExpenseRepository defines the interface for expense persistence operations
type ExpenseRepository interface {
	// Create stores a new expense
	Create(ctx context.Context, expense *Expense) error

	// GetByID retrieves an expense by its ID
	// Returns ErrNotFound if the expense does not exist
	GetByID(ctx context.Context, id uuid.UUID) (*Expense, error)

	// Update overwrites every field of an existing expense
	// Returns ErrNotFound if the expense does not exist
	Update(ctx context.Context, expense *Expense) error

	// Delete removes an expense
	// Returns ErrNotFound if the expense does not exist
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves all expenses sorted by date descending
	List(ctx context.Context) ([]*Expense, error)
}

// BalanceRepository defines the interface for the balance singleton
// At most one balance record exists at any time
type BalanceRepository interface {
	// Get retrieves the balance
	// Returns ErrNoBalance if it was never created
	Get(ctx context.Context) (*Balance, error)

	// LoadOrInit returns the existing balance, or creates it with the initial figures
	// The boolean reports whether the balance was created by this call
	LoadOrInit(ctx context.Context, initial Balance) (*Balance, bool, error)

	// Save creates or replaces the balance
	Save(ctx context.Context, balance Balance) error

	// ApplyDelta moves both figures by the given deltas and returns the new balance
	// Returns ErrNoBalance if the balance does not exist; callers create it first
	ApplyDelta(ctx context.Context, capitalDelta, currentDelta decimal.Decimal) (*Balance, error)
}

// Store groups the repositories the reconciliation engine writes through
type Store interface {
	Deposits() DepositRepository
	Expenses() ExpenseRepository
	Balance() BalanceRepository
}

// Transactor is implemented by stores able to run a unit of work atomically
// Every write made through the Store passed to fn is committed together,
// or rolled back together when fn returns an error
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, store Store) error) error
}
