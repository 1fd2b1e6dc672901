package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/cashflow-backend/internal/domain"
)

// Store is an in-memory implementation of domain.Store
// It is safe for concurrent use; every repository shares one RWMutex.
// It does not implement domain.Transactor, so the engine drives it step by step.
type Store struct {
	mu       sync.RWMutex
	deposits map[uuid.UUID]domain.Deposit
	expenses map[uuid.UUID]domain.Expense
	balance  *domain.Balance
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		deposits: make(map[uuid.UUID]domain.Deposit),
		expenses: make(map[uuid.UUID]domain.Expense),
	}
}

func (s *Store) Deposits() domain.DepositRepository { return &depositRepository{s: s} }
func (s *Store) Expenses() domain.ExpenseRepository { return &expenseRepository{s: s} }
func (s *Store) Balance() domain.BalanceRepository  { return &balanceRepository{s: s} }

// depositRepository implements domain.DepositRepository
type depositRepository struct {
	s *Store
}

func (r *depositRepository) Create(ctx context.Context, deposit *domain.Deposit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.deposits[deposit.ID]; exists {
		return fmt.Errorf("deposit %s already exists", deposit.ID)
	}
	r.s.deposits[deposit.ID] = *deposit
	return nil
}

func (r *depositRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deposit, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	d, ok := r.s.deposits[id]
	if !ok {
		return nil, fmt.Errorf("deposit %s: %w", id, domain.ErrNotFound)
	}
	return &d, nil
}

func (r *depositRepository) Update(ctx context.Context, deposit *domain.Deposit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.deposits[deposit.ID]; !ok {
		return fmt.Errorf("deposit %s: %w", deposit.ID, domain.ErrNotFound)
	}
	r.s.deposits[deposit.ID] = *deposit
	return nil
}

func (r *depositRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.deposits[id]; !ok {
		return fmt.Errorf("deposit %s: %w", id, domain.ErrNotFound)
	}
	delete(r.s.deposits, id)
	return nil
}

func (r *depositRepository) List(ctx context.Context) ([]*domain.Deposit, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	deposits := make([]*domain.Deposit, 0, len(r.s.deposits))
	for _, d := range r.s.deposits {
		d := d
		deposits = append(deposits, &d)
	}

	// Date descending, ID as a tie-breaker so listings are stable
	sort.Slice(deposits, func(i, j int) bool {
		if !deposits[i].Date.Equal(deposits[j].Date) {
			return deposits[i].Date.After(deposits[j].Date)
		}
		return deposits[i].ID.String() < deposits[j].ID.String()
	})
	return deposits, nil
}

// expenseRepository implements domain.ExpenseRepository
type expenseRepository struct {
	s *Store
}

func (r *expenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.expenses[expense.ID]; exists {
		return fmt.Errorf("expense %s already exists", expense.ID)
	}
	r.s.expenses[expense.ID] = *expense
	return nil
}

func (r *expenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Expense, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.expenses[id]
	if !ok {
		return nil, fmt.Errorf("expense %s: %w", id, domain.ErrNotFound)
	}
	return &e, nil
}

func (r *expenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.expenses[expense.ID]; !ok {
		return fmt.Errorf("expense %s: %w", expense.ID, domain.ErrNotFound)
	}
	r.s.expenses[expense.ID] = *expense
	return nil
}

func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.expenses[id]; !ok {
		return fmt.Errorf("expense %s: %w", id, domain.ErrNotFound)
	}
	delete(r.s.expenses, id)
	return nil
}

func (r *expenseRepository) List(ctx context.Context) ([]*domain.Expense, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	expenses := make([]*domain.Expense, 0, len(r.s.expenses))
	for _, e := range r.s.expenses {
		e := e
		expenses = append(expenses, &e)
	}

	sort.Slice(expenses, func(i, j int) bool {
		if !expenses[i].Date.Equal(expenses[j].Date) {
			return expenses[i].Date.After(expenses[j].Date)
		}
		return expenses[i].ID.String() < expenses[j].ID.String()
	})
	return expenses, nil
}

// balanceRepository implements domain.BalanceRepository
type balanceRepository struct {
	s *Store
}

func (r *balanceRepository) Get(ctx context.Context) (*domain.Balance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if r.s.balance == nil {
		return nil, domain.ErrNoBalance
	}
	b := *r.s.balance
	return &b, nil
}

func (r *balanceRepository) LoadOrInit(ctx context.Context, initial domain.Balance) (*domain.Balance, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.balance != nil {
		b := *r.s.balance
		return &b, false, nil
	}
	r.s.balance = &initial
	return &initial, true, nil
}

func (r *balanceRepository) Save(ctx context.Context, balance domain.Balance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.balance = &balance
	return nil
}

func (r *balanceRepository) ApplyDelta(ctx context.Context, capitalDelta, currentDelta decimal.Decimal) (*domain.Balance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.balance == nil {
		return nil, domain.ErrNoBalance
	}
	next := r.s.balance.Add(capitalDelta, currentDelta)
	r.s.balance = &next
	b := next
	return &b, nil
}

// Compile-time check: ensure Store implements domain.Store
var _ domain.Store = (*Store)(nil)
