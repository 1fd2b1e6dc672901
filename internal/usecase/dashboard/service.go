package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/cashflow-backend/internal/domain"
)

// DepositList is the deposits listing plus its running total
type DepositList struct {
	Deposits    []*domain.Deposit
	TotalAmount decimal.Decimal
}

// ExpenseList is the expenses listing plus its running total
type ExpenseList struct {
	Expenses     []*domain.Expense
	TotalExpense decimal.Decimal
}

// BalanceView is the stored balance as shown to readers
// Exists is false before the first deposit; both figures are then zero
type BalanceView struct {
	domain.Balance
	Exists bool
}

// DashboardService handles read-side queries
// Totals are re-aggregated from the returned entries and never read from
// the stored balance.
type DashboardService struct {
	DepositRepo domain.DepositRepository
	ExpenseRepo domain.ExpenseRepository
	BalanceRepo domain.BalanceRepository
}

// NewDashboardService creates a new DashboardService instance
func NewDashboardService(store domain.Store) *DashboardService {
	return &DashboardService{
		DepositRepo: store.Deposits(),
		ExpenseRepo: store.Expenses(),
		BalanceRepo: store.Balance(),
	}
}

// ListDeposits returns every deposit sorted by date descending
// Logic:
//   - Deposits: repository listing (date desc)
//   - TotalAmount: sum of the amount field over that same set
func (s *DashboardService) ListDeposits(ctx context.Context) (*DepositList, error) {
	deposits, err := s.DepositRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list deposits: %w", storeError(err))
	}

	return &DepositList{
		Deposits:    deposits,
		TotalAmount: domain.SumDeposits(deposits),
	}, nil
}

// ListExpenses returns every expense sorted by date descending with its total
func (s *DashboardService) ListExpenses(ctx context.Context) (*ExpenseList, error) {
	expenses, err := s.ExpenseRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", storeError(err))
	}

	return &ExpenseList{
		Expenses:     expenses,
		TotalExpense: domain.SumExpenses(expenses),
	}, nil
}

// GetDeposit retrieves a single deposit
func (s *DashboardService) GetDeposit(ctx context.Context, id uuid.UUID) (*domain.Deposit, error) {
	deposit, err := s.DepositRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	return deposit, nil
}

// GetExpense retrieves a single expense
func (s *DashboardService) GetExpense(ctx context.Context, id uuid.UUID) (*domain.Expense, error) {
	expense, err := s.ExpenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	return expense, nil
}

// GetBalance reads the balance singleton directly from the store
func (s *DashboardService) GetBalance(ctx context.Context) (*BalanceView, error) {
	balance, err := s.BalanceRepo.Get(ctx)
	if errors.Is(err, domain.ErrNoBalance) {
		return &BalanceView{
			Balance: domain.Balance{CapitalAmount: decimal.Zero, CurrentAmount: decimal.Zero},
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", storeError(err))
	}

	return &BalanceView{Balance: *balance, Exists: true}, nil
}

// storeError keeps domain errors and marks everything else as a store failure
func storeError(err error) error {
	if domain.IsDomainError(err) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
}
