package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/cashflow-backend/internal/domain"
)

// AddExpenseInput represents the input for recording an expense
type AddExpenseInput struct {
	Description string
	Amount      decimal.Decimal
	PaidBy      string
	Date        time.Time // Optional: defaults to now
}

// AddExpense records an expense and subtracts its amount from the current amount
// Capital is untouched by expenses.
// Fails with ErrInsufficientBalance when no balance exists or current < amount;
// that check happens before the expense is stored.
func (e *Engine) AddExpense(ctx context.Context, input AddExpenseInput) (*domain.Expense, error) {
	expense, err := domain.NewExpense(input.Description, input.Amount, input.PaidBy, input.Date, e.Now())
	if err != nil {
		return nil, err
	}

	err = e.run(ctx, domain.OpAddExpense, func(ctx context.Context, store domain.Store, p *progress) error {
		balance, err := store.Balance().Get(ctx)
		if err != nil {
			if errors.Is(err, domain.ErrNoBalance) {
				return fmt.Errorf("%w: no deposit recorded yet", domain.ErrInsufficientBalance)
			}
			return err
		}
		if !balance.CanSpend(expense.Amount) {
			return fmt.Errorf("%w: current amount %s is below %s", domain.ErrInsufficientBalance, balance.CurrentAmount, expense.Amount)
		}

		if err := store.Expenses().Create(ctx, expense); err != nil {
			return err
		}
		p.ledgerDone(expense.ID)

		_, err = store.Balance().ApplyDelta(ctx, decimal.Zero, expense.Amount.Neg())
		return err
	})
	if err != nil {
		return nil, err
	}

	return expense, nil
}

// UpdateExpenseInput represents the input for changing an expense
// Empty strings and zero Date keep the stored values
type UpdateExpenseInput struct {
	ID          uuid.UUID
	Description string
	Amount      decimal.Decimal
	PaidBy      string
	Date        time.Time
}

// UpdateExpense replaces the expense amount and applies current -= delta
// When the result would be negative the engine policy decides:
// PolicyReject fails with ErrInsufficientBalance, PolicyClamp floors current at zero.
func (e *Engine) UpdateExpense(ctx context.Context, input UpdateExpenseInput) (*domain.Expense, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	var updated domain.Expense
	err := e.run(ctx, domain.OpUpdateExpense, func(ctx context.Context, store domain.Store, p *progress) error {
		existing, err := store.Expenses().GetByID(ctx, input.ID)
		if err != nil {
			return err
		}
		balance, err := loadBalance(ctx, store)
		if err != nil {
			return err
		}

		updated = existing.Apply(domain.ExpenseChange{
			Description: input.Description,
			Amount:      input.Amount,
			PaidBy:      input.PaidBy,
			Date:        input.Date,
		})
		currentDelta, err := e.expenseDelta(*balance, updated.Amount.Sub(existing.Amount))
		if err != nil {
			return err
		}

		if err := store.Expenses().Update(ctx, &updated); err != nil {
			return err
		}
		p.ledgerDone(updated.ID)

		if currentDelta.IsZero() {
			return nil
		}
		_, err = store.Balance().ApplyDelta(ctx, decimal.Zero, currentDelta)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// expenseDelta turns an expense amount delta into the change of the current amount
func (e *Engine) expenseDelta(balance domain.Balance, amountDelta decimal.Decimal) (decimal.Decimal, error) {
	currentDelta := amountDelta.Neg()
	next := balance.CurrentAmount.Add(currentDelta)
	// lowering an expense is always accepted, even on an already negative balance
	if !amountDelta.IsPositive() || !next.IsNegative() {
		return currentDelta, nil
	}

	if e.Policy == PolicyClamp {
		// floor at zero: only what is left can be taken
		return balance.CurrentAmount.Neg(), nil
	}
	return decimal.Zero, fmt.Errorf("%w: current amount %s cannot absorb an increase of %s",
		domain.ErrInsufficientBalance, balance.CurrentAmount, amountDelta)
}

// DeleteExpense removes an expense and adds its amount back to the current amount
func (e *Engine) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	return e.run(ctx, domain.OpDeleteExpense, func(ctx context.Context, store domain.Store, p *progress) error {
		existing, err := store.Expenses().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if _, err := loadBalance(ctx, store); err != nil {
			return err
		}

		if err := store.Expenses().Delete(ctx, id); err != nil {
			return err
		}
		p.ledgerDone(id)

		_, err = store.Balance().ApplyDelta(ctx, decimal.Zero, existing.Amount)
		return err
	})
}
