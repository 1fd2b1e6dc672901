package reconcile

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/cashflow-backend/internal/domain"
)

// AddDepositInput represents the input for recording a deposit
type AddDepositInput struct {
	Name   string
	Amount decimal.Decimal
	Date   time.Time // Optional: defaults to now
}

// AddDeposit records a deposit and moves capital and current by its amount
// Logic:
//  1. Validate amount and name
//  2. Create the deposit
//  3. Load the balance, creating it with capital = current = amount if absent
//  4. Otherwise add amount to both figures
func (e *Engine) AddDeposit(ctx context.Context, input AddDepositInput) (*domain.Deposit, error) {
	deposit, err := domain.NewDeposit(input.Name, input.Amount, input.Date, e.Now())
	if err != nil {
		return nil, err
	}

	err = e.run(ctx, domain.OpAddDeposit, func(ctx context.Context, store domain.Store, p *progress) error {
		if err := store.Deposits().Create(ctx, deposit); err != nil {
			return err
		}
		p.ledgerDone(deposit.ID)

		initial := domain.Balance{CapitalAmount: deposit.Amount, CurrentAmount: deposit.Amount}
		_, created, err := store.Balance().LoadOrInit(ctx, initial)
		if err != nil {
			return err
		}
		if created {
			return nil
		}

		_, err = store.Balance().ApplyDelta(ctx, deposit.Amount, deposit.Amount)
		return err
	})
	if err != nil {
		return nil, err
	}

	return deposit, nil
}

// UpdateDepositInput represents the input for changing a deposit
// Empty Name and zero Date keep the stored values
type UpdateDepositInput struct {
	ID     uuid.UUID
	Name   string
	Amount decimal.Decimal
	Date   time.Time
}

// UpdateDeposit replaces the deposit amount and moves capital and current by
// delta = newAmount - oldAmount, regardless of expenses already recorded
func (e *Engine) UpdateDeposit(ctx context.Context, input UpdateDepositInput) (*domain.Deposit, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	var updated domain.Deposit
	err := e.run(ctx, domain.OpUpdateDeposit, func(ctx context.Context, store domain.Store, p *progress) error {
		existing, err := store.Deposits().GetByID(ctx, input.ID)
		if err != nil {
			return err
		}
		if _, err := loadBalance(ctx, store); err != nil {
			return err
		}

		updated = existing.Apply(domain.DepositChange{
			Name:   input.Name,
			Amount: input.Amount,
			Date:   input.Date,
		})
		delta := updated.Amount.Sub(existing.Amount)

		if err := store.Deposits().Update(ctx, &updated); err != nil {
			return err
		}
		p.ledgerDone(updated.ID)

		if delta.IsZero() {
			return nil
		}
		_, err = store.Balance().ApplyDelta(ctx, delta, delta)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// DeleteDeposit removes a deposit and subtracts its amount from capital and current
func (e *Engine) DeleteDeposit(ctx context.Context, id uuid.UUID) error {
	return e.run(ctx, domain.OpDeleteDeposit, func(ctx context.Context, store domain.Store, p *progress) error {
		existing, err := store.Deposits().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if _, err := loadBalance(ctx, store); err != nil {
			return err
		}

		if err := store.Deposits().Delete(ctx, id); err != nil {
			return err
		}
		p.ledgerDone(id)

		amount := existing.Amount.Neg()
		_, err = store.Balance().ApplyDelta(ctx, amount, amount)
		return err
	})
}
