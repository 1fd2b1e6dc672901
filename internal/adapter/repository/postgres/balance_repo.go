package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/simaogato/cashflow-backend/internal/domain"
)

// balanceRepository implements domain.BalanceRepository on the single row id = 1
type balanceRepository struct {
	q         querier
	forUpdate bool
}

// NewBalanceRepository creates a new balance repository
func NewBalanceRepository(db *DB) domain.BalanceRepository {
	return &balanceRepository{q: db}
}

// Get retrieves the balance singleton
// Inside a transaction the row stays locked until commit
func (r *balanceRepository) Get(ctx context.Context) (*domain.Balance, error) {
	query := `
		SELECT capital_amount, current_amount
		FROM balance
		WHERE id = 1
	`
	if r.forUpdate {
		query += ` FOR UPDATE`
	}

	balance, err := scanBalance(r.q.QueryRowContext(ctx, query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoBalance
		}
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}

	return balance, nil
}

// LoadOrInit inserts the singleton unless it already exists
func (r *balanceRepository) LoadOrInit(ctx context.Context, initial domain.Balance) (*domain.Balance, bool, error) {
	query := `
		INSERT INTO balance (id, capital_amount, current_amount)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO NOTHING
	`

	res, err := r.q.ExecContext(ctx, query,
		initial.CapitalAmount.String(),
		initial.CurrentAmount.String(),
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to init balance: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 1 {
		return &initial, true, nil
	}

	existing, err := r.Get(ctx)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// Save creates or replaces the singleton
func (r *balanceRepository) Save(ctx context.Context, balance domain.Balance) error {
	query := `
		INSERT INTO balance (id, capital_amount, current_amount)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE
		SET capital_amount = EXCLUDED.capital_amount,
		    current_amount = EXCLUDED.current_amount,
		    updated_at = now()
	`

	_, err := r.q.ExecContext(ctx, query,
		balance.CapitalAmount.String(),
		balance.CurrentAmount.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to save balance: %w", err)
	}

	return nil
}

// ApplyDelta moves both figures in a single UPDATE so the read-modify-write
// happens inside the database
func (r *balanceRepository) ApplyDelta(ctx context.Context, capitalDelta, currentDelta decimal.Decimal) (*domain.Balance, error) {
	query := `
		UPDATE balance
		SET capital_amount = capital_amount + $1,
		    current_amount = current_amount + $2,
		    updated_at = now()
		WHERE id = 1
		RETURNING capital_amount, current_amount
	`

	balance, err := scanBalance(r.q.QueryRowContext(ctx, query, capitalDelta.String(), currentDelta.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoBalance
		}
		return nil, fmt.Errorf("failed to apply balance delta: %w", err)
	}

	return balance, nil
}

func scanBalance(row rowScanner) (*domain.Balance, error) {
	var capitalStr, currentStr string
	if err := row.Scan(&capitalStr, &currentStr); err != nil {
		return nil, err
	}

	capital, err := decimal.NewFromString(capitalStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse capital_amount: %w", err)
	}
	current, err := decimal.NewFromString(currentStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse current_amount: %w", err)
	}

	return &domain.Balance{CapitalAmount: capital, CurrentAmount: current}, nil
}
