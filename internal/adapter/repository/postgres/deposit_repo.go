package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/cashflow-backend/internal/domain"
)

// depositRepository implements domain.DepositRepository
type depositRepository struct {
	q querier
}

// NewDepositRepository creates a new deposit repository
func NewDepositRepository(db *DB) domain.DepositRepository {
	return &depositRepository{q: db}
}

// Create inserts a new deposit
func (r *depositRepository) Create(ctx context.Context, deposit *domain.Deposit) error {
	query := `
		INSERT INTO deposits (id, name, amount, date)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.q.ExecContext(ctx, query,
		deposit.ID,
		deposit.Name,
		deposit.Amount.String(),
		deposit.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to create deposit: %w", err)
	}

	return nil
}

// GetByID retrieves a deposit by its ID
func (r *depositRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deposit, error) {
	query := `
		SELECT id, name, amount, date
		FROM deposits
		WHERE id = $1
	`

	deposit, err := scanDeposit(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("deposit %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get deposit by ID: %w", err)
	}

	return deposit, nil
}

// Update overwrites name, amount and date of an existing deposit
func (r *depositRepository) Update(ctx context.Context, deposit *domain.Deposit) error {
	query := `
		UPDATE deposits
		SET name = $2, amount = $3, date = $4
		WHERE id = $1
	`

	res, err := r.q.ExecContext(ctx, query,
		deposit.ID,
		deposit.Name,
		deposit.Amount.String(),
		deposit.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to update deposit: %w", err)
	}

	return expectOneRow(res, "deposit", deposit.ID)
}

// Delete removes a deposit
func (r *depositRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM deposits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete deposit: %w", err)
	}

	return expectOneRow(res, "deposit", id)
}

// List retrieves all deposits, most recent first
func (r *depositRepository) List(ctx context.Context) ([]*domain.Deposit, error) {
	query := `
		SELECT id, name, amount, date
		FROM deposits
		ORDER BY date DESC, id
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query deposits: %w", err)
	}
	defer rows.Close()

	deposits := make([]*domain.Deposit, 0)
	for rows.Next() {
		deposit, err := scanDeposit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deposit: %w", err)
		}
		deposits = append(deposits, deposit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deposits: %w", err)
	}

	return deposits, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDeposit(row rowScanner) (*domain.Deposit, error) {
	var deposit domain.Deposit
	var amountStr string

	if err := row.Scan(&deposit.ID, &deposit.Name, &amountStr, &deposit.Date); err != nil {
		return nil, err
	}

	// Parse amount (NUMERIC)
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount: %w", err)
	}
	deposit.Amount = amount

	return &deposit, nil
}

// expectOneRow maps "no row touched" to domain.ErrNotFound
func expectOneRow(res sql.Result, kind string, id uuid.UUID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}
	return nil
}
