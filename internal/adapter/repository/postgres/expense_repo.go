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

// expenseRepository implements domain.ExpenseRepository
type expenseRepository struct {
	q querier
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *DB) domain.ExpenseRepository {
	return &expenseRepository{q: db}
}

// Create inserts a new expense
func (r *expenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	query := `
		INSERT INTO expenses (id, description, amount, paid_by, date)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.q.ExecContext(ctx, query,
		expense.ID,
		expense.Description,
		expense.Amount.String(),
		expense.PaidBy,
		expense.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	return nil
}

// GetByID retrieves an expense by its ID
func (r *expenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Expense, error) {
	query := `
		SELECT id, description, amount, paid_by, date
		FROM expenses
		WHERE id = $1
	`

	expense, err := scanExpense(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("expense %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get expense by ID: %w", err)
	}

	return expense, nil
}

// Update overwrites every field of an existing expense
func (r *expenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	query := `
		UPDATE expenses
		SET description = $2, amount = $3, paid_by = $4, date = $5
		WHERE id = $1
	`

	res, err := r.q.ExecContext(ctx, query,
		expense.ID,
		expense.Description,
		expense.Amount.String(),
		expense.PaidBy,
		expense.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}

	return expectOneRow(res, "expense", expense.ID)
}

// Delete removes an expense
func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	return expectOneRow(res, "expense", id)
}

// List retrieves all expenses, most recent first
func (r *expenseRepository) List(ctx context.Context) ([]*domain.Expense, error) {
	query := `
		SELECT id, description, amount, paid_by, date
		FROM expenses
		ORDER BY date DESC, id
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	expenses := make([]*domain.Expense, 0)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	return expenses, nil
}

func scanExpense(row rowScanner) (*domain.Expense, error) {
	var expense domain.Expense
	var amountStr string

	if err := row.Scan(&expense.ID, &expense.Description, &amountStr, &expense.PaidBy, &expense.Date); err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount: %w", err)
	}
	expense.Amount = amount

	return &expense, nil
}
