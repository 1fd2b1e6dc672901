package mysql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/simaogato/cashflow-backend/internal/domain"
)

// Store implements domain.Store and domain.Transactor with gorm
type Store struct {
	db   *gorm.DB
	inTx bool
}

// NewStore creates a store on top of the client connection
func NewStore(client *Client) *Store {
	return &Store{db: client.DB()}
}

func (s *Store) Deposits() domain.DepositRepository { return &depositRepository{db: s.db} }
func (s *Store) Expenses() domain.ExpenseRepository { return &expenseRepository{db: s.db} }
func (s *Store) Balance() domain.BalanceRepository {
	return &balanceRepository{db: s.db, forUpdate: s.inTx}
}

// WithinTx runs fn in a gorm transaction; returning an error rolls it back
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, store domain.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &Store{db: tx, inTx: true})
	})
}

var (
	_ domain.Store      = (*Store)(nil)
	_ domain.Transactor = (*Store)(nil)
)

type depositRepository struct {
	db *gorm.DB
}

func (r *depositRepository) Create(ctx context.Context, deposit *domain.Deposit) error {
	if err := r.db.WithContext(ctx).Create(fromDeposit(deposit)).Error; err != nil {
		return fmt.Errorf("failed to create deposit: %w", err)
	}
	return nil
}

func (r *depositRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deposit, error) {
	var row sqlDeposit
	err := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("deposit %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get deposit by ID: %w", err)
	}
	return row.toDomain()
}

func (r *depositRepository) Update(ctx context.Context, deposit *domain.Deposit) error {
	row := fromDeposit(deposit)
	res := r.db.WithContext(ctx).Model(&sqlDeposit{}).Where("id = ?", row.ID).Updates(map[string]interface{}{
		"name":   row.Name,
		"amount": row.Amount,
		"date":   row.Date,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update deposit: %w", res.Error)
	}
	return ensureExists(ctx, r.db, res.RowsAffected, &sqlDeposit{}, "deposit", deposit.ID)
}

func (r *depositRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&sqlDeposit{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete deposit: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("deposit %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *depositRepository) List(ctx context.Context) ([]*domain.Deposit, error) {
	var rows []sqlDeposit
	if err := r.db.WithContext(ctx).Order("date DESC").Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query deposits: %w", err)
	}

	deposits := make([]*domain.Deposit, 0, len(rows))
	for i := range rows {
		deposit, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		deposits = append(deposits, deposit)
	}
	return deposits, nil
}

type expenseRepository struct {
	db *gorm.DB
}

func (r *expenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	if err := r.db.WithContext(ctx).Create(fromExpense(expense)).Error; err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

func (r *expenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Expense, error) {
	var row sqlExpense
	err := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("expense %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get expense by ID: %w", err)
	}
	return row.toDomain()
}

func (r *expenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	row := fromExpense(expense)
	res := r.db.WithContext(ctx).Model(&sqlExpense{}).Where("id = ?", row.ID).Updates(map[string]interface{}{
		"description": row.Description,
		"amount":      row.Amount,
		"paid_by":     row.PaidBy,
		"date":        row.Date,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update expense: %w", res.Error)
	}
	return ensureExists(ctx, r.db, res.RowsAffected, &sqlExpense{}, "expense", expense.ID)
}

func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&sqlExpense{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete expense: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("expense %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *expenseRepository) List(ctx context.Context) ([]*domain.Expense, error) {
	var rows []sqlExpense
	if err := r.db.WithContext(ctx).Order("date DESC").Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}

	expenses := make([]*domain.Expense, 0, len(rows))
	for i := range rows {
		expense, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	return expenses, nil
}

// ensureExists resolves an UPDATE that touched no row
// MySQL reports 0 affected rows when the new values equal the stored ones,
// so the row is looked up before reporting ErrNotFound
func ensureExists(ctx context.Context, db *gorm.DB, affected int64, model interface{}, kind string, id uuid.UUID) error {
	if affected > 0 {
		return nil
	}
	var count int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id.String()).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up %s: %w", kind, err)
	}
	if count == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}
	return nil
}

type balanceRepository struct {
	db        *gorm.DB
	forUpdate bool
}

func (r *balanceRepository) Get(ctx context.Context) (*domain.Balance, error) {
	q := r.db.WithContext(ctx)
	if r.forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var row sqlBalance
	if err := q.Where("id = ?", balanceRowID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoBalance
		}
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}
	return row.toDomain(), nil
}

func (r *balanceRepository) LoadOrInit(ctx context.Context, initial domain.Balance) (*domain.Balance, bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(fromBalance(initial))
	if res.Error != nil {
		return nil, false, fmt.Errorf("failed to init balance: %w", res.Error)
	}
	if res.RowsAffected == 1 {
		return &initial, true, nil
	}

	existing, err := r.Get(ctx)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *balanceRepository) Save(ctx context.Context, balance domain.Balance) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(fromBalance(balance)).Error
	if err != nil {
		return fmt.Errorf("failed to save balance: %w", err)
	}
	return nil
}

func (r *balanceRepository) ApplyDelta(ctx context.Context, capitalDelta, currentDelta decimal.Decimal) (*domain.Balance, error) {
	err := r.db.WithContext(ctx).Model(&sqlBalance{}).Where("id = ?", balanceRowID).Updates(map[string]interface{}{
		"capital_amount": gorm.Expr("capital_amount + ?", capitalDelta),
		"current_amount": gorm.Expr("current_amount + ?", currentDelta),
	}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to apply balance delta: %w", err)
	}

	// MySQL has no RETURNING; read the row back, which also reports a missing balance
	return r.Get(ctx)
}
