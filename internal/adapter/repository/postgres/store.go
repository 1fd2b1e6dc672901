package postgres

import (
	"context"
	"fmt"

	"github.com/simaogato/cashflow-backend/internal/domain"
)

// Store implements domain.Store and domain.Transactor on PostgreSQL
type Store struct {
	db *DB
	q  querier

	// inTx is set on the Store handed to WithinTx callbacks;
	// the balance row is then read with FOR UPDATE
	inTx bool
}

// NewStore creates a store running each statement on its own connection
func NewStore(db *DB) *Store {
	return &Store{db: db, q: db}
}

func (s *Store) Deposits() domain.DepositRepository { return &depositRepository{q: s.q} }
func (s *Store) Expenses() domain.ExpenseRepository { return &expenseRepository{q: s.q} }
func (s *Store) Balance() domain.BalanceRepository {
	return &balanceRepository{q: s.q, forUpdate: s.inTx}
}

// WithinTx runs fn inside one database transaction
// The transaction is rolled back when fn returns an error
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, store domain.Store) error) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	if err := fn(ctx, &Store{db: s.db, q: dbTx, inTx: true}); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

var (
	_ domain.Store      = (*Store)(nil)
	_ domain.Transactor = (*Store)(nil)
)
