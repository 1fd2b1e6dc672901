package reconcile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/simaogato/cashflow-backend/internal/domain"
)

// ExpenseUpdatePolicy decides what happens when an expense update would
// drive the current amount below zero
type ExpenseUpdatePolicy string

const (
	// PolicyReject refuses the update with ErrInsufficientBalance
	PolicyReject ExpenseUpdatePolicy = "reject"
	// PolicyClamp applies the update and floors the current amount at zero
	PolicyClamp ExpenseUpdatePolicy = "clamp"
)

// ParseExpenseUpdatePolicy maps a config value to a policy; empty means reject
func ParseExpenseUpdatePolicy(s string) (ExpenseUpdatePolicy, error) {
	switch ExpenseUpdatePolicy(s) {
	case "", PolicyReject:
		return PolicyReject, nil
	case PolicyClamp:
		return PolicyClamp, nil
	default:
		return "", fmt.Errorf("unknown expense update policy %q", s)
	}
}

// Engine applies ledger mutations and the matching balance mutation as one unit
//
// Every mutating operation runs under a single mutex so balance
// read-modify-write sequences never interleave. When the store implements
// domain.Transactor the operation also runs inside one store transaction.
type Engine struct {
	Store  domain.Store
	Policy ExpenseUpdatePolicy
	Logger *slog.Logger

	// Now is the clock used for entries created without a date
	Now func() time.Time

	mu sync.Mutex
}

// Option configures an Engine
type Option func(*Engine)

// WithPolicy sets the expense update policy
func WithPolicy(p ExpenseUpdatePolicy) Option {
	return func(e *Engine) { e.Policy = p }
}

// WithLogger sets the logger used for partial apply reports
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.Logger = l }
}

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.Now = now }
}

// NewEngine creates a new Engine instance
func NewEngine(store domain.Store, opts ...Option) *Engine {
	e := &Engine{
		Store:  store,
		Policy: PolicyReject,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// progress tracks how far a non-transactional operation got
type progress struct {
	ledgerWritten bool
	entryID       uuid.UUID
}

func (p *progress) ledgerDone(id uuid.UUID) {
	p.ledgerWritten = true
	p.entryID = id
}

type unitOfWork func(ctx context.Context, store domain.Store, p *progress) error

// run executes fn under the engine lock, inside a store transaction when available
func (e *Engine) run(ctx context.Context, op domain.Op, fn unitOfWork) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if tx, ok := e.Store.(domain.Transactor); ok {
		err := tx.WithinTx(ctx, func(ctx context.Context, store domain.Store) error {
			return fn(ctx, store, &progress{})
		})
		return classify(op, err)
	}

	p := &progress{}
	err := fn(ctx, e.Store, p)
	if err != nil && p.ledgerWritten {
		partial := &domain.PartialApplyError{Op: op, EntryID: p.entryID, Err: classify(op, err)}
		e.Logger.Error("ledger and balance diverged",
			"op", string(op),
			"entry_id", p.entryID.String(),
			"error", err,
		)
		return partial
	}
	return classify(op, err)
}

// classify wraps non-domain failures as ErrStoreUnavailable
func classify(op domain.Op, err error) error {
	if err == nil || domain.IsDomainError(err) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}

// loadBalance fetches the balance singleton before any write of an operation
func loadBalance(ctx context.Context, store domain.Store) (*domain.Balance, error) {
	balance, err := store.Balance().Get(ctx)
	if err != nil {
		return nil, err
	}
	return balance, nil
}
