package reconcile

import (
	"context"
	"errors"

	"github.com/simaogato/cashflow-backend/internal/domain"
)

// Report compares the stored balance with the figures recomputed from the ledger
type Report struct {
	Stored   *domain.Balance // nil when no balance record exists
	Expected domain.Balance
	Deposits int
	Expenses int

	// Consistent is true when the stored balance matches the ledger,
	// or when neither a balance nor any ledger entry exists
	Consistent bool
}

// Verify recomputes capital and current from the active ledger entries
// It runs under the engine lock so no mutation is half-way through.
func (e *Engine) Verify(ctx context.Context) (*Report, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.verify(ctx, e.Store)
}

func (e *Engine) verify(ctx context.Context, store domain.Store) (*Report, error) {
	deposits, err := store.Deposits().List(ctx)
	if err != nil {
		return nil, classify(domain.OpRebuild, err)
	}
	expenses, err := store.Expenses().List(ctx)
	if err != nil {
		return nil, classify(domain.OpRebuild, err)
	}

	report := &Report{
		Expected: domain.ExpectedBalance(deposits, expenses),
		Deposits: len(deposits),
		Expenses: len(expenses),
	}

	stored, err := store.Balance().Get(ctx)
	switch {
	case errors.Is(err, domain.ErrNoBalance):
		report.Consistent = len(deposits) == 0 && len(expenses) == 0
	case err != nil:
		return nil, classify(domain.OpRebuild, err)
	default:
		report.Stored = stored
		report.Consistent = stored.Equal(report.Expected)
	}

	return report, nil
}

// Rebuild replaces the stored balance with the figures recomputed from the ledger
// It is the operator-side compensation after a PartialApplyError.
// Returns nil when there is nothing to rebuild (no ledger entries and no balance).
func (e *Engine) Rebuild(ctx context.Context) (*domain.Balance, error) {
	var rebuilt *domain.Balance
	err := e.run(ctx, domain.OpRebuild, func(ctx context.Context, store domain.Store, _ *progress) error {
		report, err := e.verify(ctx, store)
		if err != nil {
			return err
		}
		if report.Stored == nil && report.Consistent {
			return nil
		}

		if err := store.Balance().Save(ctx, report.Expected); err != nil {
			return err
		}
		expected := report.Expected
		rebuilt = &expected
		return nil
	})
	if err != nil {
		return nil, err
	}

	if rebuilt != nil {
		e.Logger.Info("balance rebuilt from ledger",
			"capital", rebuilt.CapitalAmount.String(),
			"current", rebuilt.CurrentAmount.String(),
		)
	}
	return rebuilt, nil
}
