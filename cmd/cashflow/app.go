package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/simaogato/cashflow-backend/internal/adapter/repository"
	"github.com/simaogato/cashflow-backend/internal/config"
	"github.com/simaogato/cashflow-backend/internal/usecase/dashboard"
	"github.com/simaogato/cashflow-backend/internal/usecase/reconcile"
)

// app is what every command works on
type app struct {
	cfg       *config.Config
	store     *repository.Handle
	engine    *reconcile.Engine
	dashboard *dashboard.DashboardService
}

func (a *app) money(d decimal.Decimal) string {
	return dashboard.FormatAmount(d, a.cfg.Ledger.Currency)
}

func (a *app) Close() error {
	return a.store.Close()
}

// openApp loads the config and opens the store; replaced in tests
var openApp = func(ctx context.Context) (*app, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}
	return newApp(ctx, cfg)
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	handle, err := repository.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store.Driver, err)
	}
	policy, err := reconcile.ParseExpenseUpdatePolicy(cfg.Ledger.ExpenseUpdatePolicy)
	if err != nil {
		handle.Close()
		return nil, err
	}

	return &app{
		cfg:   cfg,
		store: handle,
		engine: reconcile.NewEngine(handle.Store,
			reconcile.WithPolicy(policy),
			reconcile.WithLogger(cfg.NewLogger(os.Stderr)),
		),
		dashboard: dashboard.NewDashboardService(handle.Store),
	}, nil
}

// commands lists every subcommand writing to out
func commands(out io.Writer) []subcommands.Command {
	return []subcommands.Command{
		&balanceCmd{out: out},
		&depositsCmd{out: out},
		&expensesCmd{out: out},
		&verifyCmd{out: out},
		&rebuildCmd{out: out},
		&migrateCmd{out: out},
	}
}

// withApp opens the app, runs fn and closes it
func withApp(ctx context.Context, fn func(a *app) subcommands.ExitStatus) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()
	return fn(a)
}
