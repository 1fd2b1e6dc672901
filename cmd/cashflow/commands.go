package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"
)

// --- balanceCmd ---

type balanceCmd struct {
	out io.Writer
}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "prints the stored balance" }
func (*balanceCmd) Usage() string {
	return `balance

Prints the capital and current amounts as stored in the balance record.
`
}
func (*balanceCmd) SetFlags(*flag.FlagSet) {}

func (c *balanceCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		view, err := a.dashboard.GetBalance(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading balance: %v\n", err)
			return subcommands.ExitFailure
		}
		if !view.Exists {
			fmt.Fprintln(c.out, "No balance yet: record a deposit first.")
			return subcommands.ExitSuccess
		}
		fmt.Fprintf(c.out, "Capital: %s\n", a.money(view.CapitalAmount))
		fmt.Fprintf(c.out, "Current: %s\n", a.money(view.CurrentAmount))
		return subcommands.ExitSuccess
	})
}

// --- depositsCmd ---

type depositsCmd struct {
	out io.Writer
}

func (*depositsCmd) Name() string     { return "deposits" }
func (*depositsCmd) Synopsis() string { return "lists deposits, most recent first" }
func (*depositsCmd) Usage() string {
	return `deposits

Lists every deposit with the total of the listed amounts.
`
}
func (*depositsCmd) SetFlags(*flag.FlagSet) {}

func (c *depositsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		list, err := a.dashboard.ListDeposits(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing deposits: %v\n", err)
			return subcommands.ExitFailure
		}

		w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tNAME\tAMOUNT\tID")
		for _, d := range list.Deposits {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Date.Format("2006-01-02"), d.Name, a.money(d.Amount), d.ID)
		}
		fmt.Fprintf(w, "\tTOTAL\t%s\t\n", a.money(list.TotalAmount))
		w.Flush()
		return subcommands.ExitSuccess
	})
}

// --- expensesCmd ---

type expensesCmd struct {
	out io.Writer
}

func (*expensesCmd) Name() string     { return "expenses" }
func (*expensesCmd) Synopsis() string { return "lists expenses, most recent first" }
func (*expensesCmd) Usage() string {
	return `expenses

Lists every expense with the total of the listed amounts.
`
}
func (*expensesCmd) SetFlags(*flag.FlagSet) {}

func (c *expensesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		list, err := a.dashboard.ListExpenses(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing expenses: %v\n", err)
			return subcommands.ExitFailure
		}

		w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tDESCRIPTION\tPAID BY\tAMOUNT\tID")
		for _, e := range list.Expenses {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.Date.Format("2006-01-02"), e.Description, e.PaidBy, a.money(e.Amount), e.ID)
		}
		fmt.Fprintf(w, "\tTOTAL\t\t%s\t\n", a.money(list.TotalExpense))
		w.Flush()
		return subcommands.ExitSuccess
	})
}

// --- verifyCmd ---

type verifyCmd struct {
	out io.Writer
}

func (*verifyCmd) Name() string     { return "verify" }
func (*verifyCmd) Synopsis() string { return "checks the stored balance against the ledger" }
func (*verifyCmd) Usage() string {
	return `verify

Recomputes capital and current from the deposits and expenses and compares
them with the stored balance. Exits with status 1 when they differ.
`
}
func (*verifyCmd) SetFlags(*flag.FlagSet) {}

func (c *verifyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		report, err := a.engine.Verify(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error verifying balance: %v\n", err)
			return subcommands.ExitFailure
		}

		fmt.Fprintf(c.out, "Entries:  %d deposits, %d expenses\n", report.Deposits, report.Expenses)
		fmt.Fprintf(c.out, "Expected: capital %s, current %s\n",
			a.money(report.Expected.CapitalAmount), a.money(report.Expected.CurrentAmount))
		if report.Stored != nil {
			fmt.Fprintf(c.out, "Stored:   capital %s, current %s\n",
				a.money(report.Stored.CapitalAmount), a.money(report.Stored.CurrentAmount))
		} else {
			fmt.Fprintln(c.out, "Stored:   none")
		}

		if !report.Consistent {
			fmt.Fprintln(c.out, "INCONSISTENT: run `rebuild` to restore the balance from the ledger.")
			return subcommands.ExitFailure
		}
		fmt.Fprintln(c.out, "OK")
		return subcommands.ExitSuccess
	})
}

// --- rebuildCmd ---

type rebuildCmd struct {
	out io.Writer
}

func (*rebuildCmd) Name() string     { return "rebuild" }
func (*rebuildCmd) Synopsis() string { return "recomputes the stored balance from the ledger" }
func (*rebuildCmd) Usage() string {
	return `rebuild

Replaces the stored balance with the figures recomputed from the deposits and
expenses. Use it after a partial apply failure was reported.
`
}
func (*rebuildCmd) SetFlags(*flag.FlagSet) {}

func (c *rebuildCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		balance, err := a.engine.Rebuild(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error rebuilding balance: %v\n", err)
			return subcommands.ExitFailure
		}
		if balance == nil {
			fmt.Fprintln(c.out, "Nothing to rebuild: the ledger is empty.")
			return subcommands.ExitSuccess
		}
		fmt.Fprintf(c.out, "Balance rebuilt: capital %s, current %s\n",
			a.money(balance.CapitalAmount), a.money(balance.CurrentAmount))
		return subcommands.ExitSuccess
	})
}

// --- migrateCmd ---

type migrateCmd struct {
	out io.Writer
}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "creates the database schema" }
func (*migrateCmd) Usage() string {
	return `migrate

Creates the deposits, expenses and balance tables for the configured driver.
`
}
func (*migrateCmd) SetFlags(*flag.FlagSet) {}

func (c *migrateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		if err := a.store.Migrate(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error migrating schema: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(c.out, "Schema ready (%s)\n", a.cfg.Store.Driver)
		return subcommands.ExitSuccess
	})
}
