package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/simaogato/cashflow-backend/internal/domain"
)

// amountType is the column type every amount is stored in
var amountType = fmt.Sprintf("NUMERIC(%d, %d)", domain.AmountPrecision, domain.AmountScale)

// schema creates the ledger tables and the balance singleton table
// The balance row is pinned to id = 1 so a second row can never exist.
var schema = withAmountType([]string{
	`CREATE TABLE IF NOT EXISTS deposits (
		id         UUID PRIMARY KEY,
		name       TEXT NOT NULL,
		amount     {{amount}} NOT NULL CHECK (amount > 0),
		date       TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS deposits_date_idx ON deposits (date DESC)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id          UUID PRIMARY KEY,
		description TEXT NOT NULL,
		amount      {{amount}} NOT NULL CHECK (amount > 0),
		paid_by     TEXT NOT NULL,
		date        TIMESTAMPTZ NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS expenses_date_idx ON expenses (date DESC)`,
	`CREATE TABLE IF NOT EXISTS balance (
		id             SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
		capital_amount {{amount}} NOT NULL,
		current_amount {{amount}} NOT NULL,
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
})

func withAmountType(stmts []string) []string {
	for i, stmt := range stmts {
		stmts[i] = strings.ReplaceAll(stmt, "{{amount}}", amountType)
	}
	return stmts
}

// Migrate creates the schema if it does not exist yet
func Migrate(ctx context.Context, db *DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
