package mysql

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/simaogato/cashflow-backend/internal/domain"
)

func TestConfig_DSN(t *testing.T) {
	cfg := Config{
		Host:     "db.local",
		Port:     3307,
		User:     "ledger",
		Password: "secret",
		DBName:   "cashflow",
	}

	assert.Equal(t,
		"ledger:secret@tcp(db.local:3307)/cashflow?charset=utf8mb4&parseTime=True&loc=UTC",
		cfg.DSN(),
	)
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  logger.LogLevel
	}{
		{"info", logger.Info},
		{"warn", logger.Warn},
		{"error", logger.Error},
		{"silent", logger.Silent},
		{"", logger.Error},
		{"debug", logger.Error},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, logLevel(tt.level))
		})
	}
}

func TestModels_DepositRoundTrip(t *testing.T) {
	deposit := &domain.Deposit{
		ID:     uuid.New(),
		Name:   "Salary",
		Amount: decimal.RequireFromString("1500.25"),
		Date:   time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	got, err := fromDeposit(deposit).toDomain()
	require.NoError(t, err)
	assert.Equal(t, deposit.ID, got.ID)
	assert.Equal(t, deposit.Name, got.Name)
	assert.True(t, deposit.Amount.Equal(got.Amount))
	assert.True(t, deposit.Date.Equal(got.Date))
}

func TestModels_ExpenseInvalidID(t *testing.T) {
	row := &sqlExpense{ID: "not-a-uuid", Description: "Rent", Amount: decimal.NewFromInt(1), PaidBy: "alice"}

	_, err := row.toDomain()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid expense id")
}

func TestModels_BalancePinnedRow(t *testing.T) {
	row := fromBalance(domain.Balance{
		CapitalAmount: decimal.NewFromInt(100),
		CurrentAmount: decimal.NewFromInt(40),
	})

	assert.Equal(t, uint8(balanceRowID), row.ID)
	assert.True(t, row.toDomain().Equal(domain.Balance{
		CapitalAmount: decimal.NewFromInt(100),
		CurrentAmount: decimal.NewFromInt(40),
	}))
}

func TestModels_AmountColumnType(t *testing.T) {
	want := fmt.Sprintf("type:decimal(%d,%d)", domain.AmountPrecision, domain.AmountScale)

	columns := []struct {
		model any
		field string
	}{
		{sqlDeposit{}, "Amount"},
		{sqlExpense{}, "Amount"},
		{sqlBalance{}, "CapitalAmount"},
		{sqlBalance{}, "CurrentAmount"},
	}

	for _, c := range columns {
		f, ok := reflect.TypeOf(c.model).FieldByName(c.field)
		require.True(t, ok, c.field)
		assert.True(t, strings.Contains(f.Tag.Get("gorm"), want), "%T.%s: %s", c.model, c.field, f.Tag.Get("gorm"))
	}
}
