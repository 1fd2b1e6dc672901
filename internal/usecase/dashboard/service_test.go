package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/cashflow-backend/internal/adapter/repository/memory"
	"github.com/simaogato/cashflow-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, store *memory.Store) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	for i, amount := range []string{"100", "25.50", "4.50"} {
		require.NoError(t, store.Deposits().Create(ctx, &domain.Deposit{
			ID:     uuid.New(),
			Name:   "depositor",
			Amount: decimal.RequireFromString(amount),
			Date:   base.AddDate(0, 0, i),
		}))
	}
	require.NoError(t, store.Expenses().Create(ctx, &domain.Expense{
		ID:          uuid.New(),
		Description: "Lunch",
		Amount:      decimal.NewFromInt(40),
		PaidBy:      "Alice",
		Date:        base,
	}))
}

func TestListDeposits_TotalIsReaggregated(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seed(t, store)

	// A corrupted stored balance must not leak into the listing total
	require.NoError(t, store.Balance().Save(ctx, domain.Balance{
		CapitalAmount: decimal.NewFromInt(999999),
		CurrentAmount: decimal.NewFromInt(-1),
	}))

	service := NewDashboardService(store)
	list, err := service.ListDeposits(ctx)

	require.NoError(t, err)
	require.Len(t, list.Deposits, 3)
	assert.True(t, decimal.NewFromInt(130).Equal(list.TotalAmount), "got %s", list.TotalAmount)
	assert.True(t, list.Deposits[0].Date.After(list.Deposits[1].Date), "sorted by date descending")

	sum := decimal.Zero
	for _, d := range list.Deposits {
		sum = sum.Add(d.Amount)
	}
	assert.True(t, sum.Equal(list.TotalAmount))
}

func TestListExpenses(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)

	list, err := NewDashboardService(store).ListExpenses(context.Background())

	require.NoError(t, err)
	require.Len(t, list.Expenses, 1)
	assert.True(t, decimal.NewFromInt(40).Equal(list.TotalExpense))
}

func TestListDeposits_Empty(t *testing.T) {
	list, err := NewDashboardService(memory.NewStore()).ListDeposits(context.Background())

	require.NoError(t, err)
	assert.Empty(t, list.Deposits)
	assert.True(t, list.TotalAmount.IsZero())
}

func TestGetBalance(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	service := NewDashboardService(store)

	view, err := service.GetBalance(ctx)
	require.NoError(t, err)
	assert.False(t, view.Exists)
	assert.True(t, view.CurrentAmount.IsZero())

	require.NoError(t, store.Balance().Save(ctx, domain.Balance{
		CapitalAmount: decimal.NewFromInt(100),
		CurrentAmount: decimal.NewFromInt(60),
	}))

	view, err = service.GetBalance(ctx)
	require.NoError(t, err)
	assert.True(t, view.Exists)
	assert.True(t, decimal.NewFromInt(60).Equal(view.CurrentAmount))
}

func TestGetDeposit_NotFound(t *testing.T) {
	_, err := NewDashboardService(memory.NewStore()).GetDeposit(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStoreError(t *testing.T) {
	assert.ErrorIs(t, storeError(errors.New("boom")), domain.ErrStoreUnavailable)
	assert.ErrorIs(t, storeError(domain.ErrNotFound), domain.ErrNotFound)
	assert.NotErrorIs(t, storeError(domain.ErrNotFound), domain.ErrStoreUnavailable)
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		want     string
	}{
		{"1234.5", "USD", "$1,234.50"},
		{"0", "USD", "$0.00"},
		{"12.345", "XXX-unknown", "12.35"},
		{"100000000000000000", "USD", "100000000000000000.00"},
		{"-100000000000000000", "USD", "-100000000000000000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.currency+" "+tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(decimal.RequireFromString(tt.amount), tt.currency))
		})
	}
}
