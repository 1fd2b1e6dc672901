package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/cashflow-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepositRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Deposits()

	d := &domain.Deposit{ID: uuid.New(), Name: "Alice", Amount: decimal.NewFromInt(100), Date: time.Now()}
	require.NoError(t, repo.Create(ctx, d))

	got, err := repo.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	got.Amount = decimal.NewFromInt(150)
	require.NoError(t, repo.Update(ctx, got))

	again, err := repo.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(150).Equal(again.Amount))

	require.NoError(t, repo.Delete(ctx, d.ID))
	_, err = repo.GetByID(ctx, d.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDepositRepository_UnknownID(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Deposits()

	assert.ErrorIs(t, repo.Update(ctx, &domain.Deposit{ID: uuid.New()}), domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), domain.ErrNotFound)
}

func TestDepositRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Deposits()

	d := &domain.Deposit{ID: uuid.New(), Name: "Alice", Amount: decimal.NewFromInt(100), Date: time.Now()}
	require.NoError(t, repo.Create(ctx, d))

	d.Amount = decimal.NewFromInt(1)
	got, err := repo.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(got.Amount), "caller mutation must not leak into the store")
}

func TestExpenseRepository_ListSortedByDateDesc(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Expenses()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	entries := []struct {
		desc string
		day  int
	}{
		{"first", 0},
		{"third", 2},
		{"second", 1},
	}
	for _, e := range entries {
		require.NoError(t, repo.Create(ctx, &domain.Expense{
			ID:          uuid.New(),
			Description: e.desc,
			Amount:      decimal.NewFromInt(10),
			PaidBy:      "Alice",
			Date:        base.AddDate(0, 0, e.day),
		}))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].Description)
	assert.Equal(t, "second", list[1].Description)
	assert.Equal(t, "first", list[2].Description)
}

func TestBalanceRepository_Singleton(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Balance()

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, domain.ErrNoBalance)

	_, err = repo.ApplyDelta(ctx, decimal.NewFromInt(1), decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrNoBalance, "applying a delta before creation is a contract violation")

	initial := domain.Balance{CapitalAmount: decimal.NewFromInt(100), CurrentAmount: decimal.NewFromInt(100)}
	b, created, err := repo.LoadOrInit(ctx, initial)
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, b.Equal(initial))

	b, created, err = repo.LoadOrInit(ctx, domain.Balance{CapitalAmount: decimal.NewFromInt(7), CurrentAmount: decimal.NewFromInt(7)})
	require.NoError(t, err)
	assert.False(t, created, "a second init must not replace the singleton")
	assert.True(t, b.Equal(initial))

	b, err = repo.ApplyDelta(ctx, decimal.Zero, decimal.NewFromInt(-40))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(60).Equal(b.CurrentAmount))
	assert.True(t, decimal.NewFromInt(100).Equal(b.CapitalAmount))

	require.NoError(t, repo.Save(ctx, domain.Balance{CapitalAmount: decimal.NewFromInt(5), CurrentAmount: decimal.NewFromInt(2)}))
	b, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(2).Equal(b.CurrentAmount))
}
