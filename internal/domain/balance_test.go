package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBalance_Add(t *testing.T) {
	b := Balance{CapitalAmount: decimal.NewFromInt(100), CurrentAmount: decimal.NewFromInt(60)}

	got := b.Add(decimal.NewFromInt(50), decimal.NewFromInt(50))

	assert.True(t, got.Equal(Balance{CapitalAmount: decimal.NewFromInt(150), CurrentAmount: decimal.NewFromInt(110)}))
}

func TestBalance_CanSpend(t *testing.T) {
	b := Balance{CapitalAmount: decimal.NewFromInt(100), CurrentAmount: decimal.NewFromInt(60)}

	assert.True(t, b.CanSpend(decimal.NewFromInt(60)))
	assert.False(t, b.CanSpend(decimal.RequireFromString("60.01")))
}

func TestExpectedBalance(t *testing.T) {
	deposits := []*Deposit{
		{Amount: decimal.NewFromInt(100)},
		{Amount: decimal.RequireFromString("25.5")},
	}
	expenses := []*Expense{
		{Amount: decimal.NewFromInt(40)},
	}

	got := ExpectedBalance(deposits, expenses)

	assert.True(t, decimal.RequireFromString("125.5").Equal(got.CapitalAmount))
	assert.True(t, decimal.RequireFromString("85.5").Equal(got.CurrentAmount))
}

func TestExpectedBalance_Empty(t *testing.T) {
	got := ExpectedBalance(nil, nil)

	assert.True(t, got.CapitalAmount.IsZero())
	assert.True(t, got.CurrentAmount.IsZero())
}
