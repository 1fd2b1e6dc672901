package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeposit_Validate(t *testing.T) {
	tests := []struct {
		name    string
		deposit Deposit
		wantErr error
		errMsg  string
	}{
		{
			name: "Positive amount with name should pass",
			deposit: Deposit{
				ID:     uuid.New(),
				Name:   "Alice",
				Amount: decimal.NewFromInt(100),
				Date:   time.Now(),
			},
		},
		{
			name: "Zero amount should fail",
			deposit: Deposit{
				ID:     uuid.New(),
				Name:   "Alice",
				Amount: decimal.Zero,
			},
			wantErr: ErrInvalidAmount,
			errMsg:  "amount must be positive",
		},
		{
			name: "Negative amount should fail",
			deposit: Deposit{
				ID:     uuid.New(),
				Name:   "Alice",
				Amount: decimal.NewFromInt(-5),
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name: "Empty name should fail",
			deposit: Deposit{
				ID:     uuid.New(),
				Amount: decimal.NewFromInt(10),
			},
			wantErr: ErrInvalidEntry,
			errMsg:  "deposit name cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.deposit.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewDeposit_DefaultsDateToNow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	d, err := NewDeposit("  Alice ", decimal.NewFromInt(100), time.Time{}, now)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, d.ID)
	assert.Equal(t, "Alice", d.Name)
	assert.Equal(t, now, d.Date)
}

func TestNewDeposit_KeepsGivenDate(t *testing.T) {
	date := time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC)

	d, err := NewDeposit("Bob", decimal.NewFromInt(5), date, time.Now())

	require.NoError(t, err)
	assert.Equal(t, date, d.Date)
}

func TestDeposit_Apply(t *testing.T) {
	date := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	original := Deposit{ID: uuid.New(), Name: "Alice", Amount: decimal.NewFromInt(100), Date: date}

	t.Run("Amount replaces the old amount", func(t *testing.T) {
		updated := original.Apply(DepositChange{Amount: decimal.NewFromInt(150)})

		assert.True(t, decimal.NewFromInt(150).Equal(updated.Amount))
		assert.Equal(t, "Alice", updated.Name)
		assert.Equal(t, date, updated.Date)
		assert.True(t, decimal.NewFromInt(100).Equal(original.Amount), "original must not be mutated")
	})

	t.Run("Name and date are overwritten when given", func(t *testing.T) {
		newDate := date.AddDate(0, 1, 0)
		updated := original.Apply(DepositChange{Name: "Carol", Amount: decimal.NewFromInt(1), Date: newDate})

		assert.Equal(t, "Carol", updated.Name)
		assert.Equal(t, newDate, updated.Date)
		assert.Equal(t, original.ID, updated.ID)
	})
}
