package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Deposit represents money added to the cash pool
type Deposit struct {
	ID     uuid.UUID
	Name   string
	Amount decimal.Decimal // Always positive
	Date   time.Time
}

// NewDeposit builds a validated deposit with a fresh ID
// A zero date defaults to now
func NewDeposit(name string, amount decimal.Decimal, date time.Time, now time.Time) (*Deposit, error) {
	d := &Deposit{
		ID:     uuid.New(),
		Name:   strings.TrimSpace(name),
		Amount: amount,
		Date:   date,
	}
	if d.Date.IsZero() {
		d.Date = now
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Validate ensures the deposit adheres to domain rules
func (d *Deposit) Validate() error {
	if err := ValidateAmount(d.Amount); err != nil {
		return err
	}
	if d.Name == "" {
		return fmt.Errorf("%w: deposit name cannot be empty", ErrInvalidEntry)
	}
	return nil
}

// DepositChange carries the new values of an UpdateDeposit
// Empty Name and zero Date keep the stored values; Amount is mandatory
type DepositChange struct {
	Name   string
	Amount decimal.Decimal
	Date   time.Time
}

// Apply returns a copy of d with the change applied; Amount replaces the old amount
func (d Deposit) Apply(c DepositChange) Deposit {
	if name := strings.TrimSpace(c.Name); name != "" {
		d.Name = name
	}
	d.Amount = c.Amount
	if !c.Date.IsZero() {
		d.Date = c.Date
	}
	return d
}
