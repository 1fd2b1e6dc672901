package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense represents money spent out of the cash pool
type Expense struct {
	ID          uuid.UUID
	Description string
	Amount      decimal.Decimal // Always positive
	PaidBy      string
	Date        time.Time
}

// NewExpense builds a validated expense with a fresh ID
// A zero date defaults to now
func NewExpense(description string, amount decimal.Decimal, paidBy string, date time.Time, now time.Time) (*Expense, error) {
	e := &Expense{
		ID:          uuid.New(),
		Description: strings.TrimSpace(description),
		Amount:      amount,
		PaidBy:      strings.TrimSpace(paidBy),
		Date:        date,
	}
	if e.Date.IsZero() {
		e.Date = now
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate ensures the expense adheres to domain rules
func (e *Expense) Validate() error {
	if err := ValidateAmount(e.Amount); err != nil {
		return err
	}
	if e.Description == "" {
		return fmt.Errorf("%w: expense description cannot be empty", ErrInvalidEntry)
	}
	if e.PaidBy == "" {
		return fmt.Errorf("%w: expense paidBy cannot be empty", ErrInvalidEntry)
	}
	return nil
}

// ExpenseChange carries the new values of an UpdateExpense
// Empty strings and zero Date keep the stored values; Amount is mandatory
type ExpenseChange struct {
	Description string
	Amount      decimal.Decimal
	PaidBy      string
	Date        time.Time
}

// Apply returns a copy of e with the change applied; Amount replaces the old amount
func (e Expense) Apply(c ExpenseChange) Expense {
	if desc := strings.TrimSpace(c.Description); desc != "" {
		e.Description = desc
	}
	e.Amount = c.Amount
	if paidBy := strings.TrimSpace(c.PaidBy); paidBy != "" {
		e.PaidBy = paidBy
	}
	if !c.Date.IsZero() {
		e.Date = c.Date
	}
	return e
}
