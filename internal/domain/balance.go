package domain

import (
	"github.com/shopspring/decimal"
)

// Balance is the materialized singleton derived from the ledger
//   - CapitalAmount: sum of all active deposit amounts
//   - CurrentAmount: CapitalAmount minus the sum of all active expense amounts
type Balance struct {
	CapitalAmount decimal.Decimal
	CurrentAmount decimal.Decimal
}

// Add returns the balance moved by the given deltas
func (b Balance) Add(capitalDelta, currentDelta decimal.Decimal) Balance {
	return Balance{
		CapitalAmount: b.CapitalAmount.Add(capitalDelta),
		CurrentAmount: b.CurrentAmount.Add(currentDelta),
	}
}

// CanSpend reports whether amount can be taken out of the current amount
// without driving it below zero
func (b Balance) CanSpend(amount decimal.Decimal) bool {
	return b.CurrentAmount.GreaterThanOrEqual(amount)
}

// Equal compares both figures numerically
func (b Balance) Equal(other Balance) bool {
	return b.CapitalAmount.Equal(other.CapitalAmount) && b.CurrentAmount.Equal(other.CurrentAmount)
}

// ExpectedBalance recomputes the balance from the active ledger entries
func ExpectedBalance(deposits []*Deposit, expenses []*Expense) Balance {
	capital := SumDeposits(deposits)
	return Balance{
		CapitalAmount: capital,
		CurrentAmount: capital.Sub(SumExpenses(expenses)),
	}
}

// SumDeposits adds up the amount field of every deposit
func SumDeposits(deposits []*Deposit) decimal.Decimal {
	total := decimal.Zero
	for _, d := range deposits {
		total = total.Add(d.Amount)
	}
	return total
}

// SumExpenses adds up the amount field of every expense
func SumExpenses(expenses []*Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}
