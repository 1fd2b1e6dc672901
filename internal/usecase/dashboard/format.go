package dashboard

import (
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

// FormatAmount renders an amount in the given ISO currency for display
// Unknown currency codes, and amounts too large for go-money's int64 minor
// units, fall back to two fixed decimals.
func FormatAmount(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return amount.StringFixed(2)
	}

	// go-money works on minor units
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	if minor.Abs().GreaterThan(maxMinorUnits) {
		return amount.StringFixed(2)
	}
	return money.New(minor.IntPart(), cur.Code).Display()
}
