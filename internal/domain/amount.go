package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount column shape shared by every durable store: NUMERIC(20, 4)
const (
	AmountPrecision = 20
	AmountScale     = 4

	// MaxAmountIntDigits is the number of digits left of the decimal point
	MaxAmountIntDigits = AmountPrecision - AmountScale
)

// ValidateAmount ensures a ledger amount is strictly positive and fits the
// stored column: at most MaxAmountIntDigits integer digits and AmountScale decimals.
// The amount is never formatted here; its exponent may be arbitrarily large.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidAmount)
	}

	coef := amount.Coefficient()
	digits := len(coef.String())
	exp := int(amount.Exponent())

	if digits+exp > MaxAmountIntDigits {
		return fmt.Errorf("%w: amount exceeds %d integer digits", ErrInvalidAmount, MaxAmountIntDigits)
	}

	if extra := -exp - AmountScale; extra > 0 {
		// every coefficient digit sits beyond the allowed scale
		if extra >= digits || !amount.Truncate(AmountScale).Equal(amount) {
			return fmt.Errorf("%w: amount has more than %d decimal places", ErrInvalidAmount, AmountScale)
		}
	}
	return nil
}

// ParseAmount parses a decimal string coming from a transport layer
// Rejects empty, non-numeric, NaN/Inf, non-positive and out of range values
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: amount is required", ErrInvalidAmount)
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount must be a number", ErrInvalidAmount)
	}

	if err := ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

// AmountFromFloat converts a float amount (e.g. a JSON or protobuf number)
// decimal.NewFromFloat panics on NaN and Inf, so those are checked first
func AmountFromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, fmt.Errorf("%w: amount must be finite", ErrInvalidAmount)
	}

	amount := decimal.NewFromFloat(f)
	if err := ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}
