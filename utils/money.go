package utils

import (
	"errors"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FormatMoney renders an amount with two decimals
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// ValidateAmount checks that an amount is positive and has at most two decimals
func ValidateAmount(d decimal.Decimal) error {
	if !d.IsPositive() {
		return errors.New("amount must be greater than zero")
	}
	return ValidatePrecision(d)
}

// ValidatePrecision rejects amounts with sub-cent digits
func ValidatePrecision(d decimal.Decimal) error {
	if !d.Equal(d.Round(2)) {
		return errors.New("amount cannot have more than two decimal places")
	}
	return nil
}

// SplitEqually divides total into n shares in cents. Shares differ by at most one
// cent and the first shares absorb the remainder.
func SplitEqually(total decimal.Decimal, n int) ([]decimal.Decimal, error) {
	if n <= 0 {
		return nil, errors.New("at least one participant is required")
	}
	if total.IsNegative() {
		return nil, errors.New("total cannot be negative")
	}

	cents := total.Mul(hundred).Round(0).IntPart()
	base := cents / int64(n)
	remainder := cents % int64(n)

	shares := make([]decimal.Decimal, n)
	for i := range shares {
		c := base
		if int64(i) < remainder {
			c++
		}
		shares[i] = decimal.New(c, -2)
	}
	return shares, nil
}

// SumDecimals adds the values
func SumDecimals(values []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
