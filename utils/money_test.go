package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitEqually(t *testing.T) {
	shares, err := SplitEqually(decimal.RequireFromString("100"), 3)
	require.NoError(t, err)
	require.Len(t, shares, 3)
	assert.Equal(t, "33.34", FormatMoney(shares[0]))
	assert.Equal(t, "33.33", FormatMoney(shares[1]))
	assert.Equal(t, "33.33", FormatMoney(shares[2]))
	assert.True(t, SumDecimals(shares).Equal(decimal.RequireFromString("100")))

	shares, err = SplitEqually(decimal.RequireFromString("0.05"), 2)
	require.NoError(t, err)
	assert.Equal(t, "0.03", FormatMoney(shares[0]))
	assert.Equal(t, "0.02", FormatMoney(shares[1]))

	_, err = SplitEqually(decimal.RequireFromString("10"), 0)
	assert.Error(t, err)
	_, err = SplitEqually(decimal.RequireFromString("-1"), 2)
	assert.Error(t, err)
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(decimal.RequireFromString("10.50")))
	assert.Error(t, ValidateAmount(decimal.Zero))
	assert.Error(t, ValidateAmount(decimal.RequireFromString("-5")))
	assert.Error(t, ValidateAmount(decimal.RequireFromString("1.005")))
}

func TestValidatePrecision(t *testing.T) {
	assert.NoError(t, ValidatePrecision(decimal.Zero))
	assert.NoError(t, ValidatePrecision(decimal.RequireFromString("33.30")))
	assert.Error(t, ValidatePrecision(decimal.RequireFromString("33.333")))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "1500.00", FormatMoney(decimal.NewFromInt(1500)))
	assert.Equal(t, "0.10", FormatMoney(decimal.RequireFromString("0.1")))
}
