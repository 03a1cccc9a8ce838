package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBillingCycleMonths(t *testing.T) {
	assert.Equal(t, 1, BillingCycleMonthly.Months())
	assert.Equal(t, 3, BillingCycleQuarterly.Months())
	assert.Equal(t, 6, BillingCycleSemiAnnual.Months())
	assert.Equal(t, 12, BillingCycleAnnual.Months())
	assert.Equal(t, 0, BillingCycle("weekly").Months())
	assert.False(t, BillingCycle("weekly").Valid())
}

func TestMonthlyEquivalent(t *testing.T) {
	annual := ProductPrice{BillingCycle: BillingCycleAnnual, Price: decimal.RequireFromString("3000000")}
	assert.Equal(t, "250000.00", annual.MonthlyEquivalent().StringFixed(2))

	quarterly := ProductPrice{BillingCycle: BillingCycleQuarterly, Price: decimal.RequireFromString("100")}
	assert.Equal(t, "33.33", quarterly.MonthlyEquivalent().StringFixed(2))

	unknown := ProductPrice{BillingCycle: "weekly", Price: decimal.RequireFromString("100")}
	assert.True(t, unknown.MonthlyEquivalent().IsZero())
}

func TestProductPriceIsActive(t *testing.T) {
	assert.True(t, ProductPrice{Status: PriceStatusActive}.IsActive())
	assert.False(t, ProductPrice{Status: PriceStatusInactive}.IsActive())
}

func TestProductBeforeSaveNormalisesCode(t *testing.T) {
	p := &Product{Name: "  Fiber 100 ", Code: " fiber-100 "}
	assert.NoError(t, p.BeforeSave(nil))
	assert.Equal(t, "Fiber 100", p.Name)
	assert.Equal(t, "FIBER-100", p.Code)
}
