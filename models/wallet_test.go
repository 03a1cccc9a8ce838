package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSumTransactions(t *testing.T) {
	txns := []Transaction{
		{Type: TransactionTypeCredit, Amount: decimal.RequireFromString("150.50")},
		{Type: TransactionTypeDebit, Amount: decimal.RequireFromString("20.25")},
		{Type: TransactionTypeCredit, Amount: decimal.RequireFromString("10")},
	}
	assert.Equal(t, "140.25", SumTransactions(txns).StringFixed(2))
	assert.True(t, SumTransactions(nil).IsZero())
}

func TestSplitBillOutstanding(t *testing.T) {
	bill := SplitBill{Participants: []SplitBillParticipant{
		{Name: "A", AmountOwed: decimal.RequireFromString("40")},
		{Name: "B", AmountOwed: decimal.RequireFromString("35.50"), IsPaid: true},
		{Name: "C", AmountOwed: decimal.RequireFromString("24.50")},
	}}
	assert.Equal(t, "64.50", bill.Outstanding().StringFixed(2))

	item := SplitBillItem{Quantity: 3, UnitPrice: decimal.RequireFromString("12.5")}
	assert.Equal(t, "37.50", item.Subtotal().StringFixed(2))
}
