package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SplitBill records a shared expense and who owes what
type SplitBill struct {
	ID           uint                   `json:"id" gorm:"primaryKey"`
	TenantID     uint                   `json:"tenant_id" gorm:"index;not null"`
	CreatedBy    uint                   `json:"created_by" gorm:"index;not null"`
	Title        string                 `json:"title" gorm:"not null"`
	TotalAmount  decimal.Decimal        `json:"total_amount" gorm:"type:numeric(14,2);not null"`
	BillDate     time.Time              `json:"bill_date"`
	Notes        string                 `json:"notes"`
	Items        []SplitBillItem        `json:"items" gorm:"foreignKey:SplitBillID;constraint:OnDelete:CASCADE"`
	Participants []SplitBillParticipant `json:"participants" gorm:"foreignKey:SplitBillID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

type SplitBillItem struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	SplitBillID uint            `json:"split_bill_id" gorm:"index;not null"`
	Name        string          `json:"name" gorm:"not null"`
	Quantity    int             `json:"quantity" gorm:"not null;default:1"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:numeric(14,2);not null"`
}

// Subtotal is quantity times unit price
func (i SplitBillItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type SplitBillParticipant struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	SplitBillID uint            `json:"split_bill_id" gorm:"index;not null"`
	UserID      *uint           `json:"user_id"`
	Name        string          `json:"name" gorm:"not null"`
	AmountOwed  decimal.Decimal `json:"amount_owed" gorm:"type:numeric(14,2);not null"`
	IsPaid      bool            `json:"is_paid" gorm:"default:false"`
	PaidAt      *time.Time      `json:"paid_at"`
}

// Outstanding sums what unpaid participants still owe
func (b SplitBill) Outstanding() decimal.Decimal {
	total := decimal.Zero
	for _, p := range b.Participants {
		if !p.IsPaid {
			total = total.Add(p.AmountOwed)
		}
	}
	return total
}
