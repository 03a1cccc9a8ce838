package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OfferStatus is the state of a sales offer
type OfferStatus string

const (
	OfferPending   OfferStatus = "pending"
	OfferAccepted  OfferStatus = "accepted"
	OfferRejected  OfferStatus = "rejected"
	OfferExpired   OfferStatus = "expired"
	OfferConverted OfferStatus = "converted"
)

var AllOfferStatuses = []OfferStatus{OfferPending, OfferAccepted, OfferRejected, OfferExpired, OfferConverted}

var offerTransitions = map[OfferStatus][]OfferStatus{
	OfferPending:  {OfferAccepted, OfferRejected, OfferExpired},
	OfferAccepted: {OfferConverted, OfferExpired},
}

func (s OfferStatus) Valid() bool {
	for _, known := range AllOfferStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s OfferStatus) CanTransitionTo(next OfferStatus) bool {
	for _, allowed := range offerTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Offer is a sales proposal of a product price to a lead or customer
type Offer struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	TenantID        uint            `json:"tenant_id" gorm:"index;not null"`
	Reference       string          `json:"reference" gorm:"uniqueIndex;not null"`
	UserID          uint            `json:"user_id" gorm:"index;not null"`
	User            *User           `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ProductPriceID  uint            `json:"product_price_id" gorm:"index;not null"`
	ProductPrice    *ProductPrice   `json:"product_price,omitempty" gorm:"foreignKey:ProductPriceID;constraint:OnDelete:RESTRICT"`
	CreatedBy       uint            `json:"created_by" gorm:"index;not null"`
	Creator         *User           `json:"creator,omitempty" gorm:"foreignKey:CreatedBy;constraint:OnDelete:RESTRICT"`
	Price           decimal.Decimal `json:"price" gorm:"type:numeric(14,2);not null"`
	DiscountPercent decimal.Decimal `json:"discount_percent" gorm:"type:numeric(5,2);not null;default:0"`
	Status          OfferStatus     `json:"status" gorm:"type:varchar(20);index;not null;default:'pending'"`
	ValidUntil      time.Time       `json:"valid_until"`
	Notes           string          `json:"notes"`
	RespondedAt     *time.Time      `json:"responded_at"`
	ConvertedAt     *time.Time      `json:"converted_at"`
	SubscriptionID  *uint           `json:"subscription_id"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `json:"-" gorm:"index"`
}

// FinalPrice applies the discount to the offered price
func (o Offer) FinalPrice() decimal.Decimal {
	if o.DiscountPercent.IsZero() {
		return o.Price
	}
	factor := decimal.NewFromInt(100).Sub(o.DiscountPercent).Div(decimal.NewFromInt(100))
	return o.Price.Mul(factor).Round(2)
}

// IsLapsed reports whether the offer's validity window has closed at now
func (o Offer) IsLapsed(now time.Time) bool {
	return !o.ValidUntil.IsZero() && now.After(o.ValidUntil)
}
