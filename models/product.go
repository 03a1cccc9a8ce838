package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Product is a sellable catalog item, e.g. an internet package
type Product struct {
	ID             uint              `json:"id" gorm:"primaryKey"`
	TenantID       uint              `json:"tenant_id" gorm:"index;not null"`
	CategoryID     *uint             `json:"category_id" gorm:"index"`
	Category       *Category         `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Name           string            `json:"name" gorm:"not null"`
	Code           string            `json:"code" gorm:"index;not null"`
	Description    string            `json:"description"`
	BandwidthMbps  int               `json:"bandwidth_mbps"`
	ConnectionType string            `json:"connection_type"`
	Attributes     datatypes.JSONMap `json:"attributes"`
	IsActive       bool              `json:"is_active" gorm:"default:true"`
	Prices         []ProductPrice    `json:"prices,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	DeletedAt      gorm.DeletedAt    `json:"-" gorm:"index"`
}

// BeforeSave normalises the product code
func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Code = strings.ToUpper(strings.TrimSpace(p.Code))
	return nil
}

// BillingCycle is the recurrence interval of a product price
type BillingCycle string

const (
	BillingCycleMonthly    BillingCycle = "monthly"
	BillingCycleQuarterly  BillingCycle = "quarterly"
	BillingCycleSemiAnnual BillingCycle = "semi_annual"
	BillingCycleAnnual     BillingCycle = "annual"
)

var billingCycleMonths = map[BillingCycle]int{
	BillingCycleMonthly:    1,
	BillingCycleQuarterly:  3,
	BillingCycleSemiAnnual: 6,
	BillingCycleAnnual:     12,
}

// Months returns the length of one cycle, or 0 for an unknown cycle
func (b BillingCycle) Months() int {
	return billingCycleMonths[b]
}

func (b BillingCycle) Valid() bool {
	return b.Months() > 0
}

// PriceStatus constants
const (
	PriceStatusActive   = "active"
	PriceStatusInactive = "inactive"
)

// ProductPrice is one price plan of a product. A product has at most one price per billing cycle.
type ProductPrice struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	ProductID    uint            `json:"product_id" gorm:"not null;uniqueIndex:idx_product_prices_product_cycle"`
	Product      *Product        `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	BillingCycle BillingCycle    `json:"billing_cycle" gorm:"type:varchar(20);not null;uniqueIndex:idx_product_prices_product_cycle"`
	Price        decimal.Decimal `json:"price" gorm:"type:numeric(14,2);not null"`
	TermMonths   int             `json:"term_months" gorm:"not null"`
	Status       string          `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (p ProductPrice) IsActive() bool {
	return p.Status == PriceStatusActive
}

// MonthlyEquivalent spreads the price over the months of its billing cycle
func (p ProductPrice) MonthlyEquivalent() decimal.Decimal {
	months := p.BillingCycle.Months()
	if months == 0 {
		return decimal.Zero
	}
	return p.Price.Div(decimal.NewFromInt(int64(months))).Round(2)
}
