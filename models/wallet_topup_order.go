package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type WalletTopupOrder struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `json:"user_id" gorm:"index"`
	UserWalletID    uint            `json:"user_wallet_id" gorm:"index"`
	RazorpayOrderID string          `json:"razorpay_order_id" gorm:"uniqueIndex"`
	Amount          decimal.Decimal `json:"amount" gorm:"type:numeric(14,2)"`
	Status          string          `json:"status"` // pending, completed, failed
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Topup order statuses
const (
	TopupStatusPending   = "pending"
	TopupStatusCompleted = "completed"
	TopupStatusFailed    = "failed"
)
