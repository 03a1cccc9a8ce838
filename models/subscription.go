package models

import (
	"time"

	"gorm.io/gorm"
)

// SubscriptionStatus is the lifecycle state of a subscription
type SubscriptionStatus string

const (
	SubscriptionPendingApproval SubscriptionStatus = "pending_approval"
	SubscriptionApproved        SubscriptionStatus = "approved"
	SubscriptionRejected        SubscriptionStatus = "rejected"
	SubscriptionActive          SubscriptionStatus = "active"
	SubscriptionSuspended       SubscriptionStatus = "suspended"
	SubscriptionCancelled       SubscriptionStatus = "cancelled"
	SubscriptionExpired         SubscriptionStatus = "expired"
)

var subscriptionTransitions = map[SubscriptionStatus][]SubscriptionStatus{
	SubscriptionPendingApproval: {SubscriptionApproved, SubscriptionRejected, SubscriptionCancelled},
	SubscriptionApproved:        {SubscriptionActive, SubscriptionCancelled},
	SubscriptionActive:          {SubscriptionSuspended, SubscriptionCancelled, SubscriptionExpired},
	SubscriptionSuspended:       {SubscriptionActive, SubscriptionCancelled, SubscriptionExpired},
}

// AllSubscriptionStatuses lists every status in lifecycle order
var AllSubscriptionStatuses = []SubscriptionStatus{
	SubscriptionPendingApproval, SubscriptionApproved, SubscriptionRejected, SubscriptionActive,
	SubscriptionSuspended, SubscriptionCancelled, SubscriptionExpired,
}

func (s SubscriptionStatus) Valid() bool {
	for _, known := range AllSubscriptionStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether a subscription in status s may move to next
func (s SubscriptionStatus) CanTransitionTo(next SubscriptionStatus) bool {
	for _, allowed := range subscriptionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal is true for statuses with no outgoing transitions
func (s SubscriptionStatus) IsTerminal() bool {
	return len(subscriptionTransitions[s]) == 0
}

// Subscription links a customer to a product price
type Subscription struct {
	ID             uint               `json:"id" gorm:"primaryKey"`
	TenantID       uint               `json:"tenant_id" gorm:"index;not null"`
	UserID         uint               `json:"user_id" gorm:"index;not null"`
	User           *User              `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ProductPriceID uint               `json:"product_price_id" gorm:"index;not null"`
	ProductPrice   *ProductPrice      `json:"product_price,omitempty" gorm:"foreignKey:ProductPriceID;constraint:OnDelete:RESTRICT"`
	OfferID        *uint              `json:"offer_id,omitempty" gorm:"index"`
	Status         SubscriptionStatus `json:"status" gorm:"type:varchar(30);index;not null;default:'pending_approval'"`
	StartsAt       *time.Time         `json:"starts_at"`
	EndsAt         *time.Time         `json:"ends_at"`
	ApprovedBy     *uint              `json:"approved_by"`
	Approver       *User              `json:"approver,omitempty" gorm:"foreignKey:ApprovedBy;constraint:OnDelete:SET NULL"`
	ApprovedAt     *time.Time         `json:"approved_at"`
	RejectedAt     *time.Time         `json:"rejected_at"`
	ApprovalNotes  string             `json:"approval_notes"`
	SuspendedAt    *time.Time         `json:"suspended_at"`
	CancelledAt    *time.Time         `json:"cancelled_at"`
	ExpiredAt      *time.Time         `json:"expired_at"`
	Notes          string             `json:"notes"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	DeletedAt      gorm.DeletedAt     `json:"-" gorm:"index"`
}

// IsDue reports whether the subscription term has ended at now
func (s Subscription) IsDue(now time.Time) bool {
	return s.EndsAt != nil && !s.EndsAt.After(now)
}
