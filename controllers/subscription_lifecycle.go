package controllers

import (
	"fmt"
	"time"

	"github.com/Govind-619/BillSphere/models"
	"github.com/Govind-619/BillSphere/utils"
	"gorm.io/gorm"
)

// transitionSubscription moves sub to next and stamps the matching timestamp.
// sub.ProductPrice must be loaded when next is active.
func transitionSubscription(tx *gorm.DB, sub *models.Subscription, next models.SubscriptionStatus, actor *models.User, notes string, now time.Time) error {
	if !sub.Status.CanTransitionTo(next) {
		return utils.UnprocessableError(
			fmt.Sprintf("Cannot change subscription from %s to %s", sub.Status, next), nil)
	}
	from := sub.Status

	switch next {
	case models.SubscriptionApproved:
		if actor != nil {
			sub.ApprovedBy = &actor.ID
		}
		sub.ApprovedAt = &now
		sub.ApprovalNotes = notes
	case models.SubscriptionRejected:
		sub.RejectedAt = &now
		sub.ApprovalNotes = notes
	case models.SubscriptionActive:
		if from == models.SubscriptionSuspended {
			sub.SuspendedAt = nil
			break
		}
		if sub.StartsAt == nil {
			sub.StartsAt = &now
		}
		if sub.ProductPrice != nil && sub.ProductPrice.TermMonths > 0 {
			ends := sub.StartsAt.AddDate(0, sub.ProductPrice.TermMonths, 0)
			sub.EndsAt = &ends
		}
	case models.SubscriptionSuspended:
		sub.SuspendedAt = &now
	case models.SubscriptionCancelled:
		sub.CancelledAt = &now
	case models.SubscriptionExpired:
		sub.ExpiredAt = &now
	}
	if notes != "" && next != models.SubscriptionApproved && next != models.SubscriptionRejected {
		sub.Notes = notes
	}
	sub.Status = next

	err := tx.Model(sub).Select(
		"status", "starts_at", "ends_at", "approved_by", "approved_at", "rejected_at",
		"approval_notes", "suspended_at", "cancelled_at", "expired_at", "notes",
	).Updates(sub).Error
	if err != nil {
		return utils.InternalError("Failed to update subscription", err)
	}

	utils.AppMetrics.SubscriptionTransition(string(next))
	utils.LogInfo("Subscription %d moved from %s to %s", sub.ID, from, next)
	return nil
}

// notifySubscriptionStatus emails the customer; failures are only logged
func notifySubscriptionStatus(sub *models.Subscription) {
	if sub.User == nil || sub.User.Email == "" {
		return
	}
	product := "your plan"
	if sub.ProductPrice != nil && sub.ProductPrice.Product != nil {
		product = sub.ProductPrice.Product.Name
	}
	err := utils.SendSubscriptionStatusEmail(sub.User.Email, sub.User.FullName(), product, string(sub.Status), sub.ApprovalNotes)
	if err != nil {
		utils.LogError("Failed to send %s email for subscription %d: %v", sub.Status, sub.ID, err)
	}
}

// expireDueSubscriptions expires every active or suspended subscription of the tenant whose term has ended
func expireDueSubscriptions(db *gorm.DB, tenantID uint, now time.Time) (int, error) {
	var due []models.Subscription
	err := db.Scopes(utils.ForTenant(tenantID)).
		Where("status IN ?", []models.SubscriptionStatus{models.SubscriptionActive, models.SubscriptionSuspended}).
		Where("ends_at IS NOT NULL AND ends_at <= ?", now).
		Find(&due).Error
	if err != nil {
		return 0, err
	}

	expired := 0
	err = db.Transaction(func(tx *gorm.DB) error {
		for i := range due {
			if !due[i].IsDue(now) {
				continue
			}
			if err := transitionSubscription(tx, &due[i], models.SubscriptionExpired, nil, "", now); err != nil {
				return err
			}
			expired++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return expired, nil
}
