package controllers

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/Govind-619/BillSphere/config"
	"github.com/Govind-619/BillSphere/models"
	"github.com/Govind-619/BillSphere/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateSubscriptionRequest requests a subscription to a price plan.
// Staff pick the customer with UserID; customers always subscribe themselves.
type CreateSubscriptionRequest struct {
	UserID         uint   `json:"user_id"`
	ProductPriceID uint   `json:"product_price_id" binding:"required"`
	Notes          string `json:"notes" binding:"max=1000"`
}

// SubscriptionActionRequest is the optional body of a lifecycle action
type SubscriptionActionRequest struct {
	Notes string `json:"notes" binding:"max=1000"`
}

func subscriptionQuery(db *gorm.DB, user models.User) *gorm.DB {
	q := db.Model(&models.Subscription{}).Scopes(utils.ForTenant(user.TenantID))
	if !user.Role.Can(models.PermViewSubscriptions) {
		q = q.Where("user_id = ?", user.ID)
	}
	return q
}

func loadSubscription(db *gorm.DB, user models.User, id uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := subscriptionQuery(db, user).
		Preload("User").Preload("Approver").Preload("ProductPrice.Product").
		First(&sub, id).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// findSubscribablePrice returns an active price of an active product in the tenant
func findSubscribablePrice(db *gorm.DB, tenantID, priceID uint) (*models.ProductPrice, error) {
	var price models.ProductPrice
	err := db.Preload("Product").First(&price, priceID).Error
	if err != nil || price.Product == nil || price.Product.TenantID != tenantID {
		return nil, utils.NotFoundError("Price not found", err)
	}
	if !price.IsActive() || !price.Product.IsActive {
		return nil, utils.UnprocessableError("This price plan is not available", nil)
	}
	return &price, nil
}

// ListSubscriptions lists subscriptions; customers only see their own
func ListSubscriptions(c *gin.Context) {
	utils.LogInfo("ListSubscriptions called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	p := utils.NewPagination(c)

	query := subscriptionQuery(config.DB, user)
	if status := c.Query("status"); status != "" {
		if !models.SubscriptionStatus(status).Valid() {
			utils.BadRequest(c, "Invalid status filter", status)
			return
		}
		query = query.Where("status = ?", status)
	}
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count subscriptions", err.Error())
		return
	}
	var subs []models.Subscription
	err := query.Preload("User").Preload("ProductPrice.Product").
		Order("created_at desc").Scopes(p.Scope).Find(&subs).Error
	if err != nil {
		utils.LogError("Failed to fetch subscriptions: %v", err)
		utils.InternalServerError(c, "Failed to fetch subscriptions", err.Error())
		return
	}

	utils.LogInfo("Retrieved %d subscriptions for user %d", len(subs), user.ID)
	utils.SuccessWithPagination(c, "Subscriptions retrieved successfully", subs, total, p)
}

// GetSubscription shows one subscription
func GetSubscription(c *gin.Context) {
	utils.LogInfo("GetSubscription called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	sub, err := loadSubscription(config.DB, user, id)
	if err != nil {
		utils.NotFound(c, "Subscription not found")
		return
	}
	utils.Success(c, "Subscription retrieved successfully", sub)
}

// CreateSubscription requests a new subscription; it always starts pending approval
func CreateSubscription(c *gin.Context) {
	utils.LogInfo("CreateSubscription called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req CreateSubscriptionRequest
	if !bindJSON(c, &req) {
		return
	}

	customerID := user.ID
	if user.Role.IsStaff() && req.UserID != 0 {
		var customer models.User
		if err := config.DB.Scopes(utils.ForTenant(user.TenantID)).First(&customer, req.UserID).Error; err != nil {
			utils.NotFound(c, "Customer not found")
			return
		}
		customerID = customer.ID
	}

	price, err := findSubscribablePrice(config.DB, user.TenantID, req.ProductPriceID)
	if err != nil {
		utils.RespondWithError(c, "Failed to load price", err)
		return
	}

	sub := models.Subscription{
		TenantID:       user.TenantID,
		UserID:         customerID,
		ProductPriceID: price.ID,
		Status:         models.SubscriptionPendingApproval,
		Notes:          strings.TrimSpace(req.Notes),
	}
	if err := config.DB.Create(&sub).Error; err != nil {
		utils.LogError("Failed to create subscription: %v", err)
		utils.InternalServerError(c, "Failed to create subscription", err.Error())
		return
	}
	utils.AppMetrics.SubscriptionTransition(string(sub.Status))

	created, err := loadSubscription(config.DB, user, sub.ID)
	if err != nil {
		utils.InternalServerError(c, "Failed to load subscription", err.Error())
		return
	}
	utils.LogInfo("Subscription %d created for user %d on price %d", sub.ID, customerID, price.ID)
	utils.Created(c, "Subscription created successfully", created)
}

// DeleteSubscription soft-deletes a subscription
func DeleteSubscription(c *gin.Context) {
	utils.LogInfo("DeleteSubscription called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	sub, err := loadSubscription(config.DB, user, id)
	if err != nil {
		utils.NotFound(c, "Subscription not found")
		return
	}
	if err := config.DB.Delete(sub).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete subscription", err.Error())
		return
	}
	utils.LogInfo("Subscription %d deleted by user %d", sub.ID, user.ID)
	utils.Success(c, "Subscription deleted successfully", nil)
}

// bindOptionalJSON binds a body that may be empty
func bindOptionalJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		utils.BadRequest(c, "Invalid input", utils.BindingErrors(err))
		return false
	}
	return true
}

// subscriptionAction builds a handler that moves a subscription to next.
// from restricts the allowed current statuses on top of the lifecycle rules.
func subscriptionAction(name string, next models.SubscriptionStatus, notesRequired, notify bool, from ...models.SubscriptionStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.LogInfo("%s called", name)
		user, ok := currentUser(c)
		if !ok {
			return
		}
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		var req SubscriptionActionRequest
		if !bindOptionalJSON(c, &req) {
			return
		}
		notes := strings.TrimSpace(req.Notes)
		if notesRequired && notes == "" {
			utils.ValidationError(c, "Notes are required", gin.H{"notes": "notes is required"})
			return
		}

		sub, err := loadSubscription(config.DB, user, id)
		if err != nil {
			utils.NotFound(c, "Subscription not found")
			return
		}
		if len(from) > 0 && !containsStatus(from, sub.Status) {
			utils.ValidationError(c, "Cannot change subscription from "+string(sub.Status)+" to "+string(next), nil)
			return
		}

		err = config.DB.Transaction(func(tx *gorm.DB) error {
			return transitionSubscription(tx, sub, next, &user, notes, time.Now())
		})
		if err != nil {
			utils.RespondWithError(c, "Failed to update subscription", err)
			return
		}
		if notify {
			notifySubscriptionStatus(sub)
		}

		updated, err := loadSubscription(config.DB, user, sub.ID)
		if err != nil {
			utils.InternalServerError(c, "Failed to load subscription", err.Error())
			return
		}
		utils.Success(c, "Subscription "+string(next)+" successfully", updated)
	}
}

func containsStatus(list []models.SubscriptionStatus, s models.SubscriptionStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

var (
	ApproveSubscription  = subscriptionAction("ApproveSubscription", models.SubscriptionApproved, false, true)
	RejectSubscription   = subscriptionAction("RejectSubscription", models.SubscriptionRejected, true, true)
	ActivateSubscription = subscriptionAction("ActivateSubscription", models.SubscriptionActive, false, true, models.SubscriptionApproved)
	SuspendSubscription  = subscriptionAction("SuspendSubscription", models.SubscriptionSuspended, false, true)
	ResumeSubscription   = subscriptionAction("ResumeSubscription", models.SubscriptionActive, false, true, models.SubscriptionSuspended)
	CancelSubscription   = subscriptionAction("CancelSubscription", models.SubscriptionCancelled, false, true)
	ExpireSubscription   = subscriptionAction("ExpireSubscription", models.SubscriptionExpired, false, false)
)

// ExpireDueSubscriptions expires the tenant's subscriptions whose term has ended
func ExpireDueSubscriptions(c *gin.Context) {
	utils.LogInfo("ExpireDueSubscriptions called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	count, err := expireDueSubscriptions(config.DB, user.TenantID, time.Now())
	if err != nil {
		utils.RespondWithError(c, "Failed to expire subscriptions", err)
		return
	}
	utils.LogInfo("Expired %d due subscriptions for tenant %d", count, user.TenantID)
	utils.Success(c, "Due subscriptions expired", gin.H{"expired": count})
}
