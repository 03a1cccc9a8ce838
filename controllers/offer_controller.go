package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/Govind-619/BillSphere/config"
	"github.com/Govind-619/BillSphere/models"
	"github.com/Govind-619/BillSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OfferRequest creates or updates an offer
type OfferRequest struct {
	UserID          uint             `json:"user_id" binding:"required"`
	ProductPriceID  uint             `json:"product_price_id" binding:"required"`
	Price           *decimal.Decimal `json:"price"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
	ValidUntil      *time.Time       `json:"valid_until"`
	Notes           string           `json:"notes" binding:"max=1000"`
}

var maxDiscount = decimal.NewFromInt(100)

func newOfferReference() string {
	return "OFF-" + strings.ToUpper(uuid.New().String()[:8])
}

func loadOffer(db *gorm.DB, tenantID, id uint) (*models.Offer, error) {
	var offer models.Offer
	err := db.Scopes(utils.ForTenant(tenantID)).
		Preload("User").Preload("Creator").Preload("ProductPrice.Product").
		First(&offer, id).Error
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

// applyOfferRequest validates req and copies it onto offer
func applyOfferRequest(tenantID uint, req *OfferRequest, offer *models.Offer, now time.Time) error {
	var customer models.User
	if err := config.DB.Scopes(utils.ForTenant(tenantID)).First(&customer, req.UserID).Error; err != nil {
		return utils.NotFoundError("Customer not found", err)
	}
	price, err := findSubscribablePrice(config.DB, tenantID, req.ProductPriceID)
	if err != nil {
		return err
	}

	offer.UserID = customer.ID
	offer.ProductPriceID = price.ID
	offer.Price = price.Price
	if req.Price != nil {
		if err := utils.ValidateAmount(*req.Price); err != nil {
			return utils.UnprocessableError("Invalid price", err)
		}
		offer.Price = *req.Price
	}
	if req.DiscountPercent != nil {
		d := *req.DiscountPercent
		if d.IsNegative() || d.GreaterThan(maxDiscount) {
			return utils.UnprocessableError("Discount must be between 0 and 100 percent", nil)
		}
		offer.DiscountPercent = d
	}
	if req.ValidUntil != nil {
		if !req.ValidUntil.After(now) {
			return utils.UnprocessableError("valid_until must be in the future", nil)
		}
		offer.ValidUntil = *req.ValidUntil
	} else if offer.ValidUntil.IsZero() {
		offer.ValidUntil = now.AddDate(0, 0, utils.DefaultOfferValidityDays)
	}
	offer.Notes = strings.TrimSpace(req.Notes)
	return nil
}

// ListOffers lists the tenant's offers
func ListOffers(c *gin.Context) {
	utils.LogInfo("ListOffers called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	p := utils.NewPagination(c)

	query := config.DB.Model(&models.Offer{}).
		Scopes(utils.ForTenant(user.TenantID), utils.Search(c.Query("search"), "reference"))
	if status := c.Query("status"); status != "" {
		if !models.OfferStatus(status).Valid() {
			utils.BadRequest(c, "Invalid status filter", status)
			return
		}
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count offers", err.Error())
		return
	}
	var offers []models.Offer
	err := query.Preload("User").Preload("ProductPrice.Product").
		Order("created_at desc").Scopes(p.Scope).Find(&offers).Error
	if err != nil {
		utils.LogError("Failed to fetch offers: %v", err)
		utils.InternalServerError(c, "Failed to fetch offers", err.Error())
		return
	}
	utils.SuccessWithPagination(c, "Offers retrieved successfully", offers, total, p)
}

// GetOffer shows one offer with its final price
func GetOffer(c *gin.Context) {
	utils.LogInfo("GetOffer called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	offer, err := loadOffer(config.DB, user.TenantID, id)
	if err != nil {
		utils.NotFound(c, "Offer not found")
		return
	}
	utils.Success(c, "Offer retrieved successfully", gin.H{
		"offer":       offer,
		"final_price": utils.FormatMoney(offer.FinalPrice()),
	})
}

// CreateOffer records a sales offer and emails it to the customer
func CreateOffer(c *gin.Context) {
	utils.LogInfo("CreateOffer called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req OfferRequest
	if !bindJSON(c, &req) {
		return
	}

	offer := models.Offer{
		TenantID:  user.TenantID,
		Reference: newOfferReference(),
		CreatedBy: user.ID,
		Status:    models.OfferPending,
	}
	if err := applyOfferRequest(user.TenantID, &req, &offer, time.Now()); err != nil {
		utils.RespondWithError(c, "Failed to create offer", err)
		return
	}
	if err := config.DB.Create(&offer).Error; err != nil {
		utils.LogError("Failed to create offer: %v", err)
		utils.InternalServerError(c, "Failed to create offer", err.Error())
		return
	}

	created, err := loadOffer(config.DB, user.TenantID, offer.ID)
	if err != nil {
		utils.InternalServerError(c, "Failed to load offer", err.Error())
		return
	}
	if err := utils.SendOfferEmail(created.User.Email, created.User.FullName(), created.Reference,
		created.ProductPrice.Product.Name, utils.FormatMoney(created.FinalPrice()),
		created.ValidUntil.Format("02 Jan 2006")); err != nil {
		utils.LogError("Failed to send offer %s email: %v", created.Reference, err)
	}

	utils.LogInfo("Offer %s created by user %d for user %d", created.Reference, user.ID, created.UserID)
	utils.Created(c, "Offer created successfully", created)
}

// UpdateOffer edits a pending offer
func UpdateOffer(c *gin.Context) {
	utils.LogInfo("UpdateOffer called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req OfferRequest
	if !bindJSON(c, &req) {
		return
	}

	offer, err := loadOffer(config.DB, user.TenantID, id)
	if err != nil {
		utils.NotFound(c, "Offer not found")
		return
	}
	if offer.Status != models.OfferPending {
		utils.ValidationError(c, "Only pending offers can be edited", gin.H{"status": offer.Status})
		return
	}
	if err := applyOfferRequest(user.TenantID, &req, offer, time.Now()); err != nil {
		utils.RespondWithError(c, "Failed to update offer", err)
		return
	}
	err = config.DB.Model(offer).Select(
		"user_id", "product_price_id", "price", "discount_percent", "valid_until", "notes",
	).Updates(offer).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to update offer", err.Error())
		return
	}

	updated, err := loadOffer(config.DB, user.TenantID, offer.ID)
	if err != nil {
		utils.InternalServerError(c, "Failed to load offer", err.Error())
		return
	}
	utils.LogInfo("Offer %s updated", updated.Reference)
	utils.Success(c, "Offer updated successfully", updated)
}

// DeleteOffer soft-deletes an offer that has not been converted
func DeleteOffer(c *gin.Context) {
	utils.LogInfo("DeleteOffer called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	offer, err := loadOffer(config.DB, user.TenantID, id)
	if err != nil {
		utils.NotFound(c, "Offer not found")
		return
	}
	if offer.Status == models.OfferConverted {
		utils.ValidationError(c, "Converted offers cannot be deleted", nil)
		return
	}
	if err := config.DB.Delete(offer).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete offer", err.Error())
		return
	}
	utils.LogInfo("Offer %s deleted", offer.Reference)
	utils.Success(c, "Offer deleted successfully", nil)
}

// transitionOffer moves offer to next and stamps responded_at for customer answers
func transitionOffer(tx *gorm.DB, offer *models.Offer, next models.OfferStatus, now time.Time) error {
	if !offer.Status.CanTransitionTo(next) {
		return utils.UnprocessableError(fmt.Sprintf("Cannot change offer from %s to %s", offer.Status, next), nil)
	}
	updates := map[string]interface{}{"status": next}
	switch next {
	case models.OfferAccepted, models.OfferRejected:
		updates["responded_at"] = now
		offer.RespondedAt = &now
	case models.OfferConverted:
		updates["converted_at"] = now
		offer.ConvertedAt = &now
	}
	if err := tx.Model(offer).Updates(updates).Error; err != nil {
		return utils.InternalError("Failed to update offer", err)
	}
	utils.LogInfo("Offer %s moved from %s to %s", offer.Reference, offer.Status, next)
	offer.Status = next
	return nil
}

func offerAction(name string, next models.OfferStatus) gin.HandlerFunc {
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
		offer, err := loadOffer(config.DB, user.TenantID, id)
		if err != nil {
			utils.NotFound(c, "Offer not found")
			return
		}

		now := time.Now()
		if next == models.OfferAccepted && offer.Status == models.OfferPending && offer.IsLapsed(now) {
			if err := transitionOffer(config.DB, offer, models.OfferExpired, now); err != nil {
				utils.RespondWithError(c, "Failed to expire offer", err)
				return
			}
			utils.ValidationError(c, "Offer has expired", gin.H{"valid_until": offer.ValidUntil})
			return
		}

		if err := transitionOffer(config.DB, offer, next, now); err != nil {
			utils.RespondWithError(c, "Failed to update offer", err)
			return
		}
		utils.Success(c, "Offer "+string(next)+" successfully", offer)
	}
}

var (
	AcceptOffer = offerAction("AcceptOffer", models.OfferAccepted)
	RejectOffer = offerAction("RejectOffer", models.OfferRejected)
	ExpireOffer = offerAction("ExpireOffer", models.OfferExpired)
)

// ConvertOffer turns an accepted offer into a pending subscription
func ConvertOffer(c *gin.Context) {
	utils.LogInfo("ConvertOffer called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var sub models.Subscription
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		offer, err := loadOffer(tx, user.TenantID, id)
		if err != nil {
			return utils.NotFoundError("Offer not found", err)
		}
		if !offer.Status.CanTransitionTo(models.OfferConverted) {
			return utils.UnprocessableError(fmt.Sprintf("Cannot convert an offer that is %s", offer.Status), nil)
		}

		offerID := offer.ID
		sub = models.Subscription{
			TenantID:       offer.TenantID,
			UserID:         offer.UserID,
			ProductPriceID: offer.ProductPriceID,
			OfferID:        &offerID,
			Status:         models.SubscriptionPendingApproval,
			Notes:          fmt.Sprintf("Converted from offer %s at %s", offer.Reference, utils.FormatMoney(offer.FinalPrice())),
		}
		if err := tx.Create(&sub).Error; err != nil {
			return utils.InternalError("Failed to create subscription", err)
		}
		if err := transitionOffer(tx, offer, models.OfferConverted, time.Now()); err != nil {
			return err
		}
		if err := tx.Model(offer).Update("subscription_id", sub.ID).Error; err != nil {
			return utils.InternalError("Failed to link subscription", err)
		}
		return nil
	})
	if err != nil {
		utils.RespondWithError(c, "Failed to convert offer", err)
		return
	}
	utils.AppMetrics.SubscriptionTransition(string(models.SubscriptionPendingApproval))

	utils.LogInfo("Offer %d converted into subscription %d", id, sub.ID)
	utils.Created(c, "Offer converted successfully", gin.H{
		"offer_id":        id,
		"subscription_id": sub.ID,
		"subscription":    sub,
	})
}
