package controllers

import (
	"errors"

	"github.com/Govind-619/BillSphere/config"
	"github.com/Govind-619/BillSphere/models"
	"github.com/Govind-619/BillSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// PriceRequest adds a price plan to a product
type PriceRequest struct {
	BillingCycle string          `json:"billing_cycle" binding:"required"`
	Price        decimal.Decimal `json:"price"`
	TermMonths   int             `json:"term_months" binding:"min=0"`
	Status       string          `json:"status"`
}

// UpdatePriceRequest changes the amount or term of a price plan
type UpdatePriceRequest struct {
	Price      decimal.Decimal `json:"price"`
	TermMonths int             `json:"term_months" binding:"min=0"`
}

// findPrice loads a price whose product belongs to the tenant
func findPrice(tenantID, id uint) (*models.ProductPrice, error) {
	var price models.ProductPrice
	err := config.DB.
		Joins("JOIN products ON products.id = product_prices.product_id AND products.deleted_at IS NULL").
		Where("products.tenant_id = ?", tenantID).
		Preload("Product").
		First(&price, "product_prices.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &price, nil
}

// CreateProductPrice adds a billing-cycle price to a product
func CreateProductPrice(c *gin.Context) {
	utils.LogInfo("CreateProductPrice called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req PriceRequest
	if !bindJSON(c, &req) {
		return
	}

	cycle := models.BillingCycle(req.BillingCycle)
	if !cycle.Valid() {
		utils.ValidationError(c, "Invalid billing cycle", "billing_cycle must be one of monthly, quarterly, semi_annual, annual")
		return
	}
	if err := utils.ValidateAmount(req.Price); err != nil {
		utils.ValidationError(c, "Invalid price", err.Error())
		return
	}
	status := req.Status
	if status == "" {
		status = models.PriceStatusActive
	}
	if status != models.PriceStatusActive && status != models.PriceStatusInactive {
		utils.ValidationError(c, "Invalid status", "status must be active or inactive")
		return
	}

	var product models.Product
	if err := config.DB.Scopes(utils.ForTenant(user.TenantID)).First(&product, productID).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	var count int64
	config.DB.Model(&models.ProductPrice{}).
		Where("product_id = ? AND billing_cycle = ?", product.ID, cycle).Count(&count)
	if count > 0 {
		utils.LogDebug("Product %d already has a %s price", product.ID, cycle)
		utils.Conflict(c, "This product already has a price for that billing cycle", nil)
		return
	}

	term := req.TermMonths
	if term == 0 {
		term = cycle.Months()
	}
	price := models.ProductPrice{
		ProductID:    product.ID,
		BillingCycle: cycle,
		Price:        req.Price,
		TermMonths:   term,
		Status:       status,
	}
	if err := config.DB.Create(&price).Error; err != nil {
		utils.LogError("Failed to create price for product %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to create price", err.Error())
		return
	}

	utils.LogInfo("Price %s/%s added to product %s", utils.FormatMoney(price.Price), cycle, product.Code)
	utils.Created(c, "Price created successfully", price)
}

// UpdateProductPrice changes the amount and term of a price plan
func UpdateProductPrice(c *gin.Context) {
	utils.LogInfo("UpdateProductPrice called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdatePriceRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := utils.ValidateAmount(req.Price); err != nil {
		utils.ValidationError(c, "Invalid price", err.Error())
		return
	}

	price, err := findPrice(user.TenantID, id)
	if err != nil {
		utils.NotFound(c, "Price not found")
		return
	}
	price.Price = req.Price
	if req.TermMonths > 0 {
		price.TermMonths = req.TermMonths
	}
	if err := config.DB.Model(price).Updates(map[string]interface{}{
		"price":       price.Price,
		"term_months": price.TermMonths,
	}).Error; err != nil {
		utils.InternalServerError(c, "Failed to update price", err.Error())
		return
	}

	utils.LogInfo("Price %d updated to %s", price.ID, utils.FormatMoney(price.Price))
	utils.Success(c, "Price updated successfully", price)
}

// TogglePriceStatus flips a price plan between active and inactive
func TogglePriceStatus(c *gin.Context) {
	utils.LogInfo("TogglePriceStatus called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	price, err := findPrice(user.TenantID, id)
	if err != nil {
		utils.NotFound(c, "Price not found")
		return
	}

	next := models.PriceStatusInactive
	if !price.IsActive() {
		next = models.PriceStatusActive
	}
	if err := config.DB.Model(price).Update("status", next).Error; err != nil {
		utils.InternalServerError(c, "Failed to update price status", err.Error())
		return
	}
	utils.LogInfo("Price %d is now %s", price.ID, next)
	utils.Success(c, "Price status updated successfully", price)
}

// DeleteProductPrice removes a price plan that no subscription or offer uses
func DeleteProductPrice(c *gin.Context) {
	utils.LogInfo("DeleteProductPrice called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	price, err := findPrice(user.TenantID, id)
	if err != nil {
		utils.NotFound(c, "Price not found")
		return
	}

	var used int64
	config.DB.Model(&models.Subscription{}).Unscoped().Where("product_price_id = ?", price.ID).Count(&used)
	if used == 0 {
		config.DB.Model(&models.Offer{}).Unscoped().Where("product_price_id = ?", price.ID).Count(&used)
	}
	if used > 0 {
		utils.RespondWithError(c, "Price is in use", utils.ConflictError("Price is used by subscriptions or offers, deactivate it instead", errors.New("price in use")))
		return
	}

	if err := config.DB.Delete(price).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete price", err.Error())
		return
	}
	utils.LogInfo("Price %d deleted", price.ID)
	utils.Success(c, "Price deleted successfully", nil)
}
