package controllers

import (
	"errors"
	"strings"

	"github.com/Govind-619/BillSphere/config"
	"github.com/Govind-619/BillSphere/models"
	"github.com/Govind-619/BillSphere/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProductRequest represents the product creation/update request
type ProductRequest struct {
	Name           string                 `json:"name" binding:"required,min=2,max=150"`
	Code           string                 `json:"code" binding:"required"`
	Description    string                 `json:"description"`
	CategoryID     *uint                  `json:"category_id"`
	BandwidthMbps  int                    `json:"bandwidth_mbps" binding:"min=0"`
	ConnectionType string                 `json:"connection_type"`
	Attributes     map[string]interface{} `json:"attributes"`
	IsActive       *bool                  `json:"is_active"`
}

// validateProductRequest checks the parts of a product request the binding tags cannot
func validateProductRequest(tenantID uint, req *ProductRequest, exceptID uint) *utils.AppError {
	if ok, msg := utils.ValidateProductCode(req.Code); !ok {
		return utils.UnprocessableError("Invalid product code", errors.New(msg))
	}
	code := strings.ToUpper(strings.TrimSpace(req.Code))

	var count int64
	q := config.DB.Model(&models.Product{}).Unscoped().Scopes(utils.ForTenant(tenantID)).Where("code = ?", code)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return utils.InternalError("Failed to check product code", err)
	}
	if count > 0 {
		return utils.ConflictError("A product with this code already exists", nil)
	}

	if req.CategoryID != nil {
		var category models.Category
		if err := config.DB.Scopes(utils.ForTenant(tenantID)).First(&category, *req.CategoryID).Error; err != nil {
			return utils.UnprocessableError("Category not found", err)
		}
		if category.Blocked {
			return utils.UnprocessableError("Category is blocked", nil)
		}
	}
	return nil
}

func findProduct(db *gorm.DB, tenantID, id uint) (*models.Product, error) {
	var product models.Product
	err := db.Scopes(utils.ForTenant(tenantID)).
		Preload("Category").
		Preload("Prices", func(db *gorm.DB) *gorm.DB { return db.Order("price") }).
		First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts lists the tenant's products with their prices
func ListProducts(c *gin.Context) {
	utils.LogInfo("ListProducts called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	p := utils.NewPagination(c)

	query := config.DB.Model(&models.Product{}).
		Scopes(utils.ForTenant(user.TenantID), utils.Search(c.Query("search"), "name", "code"))
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	switch c.Query("active") {
	case "true":
		query = query.Where("is_active = ?", true)
	case "false":
		query = query.Where("is_active = ?", false)
	}
	if c.Query("trashed") == "true" {
		query = query.Unscoped().Where("deleted_at IS NOT NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count products", err.Error())
		return
	}

	var products []models.Product
	err := query.Preload("Category").Preload("Prices").
		Order("name").Scopes(p.Scope).Find(&products).Error
	if err != nil {
		utils.LogError("Failed to fetch products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", err.Error())
		return
	}

	utils.LogInfo("Retrieved %d products for tenant %d", len(products), user.TenantID)
	utils.SuccessWithPagination(c, "Products retrieved successfully", products, total, p)
}

// GetProduct shows a product with its category and prices
func GetProduct(c *gin.Context) {
	utils.LogInfo("GetProduct called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	product, err := findProduct(config.DB, user.TenantID, id)
	if err != nil {
		utils.NotFound(c, "Product not found")
		return
	}
	utils.Success(c, "Product retrieved successfully", product)
}

// CreateProduct handles product creation
func CreateProduct(c *gin.Context) {
	utils.LogInfo("CreateProduct called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req ProductRequest
	if !bindJSON(c, &req) {
		return
	}
	if appErr := validateProductRequest(user.TenantID, &req, 0); appErr != nil {
		utils.RespondWithError(c, appErr.Message, appErr)
		return
	}

	product := models.Product{
		TenantID:       user.TenantID,
		CategoryID:     req.CategoryID,
		Name:           req.Name,
		Code:           req.Code,
		Description:    req.Description,
		BandwidthMbps:  req.BandwidthMbps,
		ConnectionType: req.ConnectionType,
		Attributes:     datatypes.JSONMap(req.Attributes),
		IsActive:       true,
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if err := config.DB.Create(&product).Error; err != nil {
		utils.LogError("Failed to create product: %v", err)
		utils.InternalServerError(c, "Failed to create product", err.Error())
		return
	}
	// gorm skips false for fields with a default tag on insert
	if !product.IsActive {
		config.DB.Model(&product).Update("is_active", false)
	}

	utils.LogInfo("Product created successfully: %s (%s)", product.Name, product.Code)
	utils.Created(c, "Product created successfully", product)
}

// UpdateProduct handles product updates
func UpdateProduct(c *gin.Context) {
	utils.LogInfo("UpdateProduct called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	var product models.Product
	if err := config.DB.Scopes(utils.ForTenant(user.TenantID)).First(&product, id).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}
	if appErr := validateProductRequest(user.TenantID, &req, product.ID); appErr != nil {
		utils.RespondWithError(c, appErr.Message, appErr)
		return
	}

	product.Name = req.Name
	product.Code = req.Code
	product.Description = req.Description
	product.CategoryID = req.CategoryID
	product.BandwidthMbps = req.BandwidthMbps
	product.ConnectionType = req.ConnectionType
	if req.Attributes != nil {
		product.Attributes = datatypes.JSONMap(req.Attributes)
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	product.Category = nil
	if err := config.DB.Save(&product).Error; err != nil {
		utils.LogError("Failed to update product %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to update product", err.Error())
		return
	}

	updated, err := findProduct(config.DB, user.TenantID, product.ID)
	if err != nil {
		utils.InternalServerError(c, "Failed to reload product", err.Error())
		return
	}
	utils.LogInfo("Product updated successfully: %s", updated.Code)
	utils.Success(c, "Product updated successfully", updated)
}

// DeleteProduct soft-deletes a product
func DeleteProduct(c *gin.Context) {
	utils.LogInfo("DeleteProduct called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var product models.Product
	if err := config.DB.Scopes(utils.ForTenant(user.TenantID)).First(&product, id).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}
	if err := config.DB.Delete(&product).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete product", err.Error())
		return
	}
	utils.LogInfo("Product deleted: %s", product.Code)
	utils.Success(c, "Product deleted successfully", nil)
}

// RestoreProduct brings back a soft-deleted product
func RestoreProduct(c *gin.Context) {
	utils.LogInfo("RestoreProduct called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var product models.Product
	err := config.DB.Unscoped().Scopes(utils.ForTenant(user.TenantID)).
		Where("deleted_at IS NOT NULL").First(&product, id).Error
	if err != nil {
		utils.NotFound(c, "Deleted product not found")
		return
	}
	if err := config.DB.Unscoped().Model(&product).Update("deleted_at", nil).Error; err != nil {
		utils.InternalServerError(c, "Failed to restore product", err.Error())
		return
	}
	utils.LogInfo("Product restored: %s", product.Code)
	utils.Success(c, "Product restored successfully", gin.H{"id": product.ID, "code": product.Code})
}
