package controllers

import (
	"errors"
	"strings"

	"github.com/Govind-619/BillSphere/config"
	"github.com/Govind-619/BillSphere/models"
	"github.com/Govind-619/BillSphere/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CategoryRequest represents the category creation/update request
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"max=500"`
	Blocked     *bool  `json:"blocked"`
}

func categoryNameTaken(tenantID uint, name string, exceptID uint) bool {
	var count int64
	q := config.DB.Model(&models.Category{}).Scopes(utils.ForTenant(tenantID)).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	q.Count(&count)
	return count > 0
}

// ListCategories lists the tenant's categories
func ListCategories(c *gin.Context) {
	utils.LogInfo("ListCategories called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	p := utils.NewPagination(c)

	query := config.DB.Model(&models.Category{}).
		Scopes(utils.ForTenant(user.TenantID), utils.Search(c.Query("search"), "name", "description"))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count categories", err.Error())
		return
	}
	var categories []models.Category
	if err := query.Order("name").Scopes(p.Scope).Find(&categories).Error; err != nil {
		utils.LogError("Failed to fetch categories: %v", err)
		utils.InternalServerError(c, "Failed to fetch categories", err.Error())
		return
	}

	utils.LogInfo("Retrieved %d categories for tenant %d", len(categories), user.TenantID)
	utils.SuccessWithPagination(c, "Categories retrieved successfully", categories, total, p)
}

// CreateCategory handles category creation
func CreateCategory(c *gin.Context) {
	utils.LogInfo("CreateCategory called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req CategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	if categoryNameTaken(user.TenantID, req.Name, 0) {
		utils.LogError("Category with name %s already exists", req.Name)
		utils.Conflict(c, "A category with this name already exists", nil)
		return
	}

	category := models.Category{
		TenantID:    user.TenantID,
		Name:        req.Name,
		Description: req.Description,
	}
	if req.Blocked != nil {
		category.Blocked = *req.Blocked
	}
	if err := config.DB.Create(&category).Error; err != nil {
		utils.LogError("Failed to create category: %v", err)
		utils.InternalServerError(c, "Failed to create category", err.Error())
		return
	}

	utils.LogInfo("Category created successfully: %s", category.Name)
	utils.Created(c, "Category created successfully", category)
}

// UpdateCategory handles category updates
func UpdateCategory(c *gin.Context) {
	utils.LogInfo("UpdateCategory called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	var category models.Category
	if err := config.DB.Scopes(utils.ForTenant(user.TenantID)).First(&category, id).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}
	if categoryNameTaken(user.TenantID, req.Name, category.ID) {
		utils.Conflict(c, "A category with this name already exists", nil)
		return
	}

	category.Name = req.Name
	category.Description = req.Description
	if req.Blocked != nil {
		category.Blocked = *req.Blocked
	}
	if err := config.DB.Save(&category).Error; err != nil {
		utils.LogError("Failed to update category %d: %v", category.ID, err)
		utils.InternalServerError(c, "Failed to update category", err.Error())
		return
	}

	utils.LogInfo("Category updated successfully: %s", category.Name)
	utils.Success(c, "Category updated successfully", category)
}

// DeleteCategory soft-deletes a category that no product uses
func DeleteCategory(c *gin.Context) {
	utils.LogInfo("DeleteCategory called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var category models.Category
	if err := config.DB.Scopes(utils.ForTenant(user.TenantID)).First(&category, id).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	var productCount int64
	config.DB.Model(&models.Product{}).Where("category_id = ?", category.ID).Count(&productCount)
	if productCount > 0 {
		utils.LogDebug("Refusing to delete category %d with %d products", category.ID, productCount)
		utils.Conflict(c, "Category still has products", gin.H{"product_count": productCount})
		return
	}

	if err := config.DB.Delete(&category).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete category", err.Error())
		return
	}
	utils.LogInfo("Category deleted successfully: %s", category.Name)
	utils.Success(c, "Category deleted successfully", nil)
}

// CreateDefaultCategory creates a "General" category for a tenant that has none
func CreateDefaultCategory(tx *gorm.DB, tenantID uint) (*models.Category, error) {
	var category models.Category
	err := tx.Scopes(utils.ForTenant(tenantID)).Order("id").First(&category).Error
	if err == nil {
		return &category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	utils.LogDebug("No categories found for tenant %d, creating default category", tenantID)
	category = models.Category{
		TenantID:    tenantID,
		Name:        "General",
		Description: "Default product category",
	}
	if err := tx.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}
