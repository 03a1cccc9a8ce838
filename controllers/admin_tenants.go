package controllers

import (
	"github.com/Govind-619/BillSphere/config"
	"github.com/Govind-619/BillSphere/models"
	"github.com/Govind-619/BillSphere/utils"
	"github.com/gin-gonic/gin"
)

type tenantSummary struct {
	models.Tenant
	UserCount int64 `json:"user_count"`
}

// GetTenants lists all tenants for platform admins
func GetTenants(c *gin.Context) {
	utils.LogInfo("GetTenants called")
	p := utils.NewPagination(c)

	query := config.DB.Model(&models.Tenant{}).Scopes(utils.Search(c.Query("search"), "name", "slug"))
	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count tenants", err.Error())
		return
	}

	var tenants []models.Tenant
	if err := query.Order("created_at desc").Scopes(p.Scope).Find(&tenants).Error; err != nil {
		utils.LogError("Failed to fetch tenants: %v", err)
		utils.InternalServerError(c, "Failed to fetch tenants", err.Error())
		return
	}

	out := make([]tenantSummary, len(tenants))
	for i, t := range tenants {
		out[i].Tenant = t
		config.DB.Model(&models.User{}).Where("tenant_id = ?", t.ID).Count(&out[i].UserCount)
	}

	utils.LogInfo("Retrieved %d tenants", len(tenants))
	utils.SuccessWithPagination(c, "Tenants retrieved successfully", out, total, p)
}

func setTenantActive(c *gin.Context, active bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var tenant models.Tenant
	if err := config.DB.First(&tenant, id).Error; err != nil {
		utils.NotFound(c, "Tenant not found")
		return
	}
	if err := config.DB.Model(&tenant).Update("is_active", active).Error; err != nil {
		utils.InternalServerError(c, "Failed to update tenant", err.Error())
		return
	}
	state := "deactivated"
	if active {
		state = "activated"
	}
	utils.LogInfo("Tenant %d %s", tenant.ID, state)
	utils.Success(c, "Tenant "+state+" successfully", tenant)
}

// DeactivateTenant locks every user of a tenant out
func DeactivateTenant(c *gin.Context) {
	utils.LogInfo("DeactivateTenant called")
	setTenantActive(c, false)
}

// ActivateTenant reverses DeactivateTenant
func ActivateTenant(c *gin.Context) {
	utils.LogInfo("ActivateTenant called")
	setTenantActive(c, true)
}
