package controllers

import (
	"fmt"

	"github.com/Govind-619/BillSphere/config"
	"github.com/Govind-619/BillSphere/models"
	"github.com/Govind-619/BillSphere/utils"
	"github.com/gin-gonic/gin"
)

func adminUserResponse(user models.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"tenant_id":  user.TenantID,
		"username":   user.Username,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"role":       user.Role,
		"is_blocked": user.IsBlocked,
		"created_at": user.CreatedAt,
		"last_login": user.LastLoginAt,
	}
}

// GetUsers handles user listing with search, pagination, and sorting
func GetUsers(c *gin.Context) {
	utils.LogInfo("GetUsers called")
	p := utils.NewPagination(c)

	order := c.DefaultQuery("order", "desc")
	if order != "asc" && order != "desc" {
		order = "desc"
	}

	query := config.DB.Model(&models.User{}).
		Scopes(utils.Search(c.Query("search"), "email", "first_name", "last_name"))
	if tenantID := c.Query("tenant_id"); tenantID != "" {
		query = query.Where("tenant_id = ?", tenantID)
	}

	switch c.DefaultQuery("sort_by", "created_at") {
	case "email":
		query = query.Order(fmt.Sprintf("email %s", order))
	case "name":
		query = query.Order(fmt.Sprintf("first_name %s, last_name %s", order, order))
	default:
		query = query.Order(fmt.Sprintf("created_at %s", order))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count users", err.Error())
		return
	}

	var users []models.User
	if err := query.Scopes(p.Scope).Find(&users).Error; err != nil {
		utils.LogError("Failed to fetch users: %v", err)
		utils.InternalServerError(c, "Failed to fetch users", err.Error())
		return
	}

	cleanUsers := make([]gin.H, len(users))
	for i, user := range users {
		cleanUsers[i] = adminUserResponse(user)
	}

	utils.LogInfo("Successfully retrieved %d users", len(users))
	utils.SuccessWithPagination(c, "Users retrieved successfully", cleanUsers, total, p)
}

func setUserBlocked(c *gin.Context, blocked bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		utils.LogError("User not found: %d", id)
		utils.NotFound(c, "User not found")
		return
	}
	if err := config.DB.Model(&user).Update("is_blocked", blocked).Error; err != nil {
		utils.LogError("Failed to update block status for user %d: %v", id, err)
		utils.InternalServerError(c, "Failed to update user", err.Error())
		return
	}
	state := "unblocked"
	if blocked {
		state = "blocked"
	}
	utils.LogInfo("User %d %s", user.ID, state)
	utils.Success(c, "User "+state+" successfully", adminUserResponse(user))
}

// BlockUser blocks a user
func BlockUser(c *gin.Context) {
	utils.LogInfo("BlockUser called")
	setUserBlocked(c, true)
}

// UnblockUser unblocks a user
func UnblockUser(c *gin.Context) {
	utils.LogInfo("UnblockUser called")
	setUserBlocked(c, false)
}
