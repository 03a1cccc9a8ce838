package controllers

import (
	"strings"

	"github.com/Govind-619/BillSphere/config"
	"github.com/Govind-619/BillSphere/models"
	"github.com/Govind-619/BillSphere/utils"
	"github.com/gin-gonic/gin"
)

// CreateMemberRequest adds a staff member or customer to the caller's tenant
type CreateMemberRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Role      string `json:"role" binding:"required"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// ListMembers lists users of the caller's tenant, optionally filtered by role
func ListMembers(c *gin.Context) {
	utils.LogInfo("ListMembers called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	p := utils.NewPagination(c)

	query := config.DB.Model(&models.User{}).
		Scopes(utils.ForTenant(user.TenantID), utils.Search(c.Query("search"), "username", "email", "first_name", "last_name"))
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count members", err.Error())
		return
	}
	var members []models.User
	if err := query.Order("id").Scopes(p.Scope).Find(&members).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch members", err.Error())
		return
	}

	out := make([]gin.H, len(members))
	for i, m := range members {
		out[i] = userResponse(m)
	}
	utils.SuccessWithPagination(c, "Members retrieved successfully", out, total, p)
}

// CreateMember adds a user to the caller's tenant
func CreateMember(c *gin.Context) {
	utils.LogInfo("CreateMember called")
	owner, ok := currentUser(c)
	if !ok {
		return
	}
	var req CreateMemberRequest
	if !bindJSON(c, &req) {
		return
	}
	role := models.Role(req.Role)
	if !role.Valid() {
		utils.ValidationError(c, "Invalid role", "role must be one of owner, manager, sales, customer")
		return
	}
	if ok, msg := utils.ValidateUsername(req.Username); !ok {
		utils.ValidationError(c, "Invalid username", msg)
		return
	}
	if ok, msg := utils.ValidatePassword(req.Password); !ok {
		utils.ValidationError(c, "Invalid password", msg)
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	config.DB.Model(&models.User{}).Where("email = ? OR username = ?", email, req.Username).Count(&count)
	if count > 0 {
		utils.Conflict(c, "Email or username already registered", nil)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.InternalServerError(c, "Failed to hash password", err.Error())
		return
	}
	member := models.User{
		TenantID:  owner.TenantID,
		Username:  req.Username,
		Email:     email,
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      role,
	}
	if err := config.DB.Create(&member).Error; err != nil {
		utils.LogError("Failed to create member %s: %v", email, err)
		utils.InternalServerError(c, "Failed to create member", err.Error())
		return
	}

	utils.LogInfo("User %d added %s as %s to tenant %d", owner.ID, member.Email, member.Role, member.TenantID)
	utils.Created(c, "Member created successfully", userResponse(member))
}

// UpdateMemberRole changes the role of a user in the caller's tenant
func UpdateMemberRole(c *gin.Context) {
	utils.LogInfo("UpdateMemberRole called")
	owner, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateRoleRequest
	if !bindJSON(c, &req) {
		return
	}
	role := models.Role(req.Role)
	if !role.Valid() {
		utils.ValidationError(c, "Invalid role", "role must be one of owner, manager, sales, customer")
		return
	}
	if id == owner.ID && role != models.RoleOwner {
		utils.ValidationError(c, "Cannot demote yourself", nil)
		return
	}

	var member models.User
	if err := config.DB.Scopes(utils.ForTenant(owner.TenantID)).First(&member, id).Error; err != nil {
		utils.NotFound(c, "Member not found")
		return
	}
	if err := config.DB.Model(&member).Update("role", role).Error; err != nil {
		utils.InternalServerError(c, "Failed to update role", err.Error())
		return
	}

	utils.LogInfo("User %d changed role of user %d to %s", owner.ID, member.ID, role)
	utils.Success(c, "Role updated successfully", userResponse(member))
}
