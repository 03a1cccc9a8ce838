package controllers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Govind-619/BillSphere/config"
	"github.com/Govind-619/BillSphere/models"
	"github.com/Govind-619/BillSphere/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRequest creates a workspace and its owner
type RegisterRequest struct {
	CompanyName string `json:"company_name" binding:"required,min=2,max=100"`
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
}

// LoginRequest represents a tenant user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func userResponse(user models.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"tenant_id":  user.TenantID,
		"username":   user.Username,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"role":       user.Role,
	}
}

// uniqueSlug derives a tenant slug from name that is not yet taken
func uniqueSlug(tx *gorm.DB, name string) (string, error) {
	base := utils.Slugify(name)
	if base == "" {
		base = "workspace"
	}
	slug := base
	for i := 2; ; i++ {
		var count int64
		if err := tx.Model(&models.Tenant{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// RegisterUser creates a new tenant with the caller as its owner
func RegisterUser(c *gin.Context) {
	utils.LogInfo("RegisterUser called")
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if ok, msg := utils.ValidateUsername(req.Username); !ok {
		utils.ValidationError(c, "Invalid username", msg)
		return
	}
	if ok, msg := utils.ValidatePassword(req.Password); !ok {
		utils.ValidationError(c, "Invalid password", msg)
		return
	}

	var count int64
	if err := config.DB.Model(&models.User{}).Where("email = ? OR username = ?", req.Email, req.Username).Count(&count).Error; err != nil {
		utils.InternalServerError(c, "Failed to check existing users", err.Error())
		return
	}
	if count > 0 {
		utils.LogDebug("Registration rejected, email or username taken: %s", req.Email)
		utils.Conflict(c, "Email or username already registered", nil)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.InternalServerError(c, "Failed to hash password", err.Error())
		return
	}

	var user models.User
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		slug, err := uniqueSlug(tx, req.CompanyName)
		if err != nil {
			return err
		}
		tenant := models.Tenant{Name: strings.TrimSpace(req.CompanyName), Slug: slug, IsActive: true}
		if err := tx.Create(&tenant).Error; err != nil {
			return err
		}
		user = models.User{
			TenantID:  tenant.ID,
			Username:  req.Username,
			Email:     req.Email,
			Password:  hash,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Role:      models.RoleOwner,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		_, err = CreateDefaultCategory(tx, tenant.ID)
		return err
	})
	if err != nil {
		utils.LogError("Failed to register %s: %v", req.Email, err)
		utils.InternalServerError(c, "Failed to register", err.Error())
		return
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token", err.Error())
		return
	}

	utils.LogInfo("User registration completed successfully: %s (tenant %d)", user.Email, user.TenantID)
	utils.Created(c, "Registration successful", gin.H{
		"token": token,
		"user":  userResponse(user),
	})
}

// LoginUser authenticates a tenant user and returns a token
func LoginUser(c *gin.Context) {
	utils.LogInfo("LoginUser called")
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := config.DB.Preload("Tenant").Where("email = ?", email).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.InternalServerError(c, "Failed to look up user", err.Error())
			return
		}
		utils.LogError("Login attempt failed for %s: unknown email", email)
		utils.Unauthorized(c, utils.ErrInvalidCredentials)
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		utils.LogError("Login attempt failed for %s: wrong password", email)
		utils.Unauthorized(c, utils.ErrInvalidCredentials)
		return
	}
	if user.IsBlocked {
		utils.Forbidden(c, utils.ErrUserBlocked)
		return
	}
	if !user.Tenant.IsActive {
		utils.Forbidden(c, utils.ErrTenantInactive)
		return
	}

	if err := config.DB.Model(&user).Update("last_login_at", time.Now()).Error; err != nil {
		utils.LogError("Failed to update last login for %s: %v", email, err)
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token", err.Error())
		return
	}

	utils.LogInfo("User logged in successfully: %s", email)
	utils.Success(c, "Login successful", gin.H{
		"token": token,
		"user":  userResponse(user),
	})
}

// blacklistBearer stores the request's bearer token until it expires
func blacklistBearer(c *gin.Context) {
	tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if tokenString == "" {
		return
	}
	claims, err := utils.ParseToken(tokenString)
	if err != nil {
		utils.LogDebug("Ignoring invalid token on logout: %v", err)
		return
	}
	blacklisted := models.BlacklistedToken{
		Token:     tokenString,
		ExpiresAt: utils.TokenExpiry(claims),
	}
	if err := config.DB.Where(models.BlacklistedToken{Token: tokenString}).FirstOrCreate(&blacklisted).Error; err != nil {
		utils.LogError("Failed to blacklist token on logout: %v", err)
	}
}

// LogoutUser revokes the caller's token
func LogoutUser(c *gin.Context) {
	utils.LogInfo("LogoutUser called")
	blacklistBearer(c)
	utils.Success(c, "Logged out successfully", nil)
}

// GetMe returns the authenticated user and its tenant
func GetMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	utils.Success(c, "Profile retrieved successfully", gin.H{
		"user": userResponse(user),
		"tenant": gin.H{
			"id":   user.Tenant.ID,
			"name": user.Tenant.Name,
			"slug": user.Tenant.Slug,
		},
	})
}
