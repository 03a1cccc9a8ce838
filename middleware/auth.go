package middleware

import (
	"strings"

	"github.com/Govind-619/BillSphere/config"
	"github.com/Govind-619/BillSphere/models"
	"github.com/Govind-619/BillSphere/utils"
	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middlewares
const (
	UserKey  = "user"
	AdminKey = "admin"
)

// bearerToken extracts the token from the Authorization header
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}

func isBlacklisted(token string) bool {
	var count int64
	if err := config.DB.Model(&models.BlacklistedToken{}).Where("token = ?", token).Count(&count).Error; err != nil {
		utils.LogError("Failed to check token blacklist: %v", err)
		return true
	}
	return count > 0
}

// AuthMiddleware authenticates tenant users
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			utils.LogDebug("Missing or malformed Authorization header")
			utils.Unauthorized(c, utils.ErrInvalidToken)
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.LogDebug("Invalid token: %v", err)
			utils.Unauthorized(c, utils.ErrInvalidToken)
			c.Abort()
			return
		}

		userID, ok := utils.ClaimUint(claims, "user_id")
		if !ok {
			utils.Unauthorized(c, utils.ErrInvalidToken)
			c.Abort()
			return
		}

		if isBlacklisted(tokenString) {
			utils.LogDebug("Blacklisted token used by user %d", userID)
			utils.Unauthorized(c, utils.ErrInvalidToken)
			c.Abort()
			return
		}

		var user models.User
		if err := config.DB.Preload("Tenant").First(&user, userID).Error; err != nil {
			utils.LogError("User not found: %v", err)
			utils.Unauthorized(c, "User not found")
			c.Abort()
			return
		}

		if user.IsBlocked {
			utils.LogWarn("Blocked user attempted access: %d", userID)
			utils.Forbidden(c, utils.ErrUserBlocked)
			c.Abort()
			return
		}

		if !user.Tenant.IsActive {
			utils.LogWarn("User %d of inactive tenant %d attempted access", userID, user.TenantID)
			utils.Forbidden(c, utils.ErrTenantInactive)
			c.Abort()
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}

// RequirePermission aborts with 403 unless the authenticated user's role grants p
func RequirePermission(p models.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			utils.Unauthorized(c, "User not found in context")
			c.Abort()
			return
		}
		if !user.Role.Can(p) {
			utils.LogWarn("User %d (%s) denied %s", user.ID, user.Role, p)
			utils.Forbidden(c, utils.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user stored by AuthMiddleware
func CurrentUser(c *gin.Context) (models.User, bool) {
	val, exists := c.Get(UserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := val.(models.User)
	return user, ok
}

// AdminAuthMiddleware authenticates platform admins
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			utils.LogDebug("Missing admin Authorization header")
			utils.Unauthorized(c, utils.ErrInvalidToken)
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.LogDebug("Invalid admin token: %v", err)
			utils.Unauthorized(c, utils.ErrInvalidToken)
			c.Abort()
			return
		}

		adminID, ok := utils.ClaimUint(claims, "admin_id")
		if !ok {
			utils.LogDebug("Admin ID not found in token claims")
			utils.Unauthorized(c, utils.ErrInvalidToken)
			c.Abort()
			return
		}

		if isBlacklisted(tokenString) {
			utils.Unauthorized(c, utils.ErrInvalidToken)
			c.Abort()
			return
		}

		var admin models.Admin
		if err := config.DB.First(&admin, adminID).Error; err != nil {
			utils.LogError("Admin not found: %v", err)
			utils.Unauthorized(c, "Admin not found")
			c.Abort()
			return
		}

		if !admin.IsActive {
			utils.LogWarn("Inactive admin attempted access: %d", admin.ID)
			utils.Forbidden(c, "Admin account is inactive")
			c.Abort()
			return
		}

		c.Set(AdminKey, admin)
		c.Next()
	}
}
