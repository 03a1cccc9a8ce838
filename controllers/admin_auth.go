package controllers

import (
	"strings"
	"time"

	"github.com/Govind-619/BillSphere/config"
	"github.com/Govind-619/BillSphere/models"
	"github.com/Govind-619/BillSphere/utils"
	"github.com/gin-gonic/gin"
)

// AdminLoginRequest represents the admin login request
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin handles platform admin authentication
func AdminLogin(c *gin.Context) {
	utils.LogInfo("AdminLogin called")
	var req AdminLoginRequest
	if !bindJSON(c, &req) {
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var admin models.Admin
	if err := config.DB.Where("email = ?", email).First(&admin).Error; err != nil {
		utils.LogError("Admin not found for email: %s: %v", email, err)
		utils.Unauthorized(c, utils.ErrInvalidCredentials)
		return
	}
	if !admin.IsActive {
		utils.LogError("Inactive admin account attempted login: %s", admin.Email)
		utils.Forbidden(c, "Admin account is inactive")
		return
	}
	if !utils.CheckPassword(req.Password, admin.Password) {
		utils.LogError("Invalid password for admin: %s", admin.Email)
		utils.Unauthorized(c, utils.ErrInvalidCredentials)
		return
	}

	if err := config.DB.Model(&admin).Update("last_login", time.Now()).Error; err != nil {
		utils.LogError("Failed to update last login for admin: %s: %v", admin.Email, err)
	}

	token, err := utils.GenerateAdminToken(&admin)
	if err != nil {
		utils.LogError("Failed to sign token for admin: %s: %v", admin.Email, err)
		utils.InternalServerError(c, "Failed to generate token", err.Error())
		return
	}

	utils.LogInfo("Admin login successful: %s", admin.Email)
	utils.Success(c, "Login successful", gin.H{
		"token": token,
		"admin": gin.H{
			"id":         admin.ID,
			"email":      admin.Email,
			"first_name": admin.FirstName,
			"last_name":  admin.LastName,
		},
	})
}

// AdminLogout blacklists the admin token
func AdminLogout(c *gin.Context) {
	utils.LogInfo("AdminLogout called")
	blacklistBearer(c)
	utils.Success(c, "Logged out successfully", nil)
}

// CreateSampleAdmin makes sure the configured platform admin exists
func CreateSampleAdmin() error {
	utils.LogInfo("CreateSampleAdmin called")
	cfg := config.AppConfig
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		utils.LogWarn("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping sample admin")
		return nil
	}

	hashedPassword, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		utils.LogError("Failed to hash admin password: %v", err)
		return err
	}

	email := strings.ToLower(cfg.AdminEmail)
	admin := models.Admin{
		Email:     email,
		Password:  hashedPassword,
		FirstName: "Platform",
		LastName:  "Admin",
		IsActive:  true,
	}
	if err := config.DB.FirstOrCreate(&admin, models.Admin{Email: email}).Error; err != nil {
		utils.LogError("Failed to create sample admin: %v", err)
		return err
	}
	utils.LogInfo("Successfully created/updated sample admin: %s", admin.Email)
	return nil
}
