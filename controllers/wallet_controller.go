package controllers

import (
	"strings"

	"github.com/Govind-619/BillSphere/config"
	"github.com/Govind-619/BillSphere/models"
	"github.com/Govind-619/BillSphere/utils"
	"github.com/gin-gonic/gin"
)

// WalletRequest creates a named money container
type WalletRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"max=500"`
	Currency    string `json:"currency" binding:"omitempty,len=3"`
}

// ListWallets lists the tenant's wallets
func ListWallets(c *gin.Context) {
	utils.LogInfo("ListWallets called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var wallets []models.Wallet
	if err := config.DB.Scopes(utils.ForTenant(user.TenantID)).Order("name").Find(&wallets).Error; err != nil {
		utils.LogError("Failed to fetch wallets: %v", err)
		utils.InternalServerError(c, "Failed to fetch wallets", err.Error())
		return
	}
	utils.Success(c, "Wallets retrieved successfully", wallets)
}

// CreateWallet creates a wallet in the caller's tenant
func CreateWallet(c *gin.Context) {
	utils.LogInfo("CreateWallet called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req WalletRequest
	if !bindJSON(c, &req) {
		return
	}
	name := strings.TrimSpace(req.Name)

	var count int64
	config.DB.Model(&models.Wallet{}).Scopes(utils.ForTenant(user.TenantID)).
		Where("LOWER(name) = ?", strings.ToLower(name)).Count(&count)
	if count > 0 {
		utils.Conflict(c, "A wallet with this name already exists", nil)
		return
	}

	wallet := models.Wallet{
		TenantID:    user.TenantID,
		Name:        name,
		Description: req.Description,
		Currency:    strings.ToUpper(req.Currency),
	}
	if wallet.Currency == "" {
		wallet.Currency = "IDR"
	}
	if err := config.DB.Create(&wallet).Error; err != nil {
		utils.LogError("Failed to create wallet: %v", err)
		utils.InternalServerError(c, "Failed to create wallet", err.Error())
		return
	}
	utils.LogInfo("Wallet %q created in tenant %d", wallet.Name, wallet.TenantID)
	utils.Created(c, "Wallet created successfully", wallet)
}
