package controllers

import (
	"github.com/Govind-619/BillSphere/config"
	"github.com/Govind-619/BillSphere/models"
	"github.com/Govind-619/BillSphere/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AttachWalletRequest struct {
	WalletID uint `json:"wallet_id" binding:"required"`
}

func findUserWallet(db *gorm.DB, userID, id uint) (*models.UserWallet, error) {
	var uw models.UserWallet
	if err := db.Preload("Wallet").Where("user_id = ?", userID).First(&uw, id).Error; err != nil {
		return nil, err
	}
	return &uw, nil
}

// ListUserWallets lists the caller's wallets with balances
func ListUserWallets(c *gin.Context) {
	utils.LogInfo("ListUserWallets called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var wallets []models.UserWallet
	if err := config.DB.Preload("Wallet").Where("user_id = ?", user.ID).Order("id").Find(&wallets).Error; err != nil {
		utils.LogError("Failed to fetch user wallets for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch wallets", err.Error())
		return
	}
	utils.Success(c, "Wallets retrieved successfully", wallets)
}

// AttachWallet opens a zero balance for the caller in a tenant wallet
func AttachWallet(c *gin.Context) {
	utils.LogInfo("AttachWallet called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req AttachWalletRequest
	if !bindJSON(c, &req) {
		return
	}

	var wallet models.Wallet
	if err := config.DB.Scopes(utils.ForTenant(user.TenantID)).First(&wallet, req.WalletID).Error; err != nil {
		utils.NotFound(c, "Wallet not found")
		return
	}

	var count int64
	config.DB.Model(&models.UserWallet{}).Where("user_id = ? AND wallet_id = ?", user.ID, wallet.ID).Count(&count)
	if count > 0 {
		utils.Conflict(c, "Wallet already attached", nil)
		return
	}

	uw := models.UserWallet{UserID: user.ID, WalletID: wallet.ID}
	if err := config.DB.Create(&uw).Error; err != nil {
		utils.LogError("Failed to attach wallet %d for user %d: %v", wallet.ID, user.ID, err)
		utils.InternalServerError(c, "Failed to attach wallet", err.Error())
		return
	}
	uw.Wallet = &wallet

	utils.LogInfo("User %d attached wallet %d", user.ID, wallet.ID)
	utils.Created(c, "Wallet attached successfully", uw)
}

// GetUserWallet shows one of the caller's wallets with its latest transactions
func GetUserWallet(c *gin.Context) {
	utils.LogInfo("GetUserWallet called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	uw, err := findUserWallet(config.DB, user.ID, id)
	if err != nil {
		utils.NotFound(c, "Wallet not found")
		return
	}

	var recent []models.Transaction
	config.DB.Where("user_wallet_id = ?", uw.ID).
		Order("transaction_date desc, id desc").Limit(10).Find(&recent)

	utils.Success(c, "Wallet retrieved successfully", gin.H{
		"wallet":              uw,
		"recent_transactions": recent,
	})
}

// DetachWallet removes one of the caller's wallets; only empty wallets can go
func DetachWallet(c *gin.Context) {
	utils.LogInfo("DetachWallet called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	uw, err := findUserWallet(config.DB, user.ID, id)
	if err != nil {
		utils.NotFound(c, "Wallet not found")
		return
	}
	if !uw.Balance.IsZero() {
		utils.ValidationError(c, "Only wallets with a zero balance can be removed", gin.H{"balance": utils.FormatMoney(uw.Balance)})
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_wallet_id = ?", uw.ID).Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.UserWallet{}, uw.ID).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to remove wallet", err.Error())
		return
	}
	utils.LogInfo("User %d detached user wallet %d", user.ID, uw.ID)
	utils.Success(c, "Wallet removed successfully", nil)
}

// RecalculateWalletBalance rebuilds a balance from its ledger
func RecalculateWalletBalance(c *gin.Context) {
	utils.LogInfo("RecalculateWalletBalance called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	uw, err := findUserWallet(config.DB, user.ID, id)
	if err != nil {
		utils.NotFound(c, "Wallet not found")
		return
	}
	previous := uw.Balance

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		_, err := recalculateBalance(tx, uw)
		return err
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to recalculate balance", err.Error())
		return
	}
	if !previous.Equal(uw.Balance) {
		utils.LogWarn("User wallet %d balance corrected from %s to %s",
			uw.ID, utils.FormatMoney(previous), utils.FormatMoney(uw.Balance))
	}
	utils.Success(c, "Balance recalculated successfully", gin.H{
		"wallet":           uw,
		"previous_balance": utils.FormatMoney(previous),
		"balance":          utils.FormatMoney(uw.Balance),
	})
}
