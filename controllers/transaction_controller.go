package controllers

import (
	"strings"
	"time"

	"github.com/Govind-619/BillSphere/config"
	"github.com/Govind-619/BillSphere/models"
	"github.com/Govind-619/BillSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionRequest records a credit or debit
type TransactionRequest struct {
	Type            string          `json:"type" binding:"required,oneof=credit debit"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description" binding:"max=255"`
	Reference       string          `json:"reference" binding:"max=100"`
	TransactionDate *time.Time      `json:"transaction_date"`
}

// ListTransactions lists the ledger of one of the caller's wallets
func ListTransactions(c *gin.Context) {
	utils.LogInfo("ListTransactions called")
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
	p := utils.NewPagination(c)

	query := config.DB.Model(&models.Transaction{}).Where("user_wallet_id = ?", uw.ID)
	if txType := c.Query("type"); txType != "" {
		if txType != models.TransactionTypeCredit && txType != models.TransactionTypeDebit {
			utils.BadRequest(c, "Invalid type filter", txType)
			return
		}
		query = query.Where("type = ?", txType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count transactions", err.Error())
		return
	}
	var txns []models.Transaction
	if err := query.Order("transaction_date desc, id desc").Scopes(p.Scope).Find(&txns).Error; err != nil {
		utils.LogError("Failed to fetch transactions for user wallet %d: %v", uw.ID, err)
		utils.InternalServerError(c, "Failed to fetch transactions", err.Error())
		return
	}
	utils.SuccessWithPagination(c, "Transactions retrieved successfully", txns, total, p)
}

// CreateTransaction records a credit or debit and moves the balance
func CreateTransaction(c *gin.Context) {
	utils.LogInfo("CreateTransaction called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req TransactionRequest
	if !bindJSON(c, &req) {
		return
	}

	entry := models.Transaction{
		UserWalletID: id,
		Type:         req.Type,
		Amount:       req.Amount,
		Description:  strings.TrimSpace(req.Description),
		Reference:    strings.TrimSpace(req.Reference),
	}
	if req.TransactionDate != nil {
		entry.TransactionDate = *req.TransactionDate
	}

	var uw *models.UserWallet
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		uw, err = applyTransaction(tx, user.ID, &entry)
		return err
	})
	if err != nil {
		utils.RespondWithError(c, "Failed to create transaction", err)
		return
	}

	utils.LogInfo("User %d recorded %s of %s on user wallet %d", user.ID, entry.Type, utils.FormatMoney(entry.Amount), uw.ID)
	utils.Created(c, "Transaction created successfully", gin.H{
		"transaction": entry,
		"balance":     utils.FormatMoney(uw.Balance),
	})
}

// DeleteTransaction removes a ledger entry and reverts its effect on the balance
func DeleteTransaction(c *gin.Context) {
	utils.LogInfo("DeleteTransaction called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var uw *models.UserWallet
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var entry models.Transaction
		err := tx.Joins("JOIN user_wallets ON user_wallets.id = transactions.user_wallet_id").
			Where("user_wallets.user_id = ?", user.ID).
			First(&entry, "transactions.id = ?", id).Error
		if err != nil {
			return utils.NotFoundError("Transaction not found", err)
		}
		uw, err = revertTransaction(tx, user.ID, &entry)
		return err
	})
	if err != nil {
		utils.RespondWithError(c, "Failed to delete transaction", err)
		return
	}

	utils.LogInfo("User %d deleted transaction %d", user.ID, id)
	utils.Success(c, "Transaction deleted successfully", gin.H{
		"balance": utils.FormatMoney(uw.Balance),
	})
}
