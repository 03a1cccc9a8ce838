package controllers

import (
	"time"

	"github.com/Govind-619/BillSphere/models"
	"github.com/Govind-619/BillSphere/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockUserWallet re-reads a user wallet inside tx, locking the row where the database supports it
func lockUserWallet(tx *gorm.DB, userID, userWalletID uint) (*models.UserWallet, error) {
	var uw models.UserWallet
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).First(&uw, userWalletID).Error
	if err != nil {
		return nil, utils.NotFoundError("Wallet not found", err)
	}
	return &uw, nil
}

// applyTransaction writes a ledger entry and moves the balance in the same DB transaction.
// A debit larger than the balance is refused.
func applyTransaction(tx *gorm.DB, userID uint, entry *models.Transaction) (*models.UserWallet, error) {
	if entry.Type != models.TransactionTypeCredit && entry.Type != models.TransactionTypeDebit {
		return nil, utils.UnprocessableError("type must be credit or debit", nil)
	}
	if err := utils.ValidateAmount(entry.Amount); err != nil {
		return nil, utils.UnprocessableError("Invalid amount", err)
	}

	uw, err := lockUserWallet(tx, userID, entry.UserWalletID)
	if err != nil {
		return nil, err
	}
	balance := uw.Balance.Add(entry.SignedAmount())
	if balance.IsNegative() {
		utils.LogDebug("Refusing debit of %s on user wallet %d with balance %s",
			utils.FormatMoney(entry.Amount), uw.ID, utils.FormatMoney(uw.Balance))
		return nil, utils.UnprocessableError("Insufficient balance", nil)
	}

	if entry.TransactionDate.IsZero() {
		entry.TransactionDate = time.Now()
	}
	if err := tx.Create(entry).Error; err != nil {
		return nil, utils.InternalError("Failed to create transaction", err)
	}
	if err := tx.Model(uw).Update("balance", balance).Error; err != nil {
		return nil, utils.InternalError("Failed to update balance", err)
	}
	uw.Balance = balance

	utils.AppMetrics.WalletTransaction(entry.Type)
	return uw, nil
}

// revertTransaction deletes a ledger entry and undoes its effect on the balance
func revertTransaction(tx *gorm.DB, userID uint, entry *models.Transaction) (*models.UserWallet, error) {
	uw, err := lockUserWallet(tx, userID, entry.UserWalletID)
	if err != nil {
		return nil, err
	}
	balance := uw.Balance.Sub(entry.SignedAmount())
	if balance.IsNegative() {
		return nil, utils.UnprocessableError("Removing this credit would make the balance negative", nil)
	}
	if err := tx.Delete(entry).Error; err != nil {
		return nil, utils.InternalError("Failed to delete transaction", err)
	}
	if err := tx.Model(uw).Update("balance", balance).Error; err != nil {
		return nil, utils.InternalError("Failed to update balance", err)
	}
	uw.Balance = balance
	return uw, nil
}

// recalculateBalance sets the balance to the sum of the wallet's ledger
func recalculateBalance(tx *gorm.DB, uw *models.UserWallet) (decimal.Decimal, error) {
	var txns []models.Transaction
	if err := tx.Where("user_wallet_id = ?", uw.ID).Find(&txns).Error; err != nil {
		return decimal.Zero, err
	}
	balance := models.SumTransactions(txns)
	if err := tx.Model(uw).Update("balance", balance).Error; err != nil {
		return decimal.Zero, err
	}
	uw.Balance = balance
	return balance, nil
}
