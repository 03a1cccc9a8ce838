package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/Govind-619/BillSphere/config"
	"github.com/Govind-619/BillSphere/models"
	"github.com/Govind-619/BillSphere/utils"
	"github.com/gin-gonic/gin"
	razorpay "github.com/razorpay/razorpay-go"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentGateway creates payment orders for wallet top-ups
type PaymentGateway interface {
	CreateOrder(amountPaise int64, currency, receipt string) (string, error)
}

type razorpayGateway struct {
	client *razorpay.Client
}

func (g *razorpayGateway) CreateOrder(amountPaise int64, currency, receipt string) (string, error) {
	order, err := g.client.Order.Create(map[string]interface{}{
		"amount":          amountPaise,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}, nil)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%v", order["id"]), nil
}

var paymentGateway PaymentGateway

// SetPaymentGateway replaces the gateway used by InitiateWalletTopup
func SetPaymentGateway(g PaymentGateway) {
	paymentGateway = g
}

func currentGateway() PaymentGateway {
	if paymentGateway != nil {
		return paymentGateway
	}
	return &razorpayGateway{client: razorpay.NewClient(config.AppConfig.RazorpayKey, config.AppConfig.RazorpaySecret)}
}

// RazorpaySignature is the HMAC-SHA256 Razorpay sends back for order|payment
func RazorpaySignature(orderID, paymentID, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(h.Sum(nil))
}

type TopupRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type VerifyTopupRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// InitiateWalletTopup creates a Razorpay order to add money to a user wallet
func InitiateWalletTopup(c *gin.Context) {
	utils.LogInfo("InitiateWalletTopup called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req TopupRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := utils.ValidateAmount(req.Amount); err != nil {
		utils.ValidationError(c, "Invalid amount", err.Error())
		return
	}

	uw, err := findUserWallet(config.DB, user.ID, id)
	if err != nil {
		utils.NotFound(c, "Wallet not found")
		return
	}

	// Razorpay expects amount in paise
	amountPaise := req.Amount.Shift(2).IntPart()
	receipt := fmt.Sprintf("wallet_topup_%d_%s", uw.ID, time.Now().Format("20060102150405"))
	currency := "INR"
	if uw.Wallet != nil && uw.Wallet.Currency != "" {
		currency = uw.Wallet.Currency
	}

	orderID, err := currentGateway().CreateOrder(amountPaise, currency, receipt)
	if err != nil {
		utils.LogError("Failed to create Razorpay order for user wallet %d: %v", uw.ID, err)
		utils.InternalServerError(c, "Failed to create Razorpay order", err.Error())
		return
	}

	order := models.WalletTopupOrder{
		UserID:          user.ID,
		UserWalletID:    uw.ID,
		RazorpayOrderID: orderID,
		Amount:          req.Amount,
		Status:          models.TopupStatusPending,
	}
	if err := config.DB.Create(&order).Error; err != nil {
		utils.LogError("Failed to record wallet topup order for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to record wallet topup order", err.Error())
		return
	}

	utils.LogInfo("Initiated top-up %s of %s for user wallet %d", orderID, utils.FormatMoney(req.Amount), uw.ID)
	utils.Created(c, "Wallet topup order created successfully", gin.H{
		"razorpay_order_id": orderID,
		"amount":            utils.FormatMoney(req.Amount),
		"amount_paise":      amountPaise,
		"currency":          currency,
		"key":               config.AppConfig.RazorpayKey,
		"user": gin.H{
			"name":  user.FullName(),
			"email": user.Email,
		},
		"user_wallet_id": uw.ID,
	})
}

// VerifyWalletTopup checks the Razorpay signature and credits the wallet
func VerifyWalletTopup(c *gin.Context) {
	utils.LogInfo("VerifyWalletTopup called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req VerifyTopupRequest
	if !bindJSON(c, &req) {
		return
	}

	expected := RazorpaySignature(req.RazorpayOrderID, req.RazorpayPaymentID, config.AppConfig.RazorpaySecret)
	if !hmac.Equal([]byte(expected), []byte(req.RazorpaySignature)) {
		utils.LogError("Payment verification failed for order %s", req.RazorpayOrderID)
		utils.BadRequest(c, "Payment verification failed", gin.H{"retry": true})
		return
	}

	var uw *models.UserWallet
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var order models.WalletTopupOrder
		err := tx.Where("razorpay_order_id = ? AND user_id = ?", req.RazorpayOrderID, user.ID).First(&order).Error
		if err != nil {
			return utils.NotFoundError("Top-up order not found", err)
		}
		if order.Status == models.TopupStatusCompleted {
			return utils.ConflictError("Top-up order already completed", nil)
		}

		entry := models.Transaction{
			UserWalletID: order.UserWalletID,
			Type:         models.TransactionTypeCredit,
			Amount:       order.Amount,
			Description:  "Wallet topup via Razorpay",
			Reference:    "TOPUP-" + req.RazorpayPaymentID,
		}
		if uw, err = applyTransaction(tx, user.ID, &entry); err != nil {
			return err
		}
		return tx.Model(&order).Update("status", models.TopupStatusCompleted).Error
	})
	if err != nil {
		utils.RespondWithError(c, "Failed to complete top-up", err)
		return
	}

	utils.LogInfo("Completed top-up %s for user %d", req.RazorpayOrderID, user.ID)
	utils.Success(c, "Money added to wallet successfully!", gin.H{
		"user_wallet_id": uw.ID,
		"balance":        utils.FormatMoney(uw.Balance),
	})
}
