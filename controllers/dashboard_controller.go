package controllers

import (
	"github.com/Govind-619/BillSphere/config"
	"github.com/Govind-619/BillSphere/models"
	"github.com/Govind-619/BillSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type statusCount struct {
	Status string
	Count  int64
}

// DashboardStats is the tenant overview returned by GetDashboard
type DashboardStats struct {
	Subscriptions map[string]int64 `json:"subscriptions"`
	Offers        map[string]int64 `json:"offers"`
	Products      int64            `json:"products"`
	MRR           string           `json:"mrr"`
	WalletBalance string           `json:"wallet_balance"`
}

func countByStatus(db *gorm.DB, model interface{}, tenantID uint) (map[string]int64, error) {
	var rows []statusCount
	err := db.Model(model).Scopes(utils.ForTenant(tenantID)).
		Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.Count
	}
	return out, nil
}

// monthlyRecurringRevenue sums the monthly equivalent of every active subscription's price
func monthlyRecurringRevenue(db *gorm.DB, tenantID uint) (decimal.Decimal, error) {
	var subs []models.Subscription
	err := db.Scopes(utils.ForTenant(tenantID)).
		Where("status = ?", models.SubscriptionActive).
		Preload("ProductPrice").Find(&subs).Error
	if err != nil {
		return decimal.Zero, err
	}
	mrr := decimal.Zero
	for _, s := range subs {
		if s.ProductPrice != nil {
			mrr = mrr.Add(s.ProductPrice.MonthlyEquivalent())
		}
	}
	return mrr, nil
}

// BuildDashboard collects the overview numbers for user
func BuildDashboard(db *gorm.DB, user models.User) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.Subscriptions, err = countByStatus(db, &models.Subscription{}, user.TenantID); err != nil {
		return nil, err
	}
	for _, s := range models.AllSubscriptionStatuses {
		if _, ok := stats.Subscriptions[string(s)]; !ok {
			stats.Subscriptions[string(s)] = 0
		}
	}
	if stats.Offers, err = countByStatus(db, &models.Offer{}, user.TenantID); err != nil {
		return nil, err
	}
	for _, s := range models.AllOfferStatuses {
		if _, ok := stats.Offers[string(s)]; !ok {
			stats.Offers[string(s)] = 0
		}
	}
	if err = db.Model(&models.Product{}).Scopes(utils.ForTenant(user.TenantID)).Count(&stats.Products).Error; err != nil {
		return nil, err
	}

	mrr, err := monthlyRecurringRevenue(db, user.TenantID)
	if err != nil {
		return nil, err
	}
	stats.MRR = utils.FormatMoney(mrr)

	var wallets []models.UserWallet
	if err = db.Where("user_id = ?", user.ID).Find(&wallets).Error; err != nil {
		return nil, err
	}
	balances := make([]decimal.Decimal, len(wallets))
	for i, w := range wallets {
		balances[i] = w.Balance
	}
	stats.WalletBalance = utils.FormatMoney(utils.SumDecimals(balances))
	return stats, nil
}

// GetDashboard returns the tenant overview
func GetDashboard(c *gin.Context) {
	utils.LogInfo("GetDashboard called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	stats, err := BuildDashboard(config.DB, user)
	if err != nil {
		utils.LogError("Failed to build dashboard for tenant %d: %v", user.TenantID, err)
		utils.InternalServerError(c, "Failed to load dashboard", err.Error())
		return
	}
	utils.Success(c, "Dashboard retrieved successfully", stats)
}
