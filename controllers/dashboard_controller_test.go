package controllers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/Govind-619/BillSphere/config"
	"github.com/Govind-619/BillSphere/controllers"
	"github.com/Govind-619/BillSphere/models"
	"github.com/Govind-619/BillSphere/routes"
	"github.com/Govind-619/BillSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard(t *testing.T) {
	ws := newWorkspace(t)
	annual := createPrice(t, ws.tenant.ID, "F100", models.BillingCycleAnnual, "1200000")
	monthly := createPrice(t, ws.tenant.ID, "F50", models.BillingCycleMonthly, "150000")
	createSubscription(t, ws.tenant.ID, ws.customer.ID, annual.ID, models.SubscriptionActive)
	createSubscription(t, ws.tenant.ID, ws.customer.ID, monthly.ID, models.SubscriptionActive)
	createSubscription(t, ws.tenant.ID, ws.customer.ID, monthly.ID, models.SubscriptionPendingApproval)
	createSubscription(t, ws.tenant.ID, ws.customer.ID, monthly.ID, models.SubscriptionSuspended)

	other := utils.CreateTestTenant(t, "Other Net")
	otherPrice := createPrice(t, other.ID, "X1", models.BillingCycleMonthly, "999999")
	otherCustomer := utils.CreateTestUser(t, other, "other_customer", models.RoleCustomer)
	createSubscription(t, other.ID, otherCustomer.ID, otherPrice.ID, models.SubscriptionActive)

	w := ws.do(t, ws.owner, http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var stats controllers.DashboardStats
	utils.DecodeData(t, w, &stats)
	assert.Equal(t, "250000.00", stats.MRR)
	assert.Equal(t, int64(2), stats.Subscriptions["active"])
	assert.Equal(t, int64(1), stats.Subscriptions["pending_approval"])
	assert.Equal(t, int64(1), stats.Subscriptions["suspended"])
	assert.Equal(t, int64(0), stats.Subscriptions["expired"])
	assert.Len(t, stats.Subscriptions, len(models.AllSubscriptionStatuses))
	assert.Equal(t, int64(0), stats.Offers["pending"])
	assert.Equal(t, int64(2), stats.Products)
	assert.Equal(t, "0.00", stats.WalletBalance)
}

func TestSubscriptionReports(t *testing.T) {
	ws := newWorkspace(t)
	price := createPrice(t, ws.tenant.ID, "F100", models.BillingCycleMonthly, "150000")
	createSubscription(t, ws.tenant.ID, ws.customer.ID, price.ID, models.SubscriptionActive)

	w := ws.do(t, ws.sales, http.MethodGet, "/reports/subscriptions/excel", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ws.do(t, ws.owner, http.MethodGet, "/reports/subscriptions/excel?period=year", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ws.do(t, ws.owner, http.MethodGet, "/reports/subscriptions/excel?period=all", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "subscription_report_all.xlsx")
	assert.True(t, strings.HasPrefix(w.Body.String(), "PK"))

	w = ws.do(t, ws.owner, http.MethodGet, "/reports/subscriptions/pdf", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "subscription_report_month.pdf")
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestSeedDemoData(t *testing.T) {
	utils.SetupTestDB(t)
	require.NoError(t, controllers.SeedDemoData(config.DB))
	require.NoError(t, controllers.SeedDemoData(config.DB))

	var tenants int64
	config.DB.Model(&models.Tenant{}).Count(&tenants)
	assert.Equal(t, int64(1), tenants)

	var users, prices, subs, offers int64
	config.DB.Model(&models.User{}).Count(&users)
	config.DB.Model(&models.ProductPrice{}).Count(&prices)
	config.DB.Model(&models.Subscription{}).Count(&subs)
	config.DB.Model(&models.Offer{}).Count(&offers)
	assert.Equal(t, int64(4), users)
	assert.Equal(t, int64(9), prices)
	assert.Equal(t, int64(5), subs)
	assert.Equal(t, int64(3), offers)

	var owner models.User
	require.NoError(t, config.DB.Where("username = ?", "demo_owner").First(&owner).Error)
	var wallets []models.UserWallet
	require.NoError(t, config.DB.Where("user_id = ?", owner.ID).Find(&wallets).Error)
	require.Len(t, wallets, 2)
	for _, uw := range wallets {
		var txns []models.Transaction
		require.NoError(t, config.DB.Where("user_wallet_id = ?", uw.ID).Find(&txns).Error)
		assert.True(t, models.SumTransactions(txns).Equal(uw.Balance))
	}

	w := utils.PerformRequest(routes.SetupRouter(), http.MethodPost, "/v1/login", gin.H{
		"email": "demo_owner@demo.billsphere.local", "password": controllers.DemoPassword,
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)
}
