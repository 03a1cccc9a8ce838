package controllers_test

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/Govind-619/BillSphere/config"
	"github.com/Govind-619/BillSphere/models"
	"github.com/Govind-619/BillSphere/routes"
	"github.com/Govind-619/BillSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// workspace is one tenant with a user per role
type workspace struct {
	router   *gin.Engine
	tenant   *models.Tenant
	owner    *models.User
	sales    *models.User
	customer *models.User
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	utils.SetupTestDB(t)
	tenant := utils.CreateTestTenant(t, "Acme Net")
	return &workspace{
		router:   routes.SetupRouter(),
		tenant:   tenant,
		owner:    utils.CreateTestUser(t, tenant, "owner", models.RoleOwner),
		sales:    utils.CreateTestUser(t, tenant, "sales", models.RoleSales),
		customer: utils.CreateTestUser(t, tenant, "customer", models.RoleCustomer),
	}
}

func (w *workspace) do(t *testing.T, user *models.User, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	token := ""
	if user != nil {
		token = utils.TestToken(t, user)
	}
	return utils.PerformRequest(w.router, method, "/v1"+path, body, token)
}

// createPrice stores an active product with one price plan for tenant
func createPrice(t *testing.T, tenantID uint, code string, cycle models.BillingCycle, amount string) *models.ProductPrice {
	t.Helper()
	product := &models.Product{TenantID: tenantID, Name: "Plan " + code, Code: code, IsActive: true}
	require.NoError(t, config.DB.Create(product).Error)
	price := &models.ProductPrice{
		ProductID:    product.ID,
		BillingCycle: cycle,
		Price:        decimal.RequireFromString(amount),
		TermMonths:   cycle.Months(),
		Status:       models.PriceStatusActive,
	}
	require.NoError(t, config.DB.Create(price).Error)
	return price
}

// createSubscription stores a subscription in status for customer
func createSubscription(t *testing.T, tenantID, userID, priceID uint, status models.SubscriptionStatus) *models.Subscription {
	t.Helper()
	sub := &models.Subscription{TenantID: tenantID, UserID: userID, ProductPriceID: priceID, Status: status}
	require.NoError(t, config.DB.Create(sub).Error)
	return sub
}

func idPath(format string, ids ...uint) string {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return fmt.Sprintf(format, args...)
}
