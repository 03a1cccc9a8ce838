package controllers_test

import (
	"net/http"
	"testing"

	"github.com/Govind-619/BillSphere/config"
	"github.com/Govind-619/BillSphere/models"
	"github.com/Govind-619/BillSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCRUD(t *testing.T) {
	ws := newWorkspace(t)

	w := ws.do(t, ws.customer, http.MethodPost, "/categories", gin.H{"name": "Fiber"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ws.do(t, ws.owner, http.MethodPost, "/categories", gin.H{"name": "Fiber", "description": "Fiber to the home"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var category models.Category
	utils.DecodeData(t, w, &category)

	w = ws.do(t, ws.owner, http.MethodPost, "/categories", gin.H{"name": "fiber"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = ws.do(t, ws.customer, http.MethodGet, "/categories", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	product := &models.Product{TenantID: ws.tenant.ID, CategoryID: &category.ID, Name: "Fiber 50", Code: "F50", IsActive: true}
	require.NoError(t, config.DB.Create(product).Error)

	w = ws.do(t, ws.owner, http.MethodDelete, idPath("/categories/%d", category.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	require.NoError(t, config.DB.Delete(product).Error)
	w = ws.do(t, ws.owner, http.MethodDelete, idPath("/categories/%d", category.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProductLifecycle(t *testing.T) {
	ws := newWorkspace(t)

	body := gin.H{
		"name":            "Fiber 100",
		"code":            "fiber-100",
		"bandwidth_mbps":  100,
		"connection_type": "fiber",
		"attributes":      gin.H{"router": "included"},
	}
	w := ws.do(t, ws.owner, http.MethodPost, "/products", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var product models.Product
	utils.DecodeData(t, w, &product)
	assert.Equal(t, "FIBER-100", product.Code)
	assert.Equal(t, "included", product.Attributes["router"])

	w = ws.do(t, ws.owner, http.MethodPost, "/products", body)
	assert.Equal(t, http.StatusConflict, w.Code)

	body["code"] = "bad code!"
	w = ws.do(t, ws.owner, http.MethodPost, "/products", body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	body["code"] = "FIBER-200"
	body["category_id"] = 9999
	w = ws.do(t, ws.owner, http.MethodPost, "/products", body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = ws.do(t, ws.owner, http.MethodDelete, idPath("/products/%d", product.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = ws.do(t, ws.customer, http.MethodGet, idPath("/products/%d", product.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ws.do(t, ws.owner, http.MethodPatch, idPath("/products/%d/restore", product.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ws.do(t, ws.customer, http.MethodGet, idPath("/products/%d", product.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInactiveProductIsStoredInactive(t *testing.T) {
	ws := newWorkspace(t)
	w := ws.do(t, ws.owner, http.MethodPost, "/products", gin.H{"name": "Legacy DSL", "code": "DSL-10", "is_active": false})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var product models.Product
	utils.DecodeData(t, w, &product)

	var stored models.Product
	require.NoError(t, config.DB.First(&stored, product.ID).Error)
	assert.False(t, stored.IsActive)
}

func TestProductPrices(t *testing.T) {
	ws := newWorkspace(t)
	product := &models.Product{TenantID: ws.tenant.ID, Name: "Fiber 100", Code: "F100", IsActive: true}
	require.NoError(t, config.DB.Create(product).Error)
	path := idPath("/products/%d/prices", product.ID)

	w := ws.do(t, ws.owner, http.MethodPost, path, gin.H{"billing_cycle": "quarterly", "price": "450000"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var price models.ProductPrice
	utils.DecodeData(t, w, &price)
	assert.Equal(t, 3, price.TermMonths)
	assert.Equal(t, models.PriceStatusActive, price.Status)
	assert.Equal(t, "450000.00", utils.FormatMoney(price.Price))

	w = ws.do(t, ws.owner, http.MethodPost, path, gin.H{"billing_cycle": "quarterly", "price": "400000"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = ws.do(t, ws.owner, http.MethodPost, path, gin.H{"billing_cycle": "weekly", "price": "1000"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = ws.do(t, ws.owner, http.MethodPost, path, gin.H{"billing_cycle": "monthly", "price": "0"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = ws.do(t, ws.owner, http.MethodPatch, idPath("/prices/%d/status", price.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stored models.ProductPrice
	require.NoError(t, config.DB.First(&stored, price.ID).Error)
	assert.Equal(t, models.PriceStatusInactive, stored.Status)

	createSubscription(t, ws.tenant.ID, ws.customer.ID, price.ID, models.SubscriptionCancelled)
	w = ws.do(t, ws.owner, http.MethodDelete, idPath("/prices/%d", price.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = ws.do(t, ws.owner, http.MethodPost, path, gin.H{"billing_cycle": "annual", "price": "1500000", "term_months": 24})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var annual models.ProductPrice
	utils.DecodeData(t, w, &annual)
	assert.Equal(t, 24, annual.TermMonths)

	w = ws.do(t, ws.owner, http.MethodDelete, idPath("/prices/%d", annual.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCatalogIsTenantScoped(t *testing.T) {
	ws := newWorkspace(t)
	other := utils.CreateTestTenant(t, "Other Net")
	otherOwner := utils.CreateTestUser(t, other, "other_owner", models.RoleOwner)
	price := createPrice(t, ws.tenant.ID, "F100", models.BillingCycleMonthly, "150000")

	w := ws.do(t, otherOwner, http.MethodGet, idPath("/products/%d", price.ProductID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ws.do(t, otherOwner, http.MethodPatch, idPath("/prices/%d/status", price.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ws.do(t, otherOwner, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var products []models.Product
	utils.DecodeData(t, w, &products)
	assert.Empty(t, products)
}
