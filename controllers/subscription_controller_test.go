package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/Govind-619/BillSphere/config"
	"github.com/Govind-619/BillSphere/models"
	"github.com/Govind-619/BillSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionLifecycle(t *testing.T) {
	ws := newWorkspace(t)
	price := createPrice(t, ws.tenant.ID, "F100", models.BillingCycleQuarterly, "450000")

	w := ws.do(t, ws.customer, http.MethodPost, "/subscriptions", gin.H{"product_price_id": price.ID, "notes": "Install on Monday"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var sub models.Subscription
	utils.DecodeData(t, w, &sub)
	assert.Equal(t, models.SubscriptionPendingApproval, sub.Status)
	assert.Equal(t, ws.customer.ID, sub.UserID)
	path := idPath("/subscriptions/%d", sub.ID)

	w = ws.do(t, ws.customer, http.MethodPost, path+"/approve", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ws.do(t, ws.owner, http.MethodPost, path+"/activate", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = ws.do(t, ws.owner, http.MethodPost, path+"/approve", gin.H{"notes": "Coverage confirmed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	utils.DecodeData(t, w, &sub)
	assert.Equal(t, models.SubscriptionApproved, sub.Status)
	require.NotNil(t, sub.ApprovedBy)
	assert.Equal(t, ws.owner.ID, *sub.ApprovedBy)
	assert.NotNil(t, sub.ApprovedAt)
	assert.Equal(t, "Coverage confirmed", sub.ApprovalNotes)

	w = ws.do(t, ws.owner, http.MethodPost, path+"/activate", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	utils.DecodeData(t, w, &sub)
	assert.Equal(t, models.SubscriptionActive, sub.Status)
	require.NotNil(t, sub.StartsAt)
	require.NotNil(t, sub.EndsAt)
	assert.WithinDuration(t, sub.StartsAt.AddDate(0, 3, 0), *sub.EndsAt, 2*time.Hour)

	w = ws.do(t, ws.owner, http.MethodPost, path+"/resume", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = ws.do(t, ws.owner, http.MethodPost, path+"/suspend", gin.H{"notes": "Unpaid invoice"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	utils.DecodeData(t, w, &sub)
	assert.Equal(t, models.SubscriptionSuspended, sub.Status)
	assert.NotNil(t, sub.SuspendedAt)

	w = ws.do(t, ws.owner, http.MethodPost, path+"/resume", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	utils.DecodeData(t, w, &sub)
	assert.Equal(t, models.SubscriptionActive, sub.Status)
	assert.Nil(t, sub.SuspendedAt)

	w = ws.do(t, ws.owner, http.MethodPost, path+"/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	utils.DecodeData(t, w, &sub)
	assert.Equal(t, models.SubscriptionCancelled, sub.Status)
	assert.NotNil(t, sub.CancelledAt)

	w = ws.do(t, ws.owner, http.MethodPost, path+"/approve", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRejectRequiresNotes(t *testing.T) {
	ws := newWorkspace(t)
	price := createPrice(t, ws.tenant.ID, "F100", models.BillingCycleMonthly, "150000")
	sub := createSubscription(t, ws.tenant.ID, ws.customer.ID, price.ID, models.SubscriptionPendingApproval)
	path := idPath("/subscriptions/%d/reject", sub.ID)

	w := ws.do(t, ws.owner, http.MethodPost, path, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = ws.do(t, ws.owner, http.MethodPost, path, gin.H{"notes": "Outside coverage area"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.Subscription
	require.NoError(t, config.DB.First(&stored, sub.ID).Error)
	assert.Equal(t, models.SubscriptionRejected, stored.Status)
	assert.Equal(t, "Outside coverage area", stored.ApprovalNotes)
	assert.NotNil(t, stored.RejectedAt)
}

func TestStaffSubscribesCustomer(t *testing.T) {
	ws := newWorkspace(t)
	price := createPrice(t, ws.tenant.ID, "F100", models.BillingCycleMonthly, "150000")

	w := ws.do(t, ws.sales, http.MethodPost, "/subscriptions", gin.H{"product_price_id": price.ID, "user_id": ws.customer.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var sub models.Subscription
	utils.DecodeData(t, w, &sub)
	assert.Equal(t, ws.customer.ID, sub.UserID)

	other := utils.CreateTestTenant(t, "Other Net")
	outsider := utils.CreateTestUser(t, other, "outsider", models.RoleCustomer)
	w = ws.do(t, ws.sales, http.MethodPost, "/subscriptions", gin.H{"product_price_id": price.ID, "user_id": outsider.ID})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubscriptionRequiresAvailablePrice(t *testing.T) {
	ws := newWorkspace(t)
	price := createPrice(t, ws.tenant.ID, "F100", models.BillingCycleMonthly, "150000")
	require.NoError(t, config.DB.Model(price).Update("status", models.PriceStatusInactive).Error)

	w := ws.do(t, ws.customer, http.MethodPost, "/subscriptions", gin.H{"product_price_id": price.ID})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = ws.do(t, ws.customer, http.MethodPost, "/subscriptions", gin.H{"product_price_id": 4242})
	assert.Equal(t, http.StatusNotFound, w.Code)

	other := utils.CreateTestTenant(t, "Other Net")
	foreign := createPrice(t, other.ID, "F100", models.BillingCycleMonthly, "99000")
	w = ws.do(t, ws.customer, http.MethodPost, "/subscriptions", gin.H{"product_price_id": foreign.ID})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCustomersOnlySeeTheirOwnSubscriptions(t *testing.T) {
	ws := newWorkspace(t)
	neighbour := utils.CreateTestUser(t, ws.tenant, "neighbour", models.RoleCustomer)
	price := createPrice(t, ws.tenant.ID, "F100", models.BillingCycleMonthly, "150000")
	mine := createSubscription(t, ws.tenant.ID, ws.customer.ID, price.ID, models.SubscriptionActive)
	createSubscription(t, ws.tenant.ID, neighbour.ID, price.ID, models.SubscriptionActive)

	w := ws.do(t, ws.customer, http.MethodGet, "/subscriptions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var subs []models.Subscription
	utils.DecodeData(t, w, &subs)
	require.Len(t, subs, 1)
	assert.Equal(t, mine.ID, subs[0].ID)

	w = ws.do(t, neighbour, http.MethodGet, idPath("/subscriptions/%d", mine.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ws.do(t, ws.sales, http.MethodGet, "/subscriptions?status=active", nil)
	require.Equal(t, http.StatusOK, w.Code)
	utils.DecodeData(t, w, &subs)
	assert.Len(t, subs, 2)

	w = ws.do(t, ws.sales, http.MethodGet, "/subscriptions?status=paused", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	other := utils.CreateTestTenant(t, "Other Net")
	otherOwner := utils.CreateTestUser(t, other, "other_owner", models.RoleOwner)
	w = ws.do(t, otherOwner, http.MethodGet, idPath("/subscriptions/%d", mine.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = ws.do(t, otherOwner, http.MethodPost, idPath("/subscriptions/%d/suspend", mine.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExpireDueSubscriptions(t *testing.T) {
	ws := newWorkspace(t)
	price := createPrice(t, ws.tenant.ID, "F100", models.BillingCycleMonthly, "150000")

	lapsed := createSubscription(t, ws.tenant.ID, ws.customer.ID, price.ID, models.SubscriptionActive)
	started := time.Now().AddDate(-1, -1, 0)
	ended := time.Now().AddDate(-1, 0, 0)
	require.NoError(t, config.DB.Model(lapsed).Updates(map[string]interface{}{"starts_at": started, "ends_at": ended}).Error)

	running := createSubscription(t, ws.tenant.ID, ws.customer.ID, price.ID, models.SubscriptionActive)
	future := time.Now().AddDate(1, 0, 0)
	require.NoError(t, config.DB.Model(running).Update("ends_at", future).Error)

	w := ws.do(t, ws.sales, http.MethodPost, "/subscriptions/expire-due", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ws.do(t, ws.owner, http.MethodPost, "/subscriptions/expire-due", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var data struct {
		Expired int `json:"expired"`
	}
	utils.DecodeData(t, w, &data)
	assert.Equal(t, 1, data.Expired)

	var stored models.Subscription
	require.NoError(t, config.DB.First(&stored, lapsed.ID).Error)
	assert.Equal(t, models.SubscriptionExpired, stored.Status)
	assert.NotNil(t, stored.ExpiredAt)
	require.NoError(t, config.DB.First(&stored, running.ID).Error)
	assert.Equal(t, models.SubscriptionActive, stored.Status)
}

func TestDeleteSubscription(t *testing.T) {
	ws := newWorkspace(t)
	price := createPrice(t, ws.tenant.ID, "F100", models.BillingCycleMonthly, "150000")
	sub := createSubscription(t, ws.tenant.ID, ws.customer.ID, price.ID, models.SubscriptionRejected)

	w := ws.do(t, ws.customer, http.MethodDelete, idPath("/subscriptions/%d", sub.ID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ws.do(t, ws.owner, http.MethodDelete, idPath("/subscriptions/%d", sub.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = ws.do(t, ws.owner, http.MethodGet, idPath("/subscriptions/%d", sub.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
