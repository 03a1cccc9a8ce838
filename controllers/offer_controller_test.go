package controllers_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/Govind-619/BillSphere/config"
	"github.com/Govind-619/BillSphere/models"
	"github.com/Govind-619/BillSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfferToSubscription(t *testing.T) {
	ws := newWorkspace(t)
	price := createPrice(t, ws.tenant.ID, "F100", models.BillingCycleMonthly, "150000")

	w := ws.do(t, ws.customer, http.MethodPost, "/offers", gin.H{"user_id": ws.customer.ID, "product_price_id": price.ID})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ws.do(t, ws.sales, http.MethodPost, "/offers", gin.H{
		"user_id":          ws.customer.ID,
		"product_price_id": price.ID,
		"discount_percent": "10",
		"notes":            "First three months promo",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var offer models.Offer
	utils.DecodeData(t, w, &offer)
	assert.True(t, strings.HasPrefix(offer.Reference, "OFF-"))
	assert.Equal(t, models.OfferPending, offer.Status)
	assert.Equal(t, ws.sales.ID, offer.CreatedBy)
	assert.Equal(t, "150000.00", utils.FormatMoney(offer.Price))
	assert.True(t, offer.ValidUntil.After(time.Now().AddDate(0, 0, 13)))
	path := idPath("/offers/%d", offer.ID)

	w = ws.do(t, ws.sales, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail struct {
		FinalPrice string `json:"final_price"`
	}
	utils.DecodeData(t, w, &detail)
	assert.Equal(t, "135000.00", detail.FinalPrice)

	w = ws.do(t, ws.sales, http.MethodPost, path+"/convert", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = ws.do(t, ws.sales, http.MethodPost, path+"/accept", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ws.do(t, ws.sales, http.MethodPut, path, gin.H{"user_id": ws.customer.ID, "product_price_id": price.ID})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = ws.do(t, ws.sales, http.MethodPost, path+"/convert", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var converted struct {
		OfferID        uint `json:"offer_id"`
		SubscriptionID uint `json:"subscription_id"`
	}
	utils.DecodeData(t, w, &converted)
	assert.Equal(t, offer.ID, converted.OfferID)

	var sub models.Subscription
	require.NoError(t, config.DB.First(&sub, converted.SubscriptionID).Error)
	assert.Equal(t, models.SubscriptionPendingApproval, sub.Status)
	assert.Equal(t, ws.customer.ID, sub.UserID)
	require.NotNil(t, sub.OfferID)
	assert.Equal(t, offer.ID, *sub.OfferID)

	var stored models.Offer
	require.NoError(t, config.DB.First(&stored, offer.ID).Error)
	assert.Equal(t, models.OfferConverted, stored.Status)
	require.NotNil(t, stored.SubscriptionID)
	assert.Equal(t, sub.ID, *stored.SubscriptionID)
	assert.NotNil(t, stored.ConvertedAt)

	w = ws.do(t, ws.sales, http.MethodPost, path+"/convert", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = ws.do(t, ws.sales, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestOfferValidation(t *testing.T) {
	ws := newWorkspace(t)
	price := createPrice(t, ws.tenant.ID, "F100", models.BillingCycleMonthly, "150000")

	w := ws.do(t, ws.sales, http.MethodPost, "/offers", gin.H{
		"user_id": ws.customer.ID, "product_price_id": price.ID, "discount_percent": "120",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = ws.do(t, ws.sales, http.MethodPost, "/offers", gin.H{
		"user_id": ws.customer.ID, "product_price_id": price.ID, "valid_until": time.Now().Add(-time.Hour),
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = ws.do(t, ws.sales, http.MethodPost, "/offers", gin.H{
		"user_id": ws.customer.ID, "product_price_id": price.ID, "price": "-5",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = ws.do(t, ws.sales, http.MethodPost, "/offers", gin.H{
		"user_id": 9999, "product_price_id": price.ID,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAcceptingLapsedOfferExpiresIt(t *testing.T) {
	ws := newWorkspace(t)
	price := createPrice(t, ws.tenant.ID, "F100", models.BillingCycleMonthly, "150000")
	offer := &models.Offer{
		TenantID:       ws.tenant.ID,
		Reference:      "OFF-LAPSED01",
		UserID:         ws.customer.ID,
		ProductPriceID: price.ID,
		CreatedBy:      ws.sales.ID,
		Price:          decimal.RequireFromString("150000"),
		Status:         models.OfferPending,
		ValidUntil:     time.Now().AddDate(0, 0, -1),
	}
	require.NoError(t, config.DB.Create(offer).Error)

	w := ws.do(t, ws.sales, http.MethodPost, idPath("/offers/%d/accept", offer.ID), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var stored models.Offer
	require.NoError(t, config.DB.First(&stored, offer.ID).Error)
	assert.Equal(t, models.OfferExpired, stored.Status)

	w = ws.do(t, ws.sales, http.MethodDelete, idPath("/offers/%d", offer.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRejectOfferAndList(t *testing.T) {
	ws := newWorkspace(t)
	price := createPrice(t, ws.tenant.ID, "F100", models.BillingCycleMonthly, "150000")

	w := ws.do(t, ws.sales, http.MethodPost, "/offers", gin.H{"user_id": ws.customer.ID, "product_price_id": price.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var offer models.Offer
	utils.DecodeData(t, w, &offer)

	w = ws.do(t, ws.sales, http.MethodPost, idPath("/offers/%d/reject", offer.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	utils.DecodeData(t, w, &offer)
	assert.Equal(t, models.OfferRejected, offer.Status)
	assert.NotNil(t, offer.RespondedAt)

	w = ws.do(t, ws.sales, http.MethodPost, idPath("/offers/%d/accept", offer.ID), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = ws.do(t, ws.owner, http.MethodGet, "/offers?status=rejected", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var offers []models.Offer
	utils.DecodeData(t, w, &offers)
	assert.Len(t, offers, 1)
}
