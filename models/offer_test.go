package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOfferTransitions(t *testing.T) {
	assert.True(t, OfferPending.CanTransitionTo(OfferAccepted))
	assert.True(t, OfferPending.CanTransitionTo(OfferExpired))
	assert.False(t, OfferPending.CanTransitionTo(OfferConverted))
	assert.True(t, OfferAccepted.CanTransitionTo(OfferConverted))
	assert.False(t, OfferConverted.CanTransitionTo(OfferPending))
	assert.False(t, OfferRejected.CanTransitionTo(OfferAccepted))
	assert.False(t, OfferStatus("draft").Valid())
}

func TestOfferFinalPrice(t *testing.T) {
	offer := Offer{Price: decimal.RequireFromString("300000")}
	assert.True(t, offer.FinalPrice().Equal(decimal.RequireFromString("300000")))

	offer.DiscountPercent = decimal.RequireFromString("15")
	assert.Equal(t, "255000.00", offer.FinalPrice().StringFixed(2))

	offer = Offer{Price: decimal.RequireFromString("99.99"), DiscountPercent: decimal.RequireFromString("33.3")}
	assert.Equal(t, "66.69", offer.FinalPrice().StringFixed(2))
}

func TestOfferIsLapsed(t *testing.T) {
	now := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	assert.False(t, Offer{}.IsLapsed(now))
	assert.True(t, Offer{ValidUntil: now.Add(-time.Minute)}.IsLapsed(now))
	assert.False(t, Offer{ValidUntil: now.Add(time.Minute)}.IsLapsed(now))
}
