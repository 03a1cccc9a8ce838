package utils

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()
	router := gin.New()
	router.Use(m.MetricsMiddleware())
	router.GET("/metrics", m.Handler())
	router.GET("/ping", func(c *gin.Context) { Success(c, "pong", nil) })

	m.SubscriptionTransition("active")
	m.WalletTransaction("credit")
	PerformRequest(router, http.MethodGet, "/ping", nil, "")

	w := PerformRequest(router, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `billsphere_http_requests_total{endpoint="/ping",method="GET",status="200"} 1`)
	assert.Contains(t, body, `billsphere_subscription_transitions_total{to="active"} 1`)
	assert.Contains(t, body, `billsphere_wallet_transactions_total{type="credit"} 1`)
}
