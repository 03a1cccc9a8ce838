package utils

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the HTTP and domain collectors of the service
type Metrics struct {
	registry            *prometheus.Registry
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	subscriptionEvents  *prometheus.CounterVec
	walletTransactions  *prometheus.CounterVec
}

// NewMetrics registers the collectors on a fresh registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "billsphere_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "billsphere_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		subscriptionEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "billsphere_subscription_transitions_total",
				Help: "Subscription status transitions",
			},
			[]string{"to"},
		),
		walletTransactions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "billsphere_wallet_transactions_total",
				Help: "Wallet ledger entries written",
			},
			[]string{"type"},
		),
	}
	m.registry.MustRegister(m.httpRequestsTotal, m.httpRequestDuration, m.subscriptionEvents, m.walletTransactions)
	return m
}

// AppMetrics is the process-wide metrics set
var AppMetrics = NewMetrics()

// MetricsMiddleware returns middleware that collects HTTP metrics
func (m *Metrics) MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		m.httpRequestsTotal.WithLabelValues(c.Request.Method, endpoint, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

func (m *Metrics) SubscriptionTransition(to string) {
	m.subscriptionEvents.WithLabelValues(to).Inc()
}

func (m *Metrics) WalletTransaction(txType string) {
	m.walletTransactions.WithLabelValues(txType).Inc()
}
