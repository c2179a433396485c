// Package metrics registers the prometheus instruments for the store:
// HTTP traffic, purchase outcomes, stock movements, cache breaker state and
// broker publishes. Everything is exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	initialized bool

	// HTTP traffic.

	// HTTPRequestsTotal counts requests by method, path and status.
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration observes request latency by method and path.
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress tracks in-flight requests.
	HTTPRequestsInProgress prometheus.Gauge

	// Sales.

	// PurchasesTotal counts completed purchases.
	PurchasesTotal prometheus.Counter

	// PurchasesFailedTotal counts rejected purchases by reason
	// (insufficient_stock, invalid_quantity, not_found, error).
	PurchasesFailedTotal *prometheus.CounterVec

	// PurchaseDuration observes the end-to-end purchase transaction time.
	PurchaseDuration prometheus.Histogram

	// Inventory.

	// StockAdjustmentsTotal counts manual stock adjustments by direction
	// (increase, decrease).
	StockAdjustmentsTotal *prometheus.CounterVec

	// Report cache breaker.

	// CircuitBreakerState reports 0=CLOSED, 1=OPEN, 2=HALF_OPEN per breaker.
	CircuitBreakerState *prometheus.GaugeVec

	// Broker.

	// MessagesPublishedTotal counts broker publishes by exchange and
	// routing key.
	MessagesPublishedTotal *prometheus.CounterVec

	// MessagesFailedTotal counts broker publish failures.
	MessagesFailedTotal prometheus.Counter
)

// InitMetrics registers all instruments on the default registry. Call once
// at startup; repeated calls are no-ops.
func InitMetrics() {
	if initialized {
		return
	}
	initialized = true

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests served.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "HTTP requests currently being handled.",
		},
	)

	PurchasesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "purchases_total",
			Help: "Completed purchases.",
		},
	)

	PurchasesFailedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "purchases_failed_total",
			Help: "Rejected purchases by reason.",
		},
		[]string{"reason"},
	)

	PurchaseDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "purchase_duration_seconds",
			Help:    "Purchase transaction time in seconds.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	StockAdjustmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_adjustments_total",
			Help: "Manual stock adjustments by direction.",
		},
		[]string{"direction"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Breaker state (0=CLOSED, 1=OPEN, 2=HALF_OPEN).",
		},
		[]string{"name"},
	)

	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "Broker messages published.",
		},
		[]string{"exchange", "routing_key"},
	)

	MessagesFailedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "messages_failed_total",
			Help: "Broker publish failures.",
		},
	)
}
