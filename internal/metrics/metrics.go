// Package metrics provides Prometheus collectors for the parcel service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// PackingRunsTotal counts packing runs by kind (pack, fit) and outcome
	// (packed, fallback, empty, no_fit).
	PackingRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parcel_packing_runs_total",
			Help: "Total number of packing runs",
		},
		[]string{"kind", "outcome"},
	)

	PackingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "parcel_packing_duration_seconds",
			Help:    "Packing duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"kind"},
	)

	PackingItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "parcel_packing_items",
			Help:    "Number of items per packing run",
			Buckets: prometheus.ExponentialBuckets(1, 2, 9),
		},
	)

	// StrategyWinsTotal counts which strategy produced the chosen layout.
	StrategyWinsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parcel_strategy_wins_total",
			Help: "Number of times each strategy produced the chosen layout",
		},
		[]string{"strategy"},
	)

	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"},
	)

	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
	)

	CacheCapacity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_capacity",
			Help: "Cache capacity",
		},
	)

	// CircuitBreakerState is 0 closed, 1 open, 2 half-open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)
)

// PrometheusMiddleware records request count and latency per route.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		HTTPRequestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}

// RecordPacking records one packing run.
func RecordPacking(kind, outcome, strategy string, items int, duration time.Duration) {
	PackingDuration.WithLabelValues(kind).Observe(duration.Seconds())
	PackingRunsTotal.WithLabelValues(kind, outcome).Inc()
	PackingItems.Observe(float64(items))
	if strategy != "" {
		StrategyWinsTotal.WithLabelValues(strategy).Inc()
	}
}

// RecordCacheOperation records a cache operation.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// UpdateCacheMetrics sets the cache size and capacity gauges.
func UpdateCacheMetrics(size, capacity int) {
	CacheSize.Set(float64(size))
	CacheCapacity.Set(float64(capacity))
}

// SetCircuitBreakerState sets the state gauge for the named breaker.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
