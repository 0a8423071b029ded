// Package metrics exposes Prometheus collectors for the API and the recurring
// transaction core.
package metrics

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var collectors = []prometheus.Collector{
	requestCount,
	requestDuration,
	seriesSize,
	reconciliations,
	storeFailures,
}

// Register registers all collectors with reg.
func Register(reg prometheus.Registerer) error {
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return fmt.Errorf("could not register %s with Prometheus: %w", c, err)
		}
	}
	return nil
}

// Unregister removes all collectors from reg.
func Unregister(reg prometheus.Registerer) bool {
	ok := true
	for _, c := range collectors {
		ok = reg.Unregister(c) && ok
	}
	return ok
}

var requestCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cashflow_requests_total",
		Help: "How many HTTP requests processed, partitioned by status code and HTTP method.",
	},
	[]string{"code", "method", "url"},
)

var requestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "cashflow_request_duration_seconds",
		Help: "The HTTP request latencies in seconds.",
	},
	[]string{"code", "method", "url"},
)

var seriesSize = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "cashflow_series_instances",
		Help:    "Number of instances generated per recurring series expansion.",
		Buckets: []float64{1, 2, 4, 6, 12, 24, 36, 48, 60},
	},
)

var reconciliations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cashflow_reconciliations_total",
		Help: "Transaction edits, partitioned by outcome.",
	},
	[]string{"outcome"},
)

var storeFailures = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cashflow_store_failures_total",
		Help: "Failed store operations, partitioned by operation.",
	},
	[]string{"op"},
)

// Reconciliation outcomes.
const (
	OutcomeRegenerated = "regenerated"
	OutcomeUpdated     = "updated"
	OutcomeConflict    = "conflict"
	OutcomeFailed      = "failed"
)

// ObserveSeries records the size of one expansion.
func ObserveSeries(n int) {
	seriesSize.Observe(float64(n))
}

// IncReconciliation counts one edit with the given outcome.
func IncReconciliation(outcome string) {
	reconciliations.WithLabelValues(outcome).Inc()
}

// IncStoreFailure counts one failed store operation.
func IncStoreFailure(op string) {
	storeFailures.WithLabelValues(op).Inc()
}

// Middleware updates request metrics.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		elapsed := float64(time.Since(start)) / float64(time.Second)

		// Replace URL parameters with their name to reduce cardinality
		url := c.Request.URL.Path
		for _, p := range c.Params {
			url = strings.Replace(url, p.Value, fmt.Sprintf(":%s", p.Key), 1)
		}

		requestDuration.WithLabelValues(status, c.Request.Method, url).Observe(elapsed)
		requestCount.WithLabelValues(status, c.Request.Method, url).Inc()
	}
}
