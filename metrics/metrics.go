// Package metrics provides Prometheus metrics for the freight calculator
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Quote metrics
	QuoteBatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "freight_quote_batches_total",
			Help: "Total number of quote batches evaluated",
		},
		[]string{"role", "status"},
	)

	QuotedItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "freight_quoted_items_total",
			Help: "Total number of line items quoted, by mode and availability",
		},
		[]string{"mode", "available"},
	)

	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "freight_summary_exports_total",
			Help: "Total number of quote summaries rendered",
		},
		[]string{"format"},
	)

	// Rate table metrics
	RateRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "freight_rate_refreshes_total",
			Help: "Total number of rate table refresh attempts",
		},
		[]string{"source", "status"},
	)

	RateRefreshDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "freight_rate_refresh_duration_seconds",
			Help:    "Time taken to load a rate table",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"source"},
	)

	RateRoutes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "freight_rate_routes",
			Help: "Number of served routes in the active rate table",
		},
		[]string{"mode"},
	)
)

// RecordBatch records one evaluated quote batch.
func RecordBatch(role, status string) {
	QuoteBatchesTotal.WithLabelValues(role, status).Inc()
}

// RecordItem records the availability of one mode for one quoted item.
func RecordItem(mode string, available bool) {
	label := "false"
	if available {
		label = "true"
	}
	QuotedItemsTotal.WithLabelValues(mode, label).Inc()
}

// RecordExport records one rendered summary.
func RecordExport(format string) {
	ExportsTotal.WithLabelValues(format).Inc()
}

// RecordRefresh records the outcome and latency of one rate table load.
func RecordRefresh(source string, err error, elapsed time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	RateRefreshesTotal.WithLabelValues(source, status).Inc()
	RateRefreshDuration.WithLabelValues(source).Observe(elapsed.Seconds())
}

// SetRoutes publishes the route count of the active table for one mode.
func SetRoutes(mode string, n int) {
	RateRoutes.WithLabelValues(mode).Set(float64(n))
}
