package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cosmetics_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cosmetics_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	LedgerOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cosmetics_ledger_operations_total",
			Help: "Total number of ledger operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	UpstreamFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cosmetics_upstream_fetches_total",
			Help: "Total number of upstream document fetches",
		},
		[]string{"document", "outcome"},
	)

	CatalogStaleServedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cosmetics_catalog_stale_served_total",
			Help: "Times an expired document was served after a failed refresh",
		},
		[]string{"document"},
	)
)

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordLedgerOperation records a ledger operation. Outcome is "success" or a refusal reason.
func RecordLedgerOperation(operation, outcome string) {
	LedgerOperationsTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordUpstreamFetch records a fetch of an upstream document.
func RecordUpstreamFetch(document string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	UpstreamFetchesTotal.WithLabelValues(document, outcome).Inc()
}

// RecordStaleServed records a stale document being served.
func RecordStaleServed(document string) {
	CatalogStaleServedTotal.WithLabelValues(document).Inc()
}
