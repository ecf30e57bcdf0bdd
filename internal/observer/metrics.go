package observer

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricsEnabled = true // Flag to control metric collection

	dbOperationLabels = []string{"operation", "entity", "status"}

	// DatabaseOperationDurationSeconds tracks every remote read issued by the data access layer.
	DatabaseOperationDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_db_operation_duration_seconds",
			Help:    "Histogram of database operation durations.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms to ~16s
		},
		dbOperationLabels,
	)

	// ContactLookupsTotal counts per-row contact resolutions in the appointment join.
	ContactLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_contact_lookups_total",
			Help: "Total number of per-appointment contact lookups, labeled by outcome (resolved, missing, failed, skipped).",
		},
		[]string{"outcome"},
	)

	// FetchCyclesTotal counts page fetch cycles by outcome.
	FetchCyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_fetch_cycles_total",
			Help: "Total number of page fetch cycles, labeled by page and outcome (success, error, discarded).",
		},
		[]string{"page", "outcome"},
	)

	// DispatchesTotal counts send attempts on the dispatch composer.
	DispatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_dispatches_total",
			Help: "Total number of dispatch attempts, labeled by mode and result.",
		},
		[]string{"mode", "result"},
	)

	// DispatchTargetsTotal counts contacts addressed by successful dispatches.
	DispatchTargetsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_dispatch_targets_total",
			Help: "Total number of contacts targeted by successful dispatches.",
		},
		[]string{"mode"},
	)

	httpLabels = []string{"method", "route", "status"}

	// HTTPRequestsTotal counts API requests.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_http_requests_total",
			Help: "Total number of HTTP requests handled by the dashboard API.",
		},
		httpLabels,
	)

	// HTTPRequestDurationSeconds tracks API latency.
	HTTPRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations.",
			Buckets: prometheus.DefBuckets,
		},
		httpLabels,
	)
)

// InitMetrics toggles metric collection. Metrics are registered by promauto
// at package init, so this only flips the recording flag.
func InitMetrics(enabled bool) {
	metricsEnabled = enabled
}

// ObserveDbOperationDuration records the duration for a database operation.
func ObserveDbOperationDuration(operation, entity string, duration time.Duration, err error) {
	if !metricsEnabled {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	DatabaseOperationDurationSeconds.WithLabelValues(operation, entity, status).Observe(duration.Seconds())
}

// IncContactLookup increments the contact lookup counter for the given outcome.
func IncContactLookup(outcome string) {
	if !metricsEnabled {
		return
	}
	ContactLookupsTotal.WithLabelValues(outcome).Inc()
}

// IncFetchCycle increments the fetch cycle counter.
func IncFetchCycle(page, outcome string) {
	if !metricsEnabled {
		return
	}
	FetchCyclesTotal.WithLabelValues(sanitizeLabel(page), outcome).Inc()
}

// IncDispatch records a dispatch attempt. targets is only added on success.
func IncDispatch(mode, result string, targets int) {
	if !metricsEnabled {
		return
	}
	DispatchesTotal.WithLabelValues(sanitizeLabel(mode), result).Inc()
	if result == "success" {
		DispatchTargetsTotal.WithLabelValues(sanitizeLabel(mode)).Add(float64(targets))
	}
}

// ObserveHTTPRequest records an API request.
func ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if !metricsEnabled {
		return
	}
	code := strconv.Itoa(status)
	route = sanitizeLabel(route)
	HTTPRequestsTotal.WithLabelValues(method, route, code).Inc()
	HTTPRequestDurationSeconds.WithLabelValues(method, route, code).Observe(duration.Seconds())
}

// sanitizeLabel keeps empty label values out of the series.
func sanitizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
