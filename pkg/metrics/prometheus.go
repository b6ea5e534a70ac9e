// Package metrics provides Prometheus metrics for the SISU dashboard service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Default buckets for matched-row counts; the official SISU file has ~60k rows.
var defaultRowBuckets = []float64{0, 1, 5, 10, 50, 100, 500, 1000, 5000, 10000, 50000} //nolint:gochecknoglobals // fixed bucket layout

// Manager manages all Prometheus metrics for the dashboard service.
type Manager struct {
	namespace       string
	subsystem       string
	latencyBuckets  []float64
	rowBuckets      []float64
	enabled         bool
	refreshInterval time.Duration
	constLabels     map[string]string
	registry        prometheus.Registerer

	// Dataset Metrics - state of the loaded table
	datasetRows         prometheus.Gauge
	datasetLoadDuration prometheus.Gauge
	facetCardinality    *prometheus.GaugeVec
	invalidCells        *prometheus.GaugeVec

	// Pipeline Metrics - filter, aggregate, present
	updatesTotal   prometheus.Counter
	updateDuration prometheus.Histogram
	matchedRows    prometheus.Histogram
	emptyResults   *prometheus.CounterVec
	selectionSize  *prometheus.HistogramVec
	facetSearches  *prometheus.CounterVec
	chartRenders   *prometheus.CounterVec
	chartErrors    *prometheus.CounterVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// Init replaces the global manager with one built from opts on a fresh
// registry. Call it once at startup, before serving requests.
func Init(opts ...Option) {
	registry := prometheus.NewRegistry()
	globalManager = NewManager(append(opts, WithRegistry(registry))...)
	customRegistry = registry
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:       "sisu",
		subsystem:       "dashboard",
		latencyBuckets:  prometheus.DefBuckets,
		rowBuckets:      defaultRowBuckets,
		enabled:         true,
		refreshInterval: defaultRefreshInterval,
		constLabels:     make(map[string]string),
		registry:        prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.constLabels)

	m.datasetRows = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "dataset_rows",
		Help:        "Number of records in the loaded dataset",
		ConstLabels: labels,
	})

	m.datasetLoadDuration = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "dataset_load_duration_milliseconds",
		Help:        "Time spent loading and indexing the dataset at startup",
		ConstLabels: labels,
	})

	m.facetCardinality = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "facet_values",
		Help:        "Number of distinct values per facet",
		ConstLabels: labels,
	}, []string{"facet"})

	m.invalidCells = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "dataset_invalid_cells",
		Help:        "Numeric cells that were empty or could not be parsed, by column",
		ConstLabels: labels,
	}, []string{"column"})

	m.updatesTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "updates_total",
		Help:        "Total number of filter/aggregate updates served",
		ConstLabels: labels,
	})

	m.updateDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "update_duration_milliseconds",
		Help:        "Duration of one filter/aggregate/present cycle in milliseconds",
		Buckets:     m.latencyBuckets,
		ConstLabels: labels,
	})

	m.matchedRows = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "matched_rows",
		Help:        "Rows matched by a selection",
		Buckets:     m.rowBuckets,
		ConstLabels: labels,
	})

	m.emptyResults = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "empty_results_total",
		Help:        "Updates that produced no rows, by reason",
		ConstLabels: labels,
	}, []string{"reason"})

	m.selectionSize = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "selection_values",
		Help:        "Number of values selected per facet",
		Buckets:     []float64{0, 1, 2, 5, 10, 27, 50, 100},
		ConstLabels: labels,
	}, []string{"facet"})

	m.facetSearches = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "facet_searches_total",
		Help:        "Prefix searches over facet values",
		ConstLabels: labels,
	}, []string{"facet"})

	m.chartRenders = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "chart_renders_total",
		Help:        "Rendered chart images by chart and format",
		ConstLabels: labels,
	}, []string{"chart", "format"})

	m.chartErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "chart_render_errors_total",
		Help:        "Chart renders that failed",
		ConstLabels: labels,
	}, []string{"chart"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.latencyBuckets,
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_type_total",
		Help:        "Errors by type and severity",
		ConstLabels: labels,
	}, []string{"error_type", "severity"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_endpoint_total",
		Help:        "Errors by endpoint, method and type",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "error_type"})

	m.errorLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "error_latency_milliseconds",
		Help:        "Latency of operations that ended in an error",
		Buckets:     m.latencyBuckets,
		ConstLabels: labels,
	}, []string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_memory_bytes",
		Help:        "Heap bytes allocated",
		ConstLabels: labels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_goroutines",
		Help:        "Number of goroutines",
		ConstLabels: labels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_gc_pause_milliseconds",
		Help:        "Average GC pause in milliseconds",
		Buckets:     m.latencyBuckets,
		ConstLabels: labels,
	})
}

// Dataset Metrics Functions.

// UpdateDatasetRows sets the number of loaded records.
func UpdateDatasetRows(rows int) {
	if globalManager.enabled {
		globalManager.datasetRows.Set(float64(rows))
	}
}

// RecordDatasetLoadDuration records how long the startup load took.
func RecordDatasetLoadDuration(ms float64) {
	if globalManager.enabled {
		globalManager.datasetLoadDuration.Set(ms)
	}
}

// UpdateFacetCardinality sets the number of distinct values of a facet.
func UpdateFacetCardinality(facet string, n int) {
	if globalManager.enabled {
		globalManager.facetCardinality.WithLabelValues(facet).Set(float64(n))
	}
}

// UpdateInvalidCells sets the number of unparseable numeric cells of a column.
func UpdateInvalidCells(column string, n int) {
	if globalManager.enabled {
		globalManager.invalidCells.WithLabelValues(column).Set(float64(n))
	}
}

// Pipeline Metrics Functions.

// RecordUpdate counts one update cycle and its duration.
func RecordUpdate(durationMs float64) {
	if globalManager.enabled {
		globalManager.updatesTotal.Inc()
		globalManager.updateDuration.Observe(durationMs)
	}
}

// RecordMatchedRows observes the size of a filtered view.
func RecordMatchedRows(rows int) {
	if globalManager.enabled {
		globalManager.matchedRows.Observe(float64(rows))
	}
}

// RecordEmptyResult counts an update with no rows.
func RecordEmptyResult(reason string) {
	if globalManager.enabled {
		globalManager.emptyResults.WithLabelValues(reason).Inc()
	}
}

// RecordSelectionSize observes how many values were selected for a facet.
func RecordSelectionSize(facet string, n int) {
	if globalManager.enabled {
		globalManager.selectionSize.WithLabelValues(facet).Observe(float64(n))
	}
}

// RecordFacetSearch counts a prefix search.
func RecordFacetSearch(facet string) {
	if globalManager.enabled {
		globalManager.facetSearches.WithLabelValues(facet).Inc()
	}
}

// RecordChartRender counts a rendered chart image.
func RecordChartRender(chart, format string) {
	if globalManager.enabled {
		globalManager.chartRenders.WithLabelValues(chart, format).Inc()
	}
}

// RecordChartError counts a failed chart render.
func RecordChartError(chart string) {
	if globalManager.enabled {
		globalManager.chartErrors.WithLabelValues(chart).Inc()
	}
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Error Metrics Functions.

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// RefreshInterval returns how often periodic gauges should be refreshed.
func RefreshInterval() time.Duration {
	return globalManager.refreshInterval
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
