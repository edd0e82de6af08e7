package metrics

import (
	"runtime"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Document formats used as label values.
const (
	FormatHTML = "html"
	FormatXLSX = "xlsx"
	FormatZip  = "zip"
	FormatJSON = "json"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace      string
	subsystem      string
	latencyBuckets []float64
	sizeBuckets    []float64
	enabled        bool
	constLabels    prometheus.Labels
	registry       prometheus.Registerer

	// Report output
	documentsRendered *prometheus.CounterVec
	renderDuration    *prometheus.HistogramVec
	documentSize      *prometheus.HistogramVec
	integrityErrors   *prometheus.CounterVec
	standingsRows     prometheus.Gauge

	// Archive worker pool
	archiveTasks           prometheus.Counter
	archiveWorkersRunning  prometheus.Gauge
	archiveWorkersCapacity prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // process-wide metrics

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // served on /healthz

func init() { //nolint:gochecknoinits // global collectors
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      "scoresheet",
		subsystem:      "reports",
		latencyBuckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		sizeBuckets:    prometheus.ExponentialBuckets(1024, 4, 8),
		enabled:        true,
		registry:       prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
		Buckets:     buckets,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.documentsRendered = auto.NewCounterVec(
		m.counterOpts("documents_rendered_total", "Documents rendered by format and match kind"),
		[]string{"format", "kind"},
	)
	m.renderDuration = auto.NewHistogramVec(
		m.histogramOpts("render_duration_milliseconds", "Render duration in milliseconds", m.latencyBuckets),
		[]string{"format"},
	)
	m.documentSize = auto.NewHistogramVec(
		m.histogramOpts("document_size_bytes", "Size of rendered documents in bytes", m.sizeBuckets),
		[]string{"format"},
	)
	m.integrityErrors = auto.NewCounterVec(
		m.counterOpts("integrity_errors_total", "Match records rejected as structurally inconsistent"),
		[]string{"format"},
	)
	m.standingsRows = auto.NewGauge(m.gaugeOpts("standings_rows", "Rows in the last computed standings table"))

	m.archiveTasks = auto.NewCounter(m.counterOpts("archive_tasks_total", "Score sheets rendered by the archive pool"))
	m.archiveWorkersRunning = auto.NewGauge(m.gaugeOpts("archive_workers_running", "Busy archive workers"))
	m.archiveWorkersCapacity = auto.NewGauge(m.gaugeOpts("archive_workers_capacity", "Archive pool size"))

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "HTTP requests by endpoint, method and status"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.latencyBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Errors by component and type"),
		[]string{"component", "error_type"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Errors by endpoint, method and type"),
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "Heap in use in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts("system_gc_pause_time_milliseconds",
		"Last GC pause in milliseconds", []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100}))
}

// RecordDocument counts one rendered document with its size and duration.
func (m *Manager) RecordDocument(format, kind string, sizeBytes int, durationMs float64) {
	if !m.enabled {
		return
	}
	m.documentsRendered.WithLabelValues(format, kind).Inc()
	m.renderDuration.WithLabelValues(format).Observe(durationMs)
	m.documentSize.WithLabelValues(format).Observe(float64(sizeBytes))
}

// RecordIntegrityError counts a record rejected while rendering format.
func (m *Manager) RecordIntegrityError(format string) {
	if !m.enabled {
		return
	}
	m.integrityErrors.WithLabelValues(format).Inc()
}

// UpdateStandingsRows sets the size of the last standings table.
func (m *Manager) UpdateStandingsRows(rows int) {
	if !m.enabled {
		return
	}
	m.standingsRows.Set(float64(rows))
}

// RecordArchiveTask counts one score sheet rendered inside an archive.
func (m *Manager) RecordArchiveTask() {
	if !m.enabled {
		return
	}
	m.archiveTasks.Inc()
}

// UpdateArchivePool reports the archive pool occupancy.
func (m *Manager) UpdateArchivePool(running, capacity int) {
	if !m.enabled {
		return
	}
	m.archiveWorkersRunning.Set(float64(running))
	m.archiveWorkersCapacity.Set(float64(capacity))
}

// RecordHTTPRequest records one served request.
func (m *Manager) RecordHTTPRequest(endpoint, method string, status int, durationMs float64) {
	if !m.enabled {
		return
	}
	code := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(endpoint, method, code).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, code).Observe(durationMs)
}

// RecordErrorByComponent records an error with component and type labels.
func (m *Manager) RecordErrorByComponent(component, errorType string) {
	if !m.enabled {
		return
	}
	m.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method and type labels.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !m.enabled {
		return
	}
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// SampleSystem refreshes the memory, goroutine and GC gauges.
func (m *Manager) SampleSystem() {
	if !m.enabled {
		return
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	m.systemMemoryUsage.Set(float64(ms.HeapInuse))
	m.systemGoroutineCount.Set(float64(runtime.NumGoroutine()))
	if ms.NumGC > 0 {
		last := ms.PauseNs[(ms.NumGC+255)%256]
		m.systemGCPauseTime.Observe(float64(last) / 1e6)
	}
}

// Global shortcuts on the process-wide manager.

// RecordDocument records on the global manager.
func RecordDocument(format, kind string, sizeBytes int, durationMs float64) {
	globalManager.RecordDocument(format, kind, sizeBytes, durationMs)
}

// RecordIntegrityError records on the global manager.
func RecordIntegrityError(format string) { globalManager.RecordIntegrityError(format) }

// UpdateStandingsRows records on the global manager.
func UpdateStandingsRows(rows int) { globalManager.UpdateStandingsRows(rows) }

// RecordArchiveTask records on the global manager.
func RecordArchiveTask() { globalManager.RecordArchiveTask() }

// UpdateArchivePool records on the global manager.
func UpdateArchivePool(running, capacity int) { globalManager.UpdateArchivePool(running, capacity) }

// RecordHTTPRequest records on the global manager.
func RecordHTTPRequest(endpoint, method string, status int, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, status, durationMs)
}

// RecordErrorByComponent records on the global manager.
func RecordErrorByComponent(component, errorType string) {
	globalManager.RecordErrorByComponent(component, errorType)
}

// RecordErrorByEndpoint records on the global manager.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.RecordErrorByEndpoint(endpoint, method, errorType)
}

// SampleSystem samples runtime stats into the global manager.
func SampleSystem() { globalManager.SampleSystem() }

// GetRegistry returns the registry the global manager registers on.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
