package providers

import (
	"shiftplan/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObserveStorageDuration(backend, op string, duration time.Duration)
	IncStorageErrors(backend, op string)
	IncFallbackTransitions()
	SetStorageMode(mode string)
	AddMigratedKeys(count int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	storageDuration     *prometheus.HistogramVec
	storageErrors       *prometheus.CounterVec
	fallbackTransitions prometheus.Counter
	storageMode         *prometheus.GaugeVec
	migratedKeys        prometheus.Counter
}

var storageModes = []string{"uninitialized", "initializing", "primary", "fallback"}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObserveStorageDuration(backend, op string, duration time.Duration) {
	m.storageDuration.WithLabelValues(backend, op).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncStorageErrors(backend, op string) {
	m.storageErrors.WithLabelValues(backend, op).Inc()
}

func (m *MetricsProvider) IncFallbackTransitions() {
	m.fallbackTransitions.Inc()
}

// SetStorageMode flips the one-hot mode gauge.
func (m *MetricsProvider) SetStorageMode(mode string) {
	for _, known := range storageModes {
		v := 0.0
		if known == mode {
			v = 1
		}
		m.storageMode.WithLabelValues(known).Set(v)
	}
}

func (m *MetricsProvider) AddMigratedKeys(count int) {
	m.migratedKeys.Add(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "shiftplan_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "shiftplan_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shiftplan_cache_hits_total",
			Help: "Total number of storage cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shiftplan_cache_misses_total",
			Help: "Total number of storage cache misses",
		}),

		storageDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "shiftplan_storage_duration_seconds",
			Help:    "Duration of backend storage operations in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"backend", "op"}),

		storageErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "shiftplan_storage_errors_total",
			Help: "Total number of failed backend storage operations",
		}, []string{"backend", "op"}),

		fallbackTransitions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shiftplan_fallback_transitions_total",
			Help: "Number of times the storage wrapper demoted to the legacy backend",
		}),

		storageMode: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "shiftplan_storage_mode",
			Help: "Current storage wrapper mode (1 for the active mode)",
		}, []string{"mode"}),

		migratedKeys: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shiftplan_migrated_keys_total",
			Help: "Number of legacy keys copied into the primary store",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                    {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)    {}
func (n *noopMetrics) IncCacheHits()                                       {}
func (n *noopMetrics) IncCacheMisses()                                     {}
func (n *noopMetrics) ObserveStorageDuration(_, _ string, _ time.Duration) {}
func (n *noopMetrics) IncStorageErrors(_, _ string)                        {}
func (n *noopMetrics) IncFallbackTransitions()                             {}
func (n *noopMetrics) SetStorageMode(_ string)                             {}
func (n *noopMetrics) AddMigratedKeys(_ int)                               {}
