package providers

import (
	"shiftplan/internal/structures"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTestRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	prevReg, prevGather := prometheus.DefaultRegisterer, prometheus.DefaultGatherer
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = prevReg
		prometheus.DefaultGatherer = prevGather
	})
}

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	m.IncRequestsTotal("/test", 200)
	m.ObserveRequestDuration("/test", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.ObserveStorageDuration("primary", "put", time.Millisecond)
	m.IncStorageErrors("primary", "put")
	m.IncFallbackTransitions()
	m.SetStorageMode("fallback")
	m.AddMigratedKeys(3)
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	withTestRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*MetricsProvider)
	assert.True(t, ok, "should return MetricsProvider when enabled")
}

func TestMetricsProvider_StorageModeIsOneHot(t *testing.T) {
	withTestRegistry(t)

	m := NewMetricsProvider(&structures.Config{Metrics: structures.MetricsConfig{Enabled: true}})
	mp, ok := m.(*MetricsProvider)
	require.True(t, ok)

	mp.SetStorageMode("primary")
	mp.SetStorageMode("fallback")

	assert.Equal(t, 1.0, testutil.ToFloat64(mp.storageMode.WithLabelValues("fallback")))
	assert.Equal(t, 0.0, testutil.ToFloat64(mp.storageMode.WithLabelValues("primary")))
}

func TestMetricsProvider_Counters(t *testing.T) {
	withTestRegistry(t)

	m := NewMetricsProvider(&structures.Config{Metrics: structures.MetricsConfig{Enabled: true}})
	mp := m.(*MetricsProvider)

	mp.IncFallbackTransitions()
	mp.AddMigratedKeys(4)
	mp.IncStorageErrors("primary", "put")
	mp.IncStorageErrors("primary", "put")

	assert.Equal(t, 1.0, testutil.ToFloat64(mp.fallbackTransitions))
	assert.Equal(t, 4.0, testutil.ToFloat64(mp.migratedKeys))
	assert.Equal(t, 2.0, testutil.ToFloat64(mp.storageErrors.WithLabelValues("primary", "put")))
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{404, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}
