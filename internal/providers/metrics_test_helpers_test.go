package providers

import (
	"sync"
	"time"
)

// recordingMetrics implements MetricsProviderInterface for tests in this
// package; testutil cannot be imported here without a cycle.
type recordingMetrics struct {
	mu              sync.Mutex
	requestEndpoint string
	requestStatus   int
	requestCalls    int
	durationCalls   int
	hits            int
	misses          int
}

func (m *recordingMetrics) IncRequestsTotal(endpoint string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestEndpoint = endpoint
	m.requestStatus = status
	m.requestCalls++
}

func (m *recordingMetrics) ObserveRequestDuration(_ string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durationCalls++
}

func (m *recordingMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hits++
}

func (m *recordingMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.misses++
}

func (m *recordingMetrics) ObserveStorageDuration(_, _ string, _ time.Duration) {}
func (m *recordingMetrics) IncStorageErrors(_, _ string)                        {}
func (m *recordingMetrics) IncFallbackTransitions()                             {}
func (m *recordingMetrics) SetStorageMode(_ string)                             {}
func (m *recordingMetrics) AddMigratedKeys(_ int)                               {}

type silentLogger struct{}

func (m *silentLogger) Errorf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *silentLogger) Warnf(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *silentLogger) Debugf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *silentLogger) Infof(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *silentLogger) Fatalf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *silentLogger) Close()                                        {}
