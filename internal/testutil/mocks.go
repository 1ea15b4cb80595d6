package testutil

import (
	"context"
	"errors"
	"maps"
	"shiftplan/internal/providers"
	"slices"
	"sync"
	"time"
)

var ErrInjected = errors.New("injected failure")

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
}

func (m *MockCache) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.Data)
}

// MockBackend is an in-memory storage backend with per-operation call
// counters and injectable failures. It satisfies both the primary and the
// legacy backend contracts.
type MockBackend struct {
	mu      sync.Mutex
	Data    map[string]string
	Calls   map[string]int
	Fail    map[string]bool
	Delay   time.Duration
	Corrupt map[string]string
	// FailKeys makes get, put and delete fail for the listed keys only.
	FailKeys map[string]bool
	Opened   bool
	Closed   bool
}

func NewMockBackend() *MockBackend {
	return &MockBackend{
		Data:     make(map[string]string),
		Calls:    make(map[string]int),
		Fail:     make(map[string]bool),
		Corrupt:  make(map[string]string),
		FailKeys: make(map[string]bool),
	}
}

// FailOn makes every later call of op fail until SucceedOn is called.
func (m *MockBackend) FailOn(ops ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, op := range ops {
		m.Fail[op] = true
	}
}

func (m *MockBackend) SucceedOn(ops ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, op := range ops {
		delete(m.Fail, op)
	}
}

func (m *MockBackend) CallCount(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls[op]
}

func (m *MockBackend) Value(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Data[key]
	return v, ok
}

func (m *MockBackend) enter(op, key string) error {
	m.mu.Lock()
	m.Calls[op]++
	fail := m.Fail[op] || (key != "" && m.FailKeys[key])
	delay := m.Delay
	m.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}
	if fail {
		return ErrInjected
	}
	return nil
}

func (m *MockBackend) Open(ctx context.Context) error {
	if err := m.enter("open", ""); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Opened = true
	return nil
}

func (m *MockBackend) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

func (m *MockBackend) Get(ctx context.Context, key string) (string, bool, error) {
	if err := m.enter("get", key); err != nil {
		return "", false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.Corrupt[key]; ok {
		return v, true, nil
	}
	v, ok := m.Data[key]
	return v, ok, nil
}

func (m *MockBackend) Put(ctx context.Context, key, value string) error {
	if err := m.enter("put", key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
	return nil
}

func (m *MockBackend) Delete(ctx context.Context, key string) error {
	if err := m.enter("delete", key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
	return nil
}

func (m *MockBackend) Clear(ctx context.Context) error {
	if err := m.enter("clear", ""); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.Data)
	return nil
}

func (m *MockBackend) ListKeys(ctx context.Context) ([]string, error) {
	if err := m.enter("list", ""); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Sorted(maps.Keys(m.Data)), nil
}

func (m *MockBackend) Size(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k, v := range m.Data {
		n += int64(len(k) + len(v))
	}
	return n, nil
}

// MockCompressor implements storage.Compressor with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockMetrics implements providers.MetricsProviderInterface and records
// storage related calls.
type MockMetrics struct {
	mu                  sync.Mutex
	FallbackTransitions int
	Modes               []string
	StorageErrors       map[string]int
	MigratedKeys        int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{StorageErrors: make(map[string]int)}
}

func (m *MockMetrics) IncRequestsTotal(string, int)                         {}
func (m *MockMetrics) ObserveRequestDuration(string, time.Duration)         {}
func (m *MockMetrics) IncCacheHits()                                        {}
func (m *MockMetrics) IncCacheMisses()                                      {}
func (m *MockMetrics) ObserveStorageDuration(string, string, time.Duration) {}

func (m *MockMetrics) IncStorageErrors(backend, op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StorageErrors[backend+":"+op]++
}

func (m *MockMetrics) IncFallbackTransitions() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FallbackTransitions++
}

func (m *MockMetrics) SetStorageMode(mode string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Modes = append(m.Modes, mode)
}

func (m *MockMetrics) AddMigratedKeys(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MigratedKeys += count
}

func (m *MockMetrics) Fallbacks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.FallbackTransitions
}
