package storage

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"shiftplan/internal/providers"
	"shiftplan/internal/structures"
	"slices"
	"sync"
	"time"

	"go.uber.org/atomic"
	"golang.org/x/sync/singleflight"
)

const (
	backendPrimary = "primary"
	backendLegacy  = "legacy"
)

type Info struct {
	Mode        string   `json:"mode"`
	PrimaryKeys []string `json:"primaryKeys"`
	LegacyKeys  []string `json:"legacyKeys"`
	LegacyBytes int64    `json:"legacyBytes"`
}

type Export struct {
	ExportedAt time.Time         `json:"exportedAt"`
	Records    map[string]string `json:"records"`
}

type lookup struct {
	value string
	found bool
}

// Wrapper is the single persistence entry point. It serves reads from an
// in-memory cache, prefers the primary store while it is healthy and mirrors
// every mutation to the legacy store.
type Wrapper struct {
	primary PrimaryBackend
	legacy  LegacyBackend
	cache   providers.CacheProviderInterface
	metrics providers.MetricsProviderInterface
	logger  providers.Logger

	primaryEnabled bool
	openTimeout    time.Duration

	mode    *atomic.Int32
	initMu  sync.Mutex
	clearMu sync.RWMutex
	locks   *keyLocks
	loads   singleflight.Group
}

func NewWrapper(
	conf *structures.Config,
	primary PrimaryBackend,
	legacy LegacyBackend,
	cache providers.CacheProviderInterface,
	metrics providers.MetricsProviderInterface,
	logger providers.Logger,
) *Wrapper {
	w := &Wrapper{
		primary:        primary,
		legacy:         legacy,
		cache:          cache,
		metrics:        metrics,
		logger:         logger,
		primaryEnabled: conf.Storage.PrimaryEnabled,
		openTimeout:    conf.Storage.OpenTimeout,
		mode:           atomic.NewInt32(int32(ModeUninitialized)),
		locks:          newKeyLocks(),
	}
	metrics.SetStorageMode(ModeUninitialized.String())
	return w
}

func (w *Wrapper) Mode() Mode {
	return Mode(w.mode.Load())
}

// Init selects the backend for the rest of the process lifetime. It is safe
// to call repeatedly; only the first call opens the primary store.
func (w *Wrapper) Init(ctx context.Context) Mode {
	w.initMu.Lock()
	defer w.initMu.Unlock()
	if w.Mode() != ModeUninitialized {
		return w.Mode()
	}
	w.apply(EventInitStarted)

	if !w.primaryEnabled {
		w.logger.Infof(providers.TypeStorage, "Primary store disabled, using legacy store only")
		w.apply(EventPrimaryFailed)
		return w.Mode()
	}

	openCtx := ctx
	if w.openTimeout > 0 {
		var cancel context.CancelFunc
		openCtx, cancel = context.WithTimeout(ctx, w.openTimeout)
		defer cancel()
	}
	err := w.observe(backendPrimary, "open", func() error { return w.primary.Open(openCtx) })
	if err != nil {
		w.logger.Warnf(providers.TypeStorage, "Primary store unavailable, falling back to legacy store: %s", err)
		w.apply(EventPrimaryFailed)
		return w.Mode()
	}

	w.apply(EventPrimaryReady)
	w.logger.Infof(providers.TypeStorage, "Primary store ready")
	return w.Mode()
}

// Shutdown releases the primary store.
func (w *Wrapper) Shutdown() error {
	w.initMu.Lock()
	defer w.initMu.Unlock()
	if err := w.primary.Close(); err != nil {
		w.logger.Errorf(providers.TypeStorage, "Error while closing primary store: %s", err)
		return err
	}
	return nil
}

// Demote switches to the legacy store for the rest of the process lifetime.
// It reports whether this call caused the transition.
func (w *Wrapper) Demote(reason error) bool {
	if !w.apply(EventPrimaryFailed) {
		return false
	}
	w.logger.Warnf(providers.TypeStorage, "Switched to legacy store: %s", reason)
	return true
}

func (w *Wrapper) apply(e Event) bool {
	for {
		cur := Mode(w.mode.Load())
		next := Transition(cur, e)
		if next == cur {
			return false
		}
		if w.mode.CompareAndSwap(int32(cur), int32(next)) {
			if next == ModeFallbackActive {
				w.metrics.IncFallbackTransitions()
			}
			w.metrics.SetStorageMode(next.String())
			return true
		}
	}
}

func (w *Wrapper) ensureInit(ctx context.Context) {
	if w.Mode() == ModeUninitialized {
		w.Init(ctx)
	}
}

// SetItem caches value and writes it to the primary store (when active) and
// to the legacy store. A failed legacy write is always returned: migration
// copies legacy values over the primary on the next start, so an older
// legacy value would roll the key back.
func (w *Wrapper) SetItem(ctx context.Context, key, value string) error {
	w.ensureInit(ctx)
	w.clearMu.RLock()
	defer w.clearMu.RUnlock()
	unlock := w.locks.Lock(key)
	defer unlock()

	w.cache.Set(key, []byte(value))

	primaryOK := false
	var primaryErr error
	if w.Mode() == ModePrimaryActive {
		primaryErr = w.observe(backendPrimary, "put", func() error { return w.primary.Put(ctx, key, value) })
		if primaryErr != nil {
			w.Demote(primaryErr)
		} else {
			primaryOK = true
		}
	}

	legacyErr := w.observe(backendLegacy, "put", func() error { return w.legacy.Put(ctx, key, value) })
	if legacyErr == nil {
		return nil
	}
	if primaryOK {
		w.logger.Warnf(providers.TypeStorage, "Backstop write of %s failed, primary holds the value: %s", key, legacyErr)
		return fmt.Errorf("%w: %s: backstop: %w", ErrWriteFailed, key, legacyErr)
	}
	w.logger.Errorf(providers.TypeStorage, "Write of %s lost, no store accepted it: %s", key, legacyErr)
	return fmt.Errorf("%w: %s: %w", ErrWriteFailed, key, errors.Join(primaryErr, legacyErr))
}

// GetItem returns the value of key. Concurrent misses on one key share a
// single backend read.
func (w *Wrapper) GetItem(ctx context.Context, key string) (string, bool, error) {
	w.ensureInit(ctx)
	if v, ok := w.cache.Get(key); ok {
		return string(v), true, nil
	}

	res, err, _ := w.loads.Do(key, func() (interface{}, error) {
		w.clearMu.RLock()
		defer w.clearMu.RUnlock()
		unlock := w.locks.Lock(key)
		defer unlock()

		// a write may have landed while waiting for the lock
		if v, ok := w.cache.Get(key); ok {
			return lookup{value: string(v), found: true}, nil
		}
		value, found, err := w.load(ctx, key)
		if err != nil {
			return nil, err
		}
		if found {
			w.cache.Set(key, []byte(value))
		}
		return lookup{value: value, found: found}, nil
	})
	if err != nil {
		return "", false, err
	}
	l := res.(lookup)
	return l.value, l.found, nil
}

func (w *Wrapper) load(ctx context.Context, key string) (string, bool, error) {
	var primaryErr error
	if w.Mode() == ModePrimaryActive {
		var value string
		var found bool
		primaryErr = w.observe(backendPrimary, "get", func() error {
			var err error
			value, found, err = w.primary.Get(ctx, key)
			return err
		})
		if primaryErr == nil && found {
			return value, true, nil
		}
		if primaryErr != nil {
			w.logger.Warnf(providers.TypeStorage, "Primary read of %s failed, trying legacy store: %s", key, primaryErr)
		}
	}

	var value string
	var found bool
	legacyErr := w.observe(backendLegacy, "get", func() error {
		var err error
		value, found, err = w.legacy.Get(ctx, key)
		return err
	})
	if legacyErr != nil || (!found && primaryErr != nil) {
		return "", false, fmt.Errorf("%w: %s: %w", ErrReadFailed, key, errors.Join(primaryErr, legacyErr))
	}
	return value, found, nil
}

// RemoveItem deletes key from the cache and both stores. Only a legacy
// failure is reported, since a value left there would be read again.
func (w *Wrapper) RemoveItem(ctx context.Context, key string) error {
	w.ensureInit(ctx)
	w.clearMu.RLock()
	defer w.clearMu.RUnlock()
	unlock := w.locks.Lock(key)
	defer unlock()

	w.cache.Del(key)
	if w.Mode() == ModePrimaryActive {
		if err := w.observe(backendPrimary, "delete", func() error { return w.primary.Delete(ctx, key) }); err != nil {
			w.Demote(err)
		}
	}
	if err := w.observe(backendLegacy, "delete", func() error { return w.legacy.Delete(ctx, key) }); err != nil {
		w.logger.Errorf(providers.TypeStorage, "Delete of %s failed: %s", key, err)
		return fmt.Errorf("%w: delete %s: %w", ErrWriteFailed, key, err)
	}
	return nil
}

// Clear empties the cache and both stores. It waits for in-flight operations
// and blocks new ones until done.
func (w *Wrapper) Clear(ctx context.Context) error {
	w.ensureInit(ctx)
	w.clearMu.Lock()
	defer w.clearMu.Unlock()

	w.cache.Clear()
	if w.Mode() == ModePrimaryActive {
		if err := w.observe(backendPrimary, "clear", func() error { return w.primary.Clear(ctx) }); err != nil {
			w.Demote(err)
		}
	}
	if err := w.observe(backendLegacy, "clear", func() error { return w.legacy.Clear(ctx) }); err != nil {
		w.logger.Errorf(providers.TypeStorage, "Clear failed: %s", err)
		return fmt.Errorf("%w: clear: %w", ErrWriteFailed, err)
	}
	w.logger.Infof(providers.TypeStorage, "All stored data cleared")
	return nil
}

func (w *Wrapper) Info(ctx context.Context) (Info, error) {
	w.ensureInit(ctx)
	info := Info{Mode: w.Mode().String(), PrimaryKeys: []string{}}

	if w.Mode() == ModePrimaryActive {
		keys, err := w.primary.ListKeys(ctx)
		if err != nil {
			return Info{}, err
		}
		info.PrimaryKeys = keys
	}
	keys, err := w.legacy.ListKeys(ctx)
	if err != nil {
		return Info{}, err
	}
	info.LegacyKeys = keys
	if info.LegacyBytes, err = w.legacy.Size(ctx); err != nil {
		return Info{}, err
	}
	return info, nil
}

// Export returns every record visible through the wrapper.
func (w *Wrapper) Export(ctx context.Context) (Export, error) {
	info, err := w.Info(ctx)
	if err != nil {
		return Export{}, err
	}
	keys := make(map[string]struct{}, len(info.PrimaryKeys)+len(info.LegacyKeys))
	for _, k := range info.PrimaryKeys {
		keys[k] = struct{}{}
	}
	for _, k := range info.LegacyKeys {
		keys[k] = struct{}{}
	}

	out := Export{ExportedAt: time.Now().UTC(), Records: make(map[string]string, len(keys))}
	for _, k := range slices.Sorted(maps.Keys(keys)) {
		value, found, err := w.GetItem(ctx, k)
		if err != nil {
			return Export{}, err
		}
		if found {
			out.Records[k] = value
		}
	}
	return out, nil
}

func (w *Wrapper) observe(backend, op string, fn func() error) error {
	start := time.Now()
	err := fn()
	w.metrics.ObserveStorageDuration(backend, op, time.Since(start))
	if err != nil {
		w.metrics.IncStorageErrors(backend, op)
	}
	return err
}
