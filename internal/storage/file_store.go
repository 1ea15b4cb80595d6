package storage

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	json "github.com/goccy/go-json"
)

type legacyFile struct {
	Records map[string]string `json:"records"`
}

// FileStore is the legacy key/value store: the whole map lives in memory and
// every mutation rewrites one zstd-compressed JSON file atomically.
type FileStore struct {
	path       string
	compressor Compressor

	mu     sync.RWMutex
	data   map[string]string
	loaded bool
}

func NewFileStore(path string, compressor Compressor) *FileStore {
	return &FileStore{path: path, compressor: compressor}
}

func (f *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := f.ensureLoaded(); err != nil {
		return "", false, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	value, ok := f.data[key]
	return value, ok, nil
}

func (f *FileStore) Put(ctx context.Context, key, value string) error {
	return f.mutate(func(data map[string]string) { data[key] = value })
}

func (f *FileStore) Delete(ctx context.Context, key string) error {
	return f.mutate(func(data map[string]string) { delete(data, key) })
}

func (f *FileStore) Clear(ctx context.Context) error {
	return f.mutate(func(data map[string]string) { clear(data) })
}

func (f *FileStore) ListKeys(ctx context.Context) ([]string, error) {
	if err := f.ensureLoaded(); err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Sorted(maps.Keys(f.data)), nil
}

// Size is the number of bytes the store occupies on disk.
func (f *FileStore) Size(ctx context.Context) (int64, error) {
	info, err := os.Stat(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrReadFailed, err)
	}
	return info.Size(), nil
}

func (f *FileStore) ensureLoaded() error {
	f.mu.RLock()
	loaded := f.loaded
	f.mu.RUnlock()
	if loaded {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loadLocked()
}

func (f *FileStore) loadLocked() error {
	if f.loaded {
		return nil
	}
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		f.data = make(map[string]string)
		f.loaded = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadFailed, err)
	}

	raw, err := f.compressor.Decompress(data)
	if err != nil {
		return fmt.Errorf("%w: decompress %s: %v", ErrReadFailed, f.path, err)
	}
	var file legacyFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrReadFailed, f.path, err)
	}
	if file.Records == nil {
		file.Records = make(map[string]string)
	}
	f.data = file.Records
	f.loaded = true
	return nil
}

func (f *FileStore) mutate(apply func(map[string]string)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.loadLocked(); err != nil {
		return err
	}

	next := maps.Clone(f.data)
	apply(next)
	if err := f.saveLocked(next); err != nil {
		return err
	}
	f.data = next
	return nil
}

func (f *FileStore) saveLocked(records map[string]string) error {
	jsonData, err := json.Marshal(legacyFile{Records: records})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	tmpFile := f.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	if err := os.Rename(tmpFile, f.path); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

func (f *FileStore) Close() {
	f.compressor.Close()
}
