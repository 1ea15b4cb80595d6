package storage

import "context"

// Backend is a key/value persistence target. A missing key is reported with
// found == false and a nil error.
type Backend interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	ListKeys(ctx context.Context) ([]string, error)
}

// PrimaryBackend is the structured store. It must be opened before use.
type PrimaryBackend interface {
	Backend
	Open(ctx context.Context) error
	Close() error
}

// LegacyBackend is the always-available backstop store.
type LegacyBackend interface {
	Backend
	Size(ctx context.Context) (int64, error)
}
