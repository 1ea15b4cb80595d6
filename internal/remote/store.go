// Package remote backs the server-side schedule endpoint, a persistence
// path separate from the local storage wrapper.
package remote

import (
	"context"
	"fmt"
	"shiftplan/internal/providers"
	"shiftplan/internal/storage"
	"shiftplan/internal/structures"
)

type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// NewStore builds the backend selected by remote.backend. The returned
// cleanup releases it.
func NewStore(conf *structures.Config, logger providers.Logger) (Store, func(), error) {
	switch conf.Remote.Backend {
	case "s3":
		s, err := NewS3Store(context.Background(), conf.Remote)
		if err != nil {
			return nil, nil, err
		}
		logger.Infof(providers.TypeApp, "Remote schedules stored in bucket %s", conf.Remote.Bucket)
		return s, func() {}, nil
	case "file", "":
		compressor, err := storage.NewZstdCompressor()
		if err != nil {
			return nil, nil, err
		}
		fs := storage.NewFileStore(conf.Remote.FilePath, compressor)
		logger.Infof(providers.TypeApp, "Remote schedules stored in %s", conf.Remote.FilePath)
		return fs, fs.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown remote backend %q", conf.Remote.Backend)
}
