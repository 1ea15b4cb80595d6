package storage

import "errors"

var (
	ErrStoreUnavailable   = errors.New("storage backend unavailable")
	ErrReadFailed         = errors.New("storage read failed")
	ErrWriteFailed        = errors.New("storage write failed")
	ErrVerificationFailed = errors.New("storage verification failed")
)
