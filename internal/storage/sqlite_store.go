package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"shiftplan/internal/storage/migrations"
	"strings"
	"sync"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLiteStore is the structured local store: a single records table in an
// embedded SQLite database, opened lazily and kept open until Close.
type SQLiteStore struct {
	path string
	now  func() time.Time

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path, now: time.Now}
}

// Open connects and applies pending schema migrations. It is a no-op when
// the store is already open.
func (s *SQLiteStore) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return nil
	}

	if strings.TrimSpace(s.path) == "" {
		return fmt.Errorf("%w: storage path is required", ErrStoreUnavailable)
	}
	cleanPath := filepath.Clean(s.path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	dsn := "file:" + cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("%w: open sqlite db: %v", ErrStoreUnavailable, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("%w: ping sqlite db: %v", ErrStoreUnavailable, err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.FS)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("%w: migrations: %v", ErrStoreUnavailable, err)
	}
	if _, err := provider.Up(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("%w: run migrations: %v", ErrStoreUnavailable, err)
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) conn() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, fmt.Errorf("%w: store is not open", ErrStoreUnavailable)
	}
	return s.db, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	db, err := s.conn()
	if err != nil {
		return "", false, err
	}
	var value string
	err = db.QueryRowContext(ctx, `SELECT value FROM records WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: get %q: %v", ErrReadFailed, key, err)
	}
	return value, true, nil
}

func (s *SQLiteStore) Put(ctx context.Context, key, value string) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO records (key, value, timestamp) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, timestamp = excluded.timestamp`,
		key, value, s.now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("%w: put %q: %v", ErrWriteFailed, key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, `DELETE FROM records WHERE key = ?`, key); err != nil {
		return fmt.Errorf("%w: delete %q: %v", ErrWriteFailed, key, err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("%w: clear: %v", ErrWriteFailed, err)
	}
	return nil
}

func (s *SQLiteStore) ListKeys(ctx context.Context) ([]string, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `SELECT key FROM records ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("%w: list keys: %v", ErrReadFailed, err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("%w: list keys: %v", ErrReadFailed, err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list keys: %v", ErrReadFailed, err)
	}
	return keys, nil
}
