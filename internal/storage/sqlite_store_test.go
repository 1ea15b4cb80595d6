package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLiteStore(t *testing.T, path string) *SQLiteStore {
	t.Helper()
	s := NewSQLiteStore(path)
	require.NoError(t, s.Open(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_CRUD(t *testing.T) {
	s := openSQLiteStore(t, filepath.Join(t.TempDir(), "shiftplan.db"))
	ctx := context.Background()

	_, found, err := s.Get(ctx, "schedule-7-2025")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Put(ctx, "schedule-7-2025", "v1"))
	require.NoError(t, s.Put(ctx, "schedule-7-2025", "v2"))
	require.NoError(t, s.Put(ctx, "employees", "[]"))

	v, found, err := s.Get(ctx, "schedule-7-2025")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v2", v)

	keys, err := s.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"employees", "schedule-7-2025"}, keys)

	require.NoError(t, s.Delete(ctx, "employees"))
	_, found, err = s.Get(ctx, "employees")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Clear(ctx))
	keys, err = s.ListKeys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestSQLiteStore_OpenIsIdempotentAndPersistent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shiftplan.db")
	ctx := context.Background()

	s := NewSQLiteStore(path)
	require.NoError(t, s.Open(ctx))
	require.NoError(t, s.Open(ctx))
	require.NoError(t, s.Put(ctx, "k", "v"))
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	reopened := openSQLiteStore(t, path)
	v, found, err := reopened.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", v)
}

func TestSQLiteStore_NotOpen(t *testing.T) {
	s := NewSQLiteStore(filepath.Join(t.TempDir(), "shiftplan.db"))
	ctx := context.Background()

	_, _, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, s.Put(ctx, "k", "v"), ErrStoreUnavailable)
	_, err = s.ListKeys(ctx)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestSQLiteStore_OpenUnavailable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	s := NewSQLiteStore(filepath.Join(blocker, "shiftplan.db"))
	assert.ErrorIs(t, s.Open(context.Background()), ErrStoreUnavailable)

	assert.ErrorIs(t, NewSQLiteStore("  ").Open(context.Background()), ErrStoreUnavailable)
}
