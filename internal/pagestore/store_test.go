package pagestore

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeContract exercises the Get/Set behaviour every backend shares.
func storeContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, PageNumberKey)
	require.NoError(t, err)
	assert.False(t, ok, "fresh store should be empty")

	require.NoError(t, store.Set(ctx, PageNumberKey, 3))
	v, ok, err := store.Get(ctx, PageNumberKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	require.NoError(t, store.Set(ctx, PageNumberKey, 0))
	v, ok, err = store.Get(ctx, PageNumberKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, v)

	require.NoError(t, store.Set(ctx, "other", 9))
	v, _, err = store.Get(ctx, PageNumberKey)
	require.NoError(t, err)
	assert.Equal(t, 0, v, "keys are independent")
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	t.Parallel()

	t.Run("contract", func(t *testing.T) {
		t.Parallel()
		storeContract(t, NewFileStore(filepath.Join(t.TempDir(), "state.json")))
	})

	t.Run("persists across instances", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "nested", "state.json")
		ctx := context.Background()

		require.NoError(t, NewFileStore(path).Set(ctx, PageNumberKey, 4))

		v, ok, err := NewFileStore(path).Get(ctx, PageNumberKey)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 4, v)

		_, statErr := os.Stat(path + ".lock")
		assert.True(t, os.IsNotExist(statErr), "lock must be released")
	})

	t.Run("corrupted file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "state.json")
		require.NoError(t, os.WriteFile(path, []byte("{invalid json"), 0o600))
		store := NewFileStore(path)
		ctx := context.Background()

		_, _, err := store.Get(ctx, PageNumberKey)
		require.ErrorIs(t, err, ErrStoreCorrupted)

		require.NoError(t, store.Set(ctx, PageNumberKey, 2), "set replaces a corrupted file")
		v, ok, err := store.Get(ctx, PageNumberKey)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 2, v)
	})

	t.Run("wrong version", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "state.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"version": 99, "values": {}}`), 0o600))

		_, _, err := NewFileStore(path).Get(context.Background(), PageNumberKey)
		assert.ErrorIs(t, err, ErrStoreCorrupted)
	})

	t.Run("lock held by live process", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "state.json")
		lockPath := path + ".lock"
		require.NoError(t, os.WriteFile(lockPath, []byte(strconv.Itoa(os.Getpid())), 0o600))

		start := time.Now()
		err := NewFileStore(path).Set(context.Background(), PageNumberKey, 3)
		elapsed := time.Since(start)

		require.ErrorIs(t, err, ErrLockBusy)
		assert.Less(t, elapsed, 250*time.Millisecond, "a held lock must not stall the caller")

		_, statErr := os.Stat(lockPath)
		assert.NoError(t, statErr, "a live lock is left in place")
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		store := NewFileStore(filepath.Join(t.TempDir(), "state.json"))
		assert.Error(t, store.Set(ctx, PageNumberKey, 1))
	})
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()

	t.Run("contract", func(t *testing.T) {
		store, err := OpenSQLiteStore(ctx, filepath.Join(t.TempDir(), "state.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })
		storeContract(t, store)
	})

	t.Run("in memory", func(t *testing.T) {
		store, err := OpenSQLiteStore(ctx, ":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })
		storeContract(t, store)
	})

	t.Run("persists across connections", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "state.db")

		first, err := OpenSQLiteStore(ctx, path)
		require.NoError(t, err)
		require.NoError(t, first.Set(ctx, PageNumberKey, 7))
		require.NoError(t, first.Close())

		second, err := OpenSQLiteStore(ctx, path)
		require.NoError(t, err)
		t.Cleanup(func() { _ = second.Close() })

		v, ok, err := second.Get(ctx, PageNumberKey)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 7, v)
	})
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name     string
		backend  string
		path     string
		wantType any
		wantErr  error
	}{
		{name: "memory", backend: BackendMemory, wantType: &MemoryStore{}},
		{name: "file", backend: BackendFile, path: filepath.Join(dir, "s.json"), wantType: &FileStore{}},
		{name: "empty means file", backend: "", path: filepath.Join(dir, "e.json"), wantType: &FileStore{}},
		{name: "sqlite", backend: "SQLite", path: filepath.Join(dir, "s.db"), wantType: &SQLiteStore{}},
		{name: "unknown", backend: "redis", wantErr: ErrUnknownBackend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(ctx, tt.backend, tt.path)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			t.Cleanup(func() { _ = store.Close() })
			assert.IsType(t, tt.wantType, store)
		})
	}
}

func TestIsValidBackend(t *testing.T) {
	assert.True(t, IsValidBackend("memory"))
	assert.True(t, IsValidBackend("FILE"))
	assert.True(t, IsValidBackend("sqlite"))
	assert.False(t, IsValidBackend(""))
	assert.False(t, IsValidBackend("redis"))
}
