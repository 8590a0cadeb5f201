package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AssiaOU26/Cars-front/internal/adapters/storage"
	"github.com/AssiaOU26/Cars-front/internal/config"
)

func TestFileStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "storage.json")

	store, err := storage.NewFileStorage(path)
	require.NoError(t, err)
	require.NoError(t, store.Ping(ctx))

	_, ok, err := store.Get(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "token", "abc"))
	require.NoError(t, store.Set(ctx, "onboarding.completed", "true"))

	reopened, err := storage.NewFileStorage(path)
	require.NoError(t, err)
	v, ok, err := reopened.Get(ctx, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	require.NoError(t, reopened.Remove(ctx, "token"))
	require.NoError(t, reopened.Remove(ctx, "token"))
	_, ok, _ = store.Get(ctx, "token")
	assert.False(t, ok)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStorage_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	store, err := storage.NewFileStorage(path)
	require.NoError(t, err)

	_, ok, err := store.Get(context.Background(), "token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStorage_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o600))

	store, err := storage.NewFileStorage(path)
	require.NoError(t, err)

	_, _, err = store.Get(context.Background(), "token")
	assert.Error(t, err)
	assert.Error(t, store.Set(context.Background(), "token", "x"))
}

func TestOpen_SelectsDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")

	store, closer, err := storage.Open(context.Background(), &config.Config{StorageDriver: config.StorageFile, StoragePath: path})
	require.NoError(t, err)
	defer closer()
	assert.IsType(t, &storage.FileStorage{}, store)

	_, _, err = storage.Open(context.Background(), &config.Config{StorageDriver: "memcached"})
	assert.Error(t, err)
}
