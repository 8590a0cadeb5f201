package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AssiaOU26/Cars-front/internal/adapters/storage"
	"github.com/AssiaOU26/Cars-front/test/mocks"
)

func TestRedisStorage_PrefixesKeys(t *testing.T) {
	ctx := context.Background()
	client := mocks.NewMockRedisClient()
	store := storage.NewRedisStorage(client, "cars:")

	require.NoError(t, store.Set(ctx, "token", "abc"))
	assert.True(t, client.HasKey("cars:token"))

	v, ok, err := store.Get(ctx, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	require.NoError(t, store.Remove(ctx, "token"))
	assert.False(t, client.HasKey("cars:token"))
	assert.Equal(t, []string{"cars:token", "cars:token", "cars:token"}, client.Touched)
}

func TestRedisStorage_MissingKeyIsNotAnError(t *testing.T) {
	store := storage.NewRedisStorage(mocks.NewMockRedisClient(), "")

	for i := 0; i < 5; i++ {
		_, ok, err := store.Get(context.Background(), "absent")
		require.NoError(t, err)
		assert.False(t, ok)
	}
	assert.Equal(t, gobreaker.StateClosed, store.BreakerState())
}

func TestRedisStorage_BreakerOpensOnFailures(t *testing.T) {
	client := mocks.NewMockRedisClient()
	client.GetError = errors.New("connection refused")
	store := storage.NewRedisStorage(client, "")

	for i := 0; i < 3; i++ {
		_, _, err := store.Get(context.Background(), "token")
		assert.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, store.BreakerState())

	client.GetError = nil
	_, _, err := store.Get(context.Background(), "token")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestRedisStorage_Ping(t *testing.T) {
	client := mocks.NewMockRedisClient()
	store := storage.NewRedisStorage(client, "")

	assert.NoError(t, store.Ping(context.Background()))
	client.PingError = errors.New("down")
	assert.Error(t, store.Ping(context.Background()))
}
