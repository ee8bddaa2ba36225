package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisSlotStore(t *testing.T, ttl time.Duration) (*RedisSlotStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisSlotStore(client, ttl), mr
}

func TestRedisSlotStore_SaveAndLoad(t *testing.T) {
	store, _ := newTestRedisSlotStore(t, 0)
	ctx := context.Background()

	snapshot := []byte(`{"items":[],"isOpen":true}`)
	require.NoError(t, store.Save(ctx, "kam-cart:redis-session", snapshot))

	loaded, err := store.Load(ctx, "kam-cart:redis-session")
	require.NoError(t, err)
	assert.Equal(t, snapshot, loaded)
}

func TestRedisSlotStore_LoadMissingKey(t *testing.T) {
	store, _ := newTestRedisSlotStore(t, 0)

	_, err := store.Load(context.Background(), "kam-cart:redis-missing")
	assert.True(t, errors.Is(err, ErrSlotNotFound))
}

func TestRedisSlotStore_Delete(t *testing.T) {
	store, _ := newTestRedisSlotStore(t, 0)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "kam-cart:redis-delete", []byte(`{}`)))
	require.NoError(t, store.Delete(ctx, "kam-cart:redis-delete"))

	_, err := store.Load(ctx, "kam-cart:redis-delete")
	assert.True(t, errors.Is(err, ErrSlotNotFound))
}

func TestRedisSlotStore_SlotsExpireAfterTTL(t *testing.T) {
	store, mr := newTestRedisSlotStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "kam-cart:redis-ttl", []byte(`{}`)))

	mr.FastForward(2 * time.Hour)

	_, err := store.Load(ctx, "kam-cart:redis-ttl")
	assert.True(t, errors.Is(err, ErrSlotNotFound))
}
