package cache_test

import (
	"context"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/astro-web3/dashboard-authgate/internal/infra/cache"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPrefix = "dashboard:identity:"

func newTestStore(t *testing.T) (cache.IdentityStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client, err := cache.NewRedisClient("redis://"+mr.Addr()+"/0", 2)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return cache.NewIdentityStore(redis.UniversalClient(client), testPrefix), mr
}

func TestKey(t *testing.T) {
	key := cache.Key(testPrefix, "abc123")

	assert.True(t, strings.HasPrefix(key, testPrefix))
	assert.Len(t, strings.TrimPrefix(key, testPrefix), 64)
	assert.NotContains(t, key, "abc123")
	assert.Equal(t, key, cache.Key(testPrefix, "abc123"))
	assert.NotEqual(t, key, cache.Key(testPrefix, "abc124"))
}

func TestIdentityStore_Get(t *testing.T) {
	store, mr := newTestStore(t)
	require.NoError(t, mr.Set(cache.Key(testPrefix, "abc123"), `{"id":"1","role":"ADMIN"}`))

	raw, err := store.Get(context.Background(), "abc123")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","role":"ADMIN"}`, raw)
}

func TestIdentityStore_GetMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "unknown")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestIdentityStore_GetBackendError(t *testing.T) {
	store, mr := newTestStore(t)
	mr.SetError("ERR server failure")

	_, err := store.Get(context.Background(), "abc123")
	require.Error(t, err)
	assert.NotErrorIs(t, err, cache.ErrCacheMiss)
}

func TestIdentityStore_DeleteIsIdempotent(t *testing.T) {
	store, mr := newTestStore(t)
	key := cache.Key(testPrefix, "abc123")
	require.NoError(t, mr.Set(key, `{"role":"ADMIN"}`))

	require.NoError(t, store.Delete(context.Background(), "abc123"))
	assert.False(t, mr.Exists(key))
	require.NoError(t, store.Delete(context.Background(), "abc123"))

	_, err := store.Get(context.Background(), "abc123")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	_, err := cache.NewRedisClient("not-a-redis-url", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse redis URL")
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	_, err := cache.NewRedisClient("redis://127.0.0.1:1/0", 1)
	assert.Error(t, err)
}
