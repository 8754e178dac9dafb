package cache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) *RedisStore {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client, time.Hour)
}

func TestRedisStore_SetGet(t *testing.T) {
	store := newRedisStore(t)

	_, ok, err := store.Get(t.Context(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(t.Context(), "k1", "v1"))

	value, ok, err := store.Get(t.Context(), "k1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v1", value)
}

func TestRedisStore_Delete(t *testing.T) {
	store := newRedisStore(t)

	require.NoError(t, store.Set(t.Context(), "k1", "v1"))
	require.NoError(t, store.Delete(t.Context(), "k1"))

	_, ok, err := store.Get(t.Context(), "k1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_KeysByPrefix(t *testing.T) {
	store := newRedisStore(t)

	require.NoError(t, store.Set(t.Context(), "flowform:results:op:a", "1"))
	require.NoError(t, store.Set(t.Context(), "flowform:results:op:b", "2"))
	require.NoError(t, store.Set(t.Context(), "unrelated:key", "3"))

	keys, err := store.Keys(t.Context(), "flowform:results:op:")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"flowform:results:op:a", "flowform:results:op:b"}, keys)
}
