package notify

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return client, mr
}

func TestRedisStore_PushPop(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRedisStore(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Push(ctx, "s1", New("first", ColorSuccess, time.Second)))
	require.NoError(t, store.Push(ctx, "s1", New("second", ColorError, time.Second)))
	require.NoError(t, store.Push(ctx, "s2", New("other", ColorError, time.Second)))

	assert.True(t, mr.Exists(flashKeyPrefix+"s1"))
	assert.Equal(t, time.Minute, mr.TTL(flashKeyPrefix+"s1"))

	got, err := store.Pop(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Text)
	assert.Equal(t, "second", got[1].Text)
	assert.Equal(t, int64(1000), got[0].DurationMs)

	again, err := store.Pop(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, again)

	other, err := store.Pop(ctx, "s2")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestRedisStore_Expiry(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRedisStore(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Push(ctx, "s1", New("stale", ColorSuccess, 0)))
	mr.FastForward(2 * time.Minute)

	got, err := store.Pop(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisStore_Ping(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	store := NewRedisStore(client, time.Minute)

	assert.NoError(t, store.Ping(context.Background()))

	mr.Close()
	assert.Error(t, store.Ping(context.Background()))
}

func TestMemoryStore_PushPop(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Push(ctx, "s1", New("hello", ColorSuccess, 0)))

	got, err := store.Pop(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, DefaultDuration.Milliseconds(), got[0].DurationMs)

	got, err = store.Pop(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Push(ctx, "old", New("old", ColorSuccess, 0)))
	now = now.Add(2 * time.Minute)

	got, err := store.Pop(ctx, "old")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, store.Push(ctx, "a", New("a", ColorSuccess, 0)))
	now = now.Add(2 * time.Minute)
	require.NoError(t, store.Push(ctx, "b", New("b", ColorSuccess, 0)))

	store.mu.Lock()
	_, aKept := store.entries["a"]
	store.mu.Unlock()
	assert.False(t, aKept, "expired sessions are swept on push")
}
