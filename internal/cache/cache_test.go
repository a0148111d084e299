package cache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"

	"github.com/polkiloo/meetsum/internal/config"
)

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemory(func() time.Time { return now })

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("v"), got)

	now = now.Add(time.Minute)
	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok, "entry must expire at ttl")
}

func TestMemoryCacheIgnoresNonPositiveTTL(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(nil)
	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))
	_, ok, _ := c.Get(ctx, "k")
	require.False(t, ok)
}

func TestMemoryCacheCopiesValues(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(nil)
	value := []byte("abc")
	require.NoError(t, c.Set(ctx, "k", value, time.Minute))
	value[0] = 'x'

	got, _, _ := c.Get(ctx, "k")
	require.Equal(t, "abc", string(got))
}

func TestRedisCacheReportsConnectionErrors(t *testing.T) {
	r := &Redis{
		client:  redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1}),
		timeout: time.Second,
	}
	defer r.Close()

	_, ok, err := r.Get(context.Background(), "k")
	require.Error(t, err)
	require.False(t, ok)
	require.Error(t, r.Set(context.Background(), "k", []byte("v"), time.Minute))
	require.NoError(t, r.Set(context.Background(), "k", []byte("v"), 0), "non-positive ttl is a no-op")
}

func TestNewRedisFailsWithoutServer(t *testing.T) {
	_, err := NewRedis("127.0.0.1:1")
	require.Error(t, err)
}

func TestNewCacheSelection(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	t.Cleanup(func() { connectRedis = NewRedis })

	c := newCache(cacheParams{Config: &config.Config{}, Logger: logger, Lifecycle: fxtest.NewLifecycle(t)})
	require.IsType(t, &Memory{}, c)

	connectRedis = func(string) (*Redis, error) { return nil, errors.New("refused") }
	c = newCache(cacheParams{Config: &config.Config{RedisAddr: "cache:6379"}, Logger: logger, Lifecycle: fxtest.NewLifecycle(t)})
	require.IsType(t, &Memory{}, c, "falls back to memory when redis is down")

	connectRedis = func(addr string) (*Redis, error) {
		return &Redis{client: redis.NewClient(&redis.Options{Addr: addr}), timeout: time.Second}, nil
	}
	lc := fxtest.NewLifecycle(t)
	c = newCache(cacheParams{Config: &config.Config{RedisAddr: "cache:6379"}, Logger: logger, Lifecycle: lc})
	require.IsType(t, &Redis{}, c)
	lc.RequireStart()
	lc.RequireStop()
}
