package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestCache(t *testing.T) (*ResultCache, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	c, err := NewResultCacheWith(100, nil, clock)
	require.NoError(t, err)
	return c, clock
}

func TestGetMissing(t *testing.T) {
	c, _ := newTestCache(t)

	_, ok := c.Get(context.Background(), "tide:27.9:-82.8")
	assert.False(t, ok)
}

func TestSetAndGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "tide:27.9:-82.8", []byte("payload"), 6*time.Hour))

	got, ok := c.Get(ctx, "tide:27.9:-82.8")
	require.True(t, ok)
	assert.Equal(t, []byte("payload"), got)
}

func TestExpiredEntryIsMiss(t *testing.T) {
	c, clock := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "tide:27.9:-82.8", []byte("payload"), 6*time.Hour))

	clock.Advance(6*time.Hour - time.Second)
	_, ok := c.Get(ctx, "tide:27.9:-82.8")
	assert.True(t, ok, "entry still within TTL")

	clock.Advance(2 * time.Second)
	_, ok = c.Get(ctx, "tide:27.9:-82.8")
	assert.False(t, ok, "entry past TTL must read as missing")
}

func TestIndependentTTLsPerKey(t *testing.T) {
	c, clock := newTestCache(t)
	ctx := context.Background()

	key := "tide:27.9:-82.8"
	require.NoError(t, c.Set(ctx, key, []byte("fresh"), 6*time.Hour))
	require.NoError(t, c.Set(ctx, StaleKey(key), []byte("stale"), 24*time.Hour))

	clock.Advance(7 * time.Hour)

	_, ok := c.Get(ctx, key)
	assert.False(t, ok)

	got, ok := c.Get(ctx, StaleKey(key))
	require.True(t, ok)
	assert.Equal(t, []byte("stale"), got)
}

func TestLastWriterWins(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("first"), time.Hour))
	require.NoError(t, c.Set(ctx, "k", []byte("second"), time.Hour))

	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("second"), got)
}

func TestStats(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Hour))
	c.Get(ctx, "k")
	c.Get(ctx, "absent")

	stats := c.Stats()
	assert.Equal(t, uint64(1), stats["lru_hits"])
	assert.Equal(t, uint64(1), stats["lru_misses"])
}

func TestClear(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Hour))
	c.Clear()

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestEvictionAtCapacity(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	c, err := NewResultCacheWith(2, nil, clock)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Hour))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Hour))
	require.NoError(t, c.Set(ctx, "c", []byte("3"), time.Hour))

	_, ok := c.Get(ctx, "a")
	assert.False(t, ok, "oldest entry evicted at capacity")

	_, ok = c.Get(ctx, "c")
	assert.True(t, ok)
}
