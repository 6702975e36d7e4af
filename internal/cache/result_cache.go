package cache

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"

	"github.com/tidecast/tidecast/internal/config"
	"github.com/tidecast/tidecast/internal/metrics"
)

// ResultCache is a TTL key-value cache with an in-process LRU layer and an
// optional DynamoDB persisted layer. Expired entries are treated as misses
// and are safe to overwrite; concurrent writes under the same key are
// last-writer-wins.
type ResultCache struct {
	lru    *lru.Cache[string, *Entry]
	dynamo *DynamoStore
	clock  Clock

	lruHits      uint64
	lruMisses    uint64
	dynamoHits   uint64
	dynamoMisses uint64
}

// NewResultCache creates a cache from configuration, attaching the DynamoDB
// layer only when enabled.
func NewResultCache(ctx context.Context, cfg *config.CacheConfig) (*ResultCache, error) {
	if cfg == nil {
		cfg = config.GetCacheConfig()
	}

	lruCache, err := lru.New[string, *Entry](cfg.ResultLRUSize)
	if err != nil {
		return nil, fmt.Errorf("creating LRU cache: %w", err)
	}

	cache := &ResultCache{
		lru:   lruCache,
		clock: NewSystemClock(),
	}

	if cfg.EnableDynamoCache {
		client, err := NewDynamoClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("creating DynamoDB client: %w", err)
		}
		cache.dynamo = NewDynamoStore(client, cfg.DynamoTableName)
	}

	return cache, nil
}

// NewResultCacheWith wires the cache with explicit collaborators, used by
// tests and by callers that manage their own DynamoDB client.
func NewResultCacheWith(size int, dynamo *DynamoStore, clock Clock) (*ResultCache, error) {
	lruCache, err := lru.New[string, *Entry](size)
	if err != nil {
		return nil, fmt.Errorf("creating LRU cache: %w", err)
	}
	if clock == nil {
		clock = NewSystemClock()
	}
	return &ResultCache{
		lru:    lruCache,
		dynamo: dynamo,
		clock:  clock,
	}, nil
}

// Get returns the payload under key, or false when the key is missing or
// expired. A hit in the persisted layer repopulates the LRU layer with the
// remaining TTL.
func (c *ResultCache) Get(ctx context.Context, key string) ([]byte, bool) {
	now := c.clock.Now().Unix()

	if entry, ok := c.lru.Get(key); ok {
		if now < entry.ExpiresAt {
			c.lruHits++
			metrics.CacheOpsTotal.WithLabelValues("lru", "hit").Inc()
			return entry.Payload, true
		}
		// Entry expired, remove it
		c.lru.Remove(key)
	}
	c.lruMisses++
	metrics.CacheOpsTotal.WithLabelValues("lru", "miss").Inc()

	if c.dynamo == nil {
		return nil, false
	}

	entry, err := c.dynamo.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Persisted cache read failed")
		return nil, false
	}
	if entry == nil || now >= entry.ExpiresAt {
		c.dynamoMisses++
		metrics.CacheOpsTotal.WithLabelValues("dynamo", "miss").Inc()
		return nil, false
	}

	c.dynamoHits++
	metrics.CacheOpsTotal.WithLabelValues("dynamo", "hit").Inc()
	c.lru.Add(key, entry)
	return entry.Payload, true
}

// Set stores the payload under key with the given TTL in both layers.
func (c *ResultCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	now := c.clock.Now()
	entry := &Entry{
		Key:         key,
		Payload:     payload,
		LastUpdated: now.Unix(),
		ExpiresAt:   now.Add(ttl).Unix(),
	}

	c.lru.Add(key, entry)

	if c.dynamo != nil {
		if err := c.dynamo.Put(ctx, *entry); err != nil {
			return fmt.Errorf("saving entry to persisted cache: %w", err)
		}
	}

	return nil
}

// Stats returns hit/miss counts per layer.
func (c *ResultCache) Stats() map[string]uint64 {
	return map[string]uint64{
		"lru_hits":      c.lruHits,
		"lru_misses":    c.lruMisses,
		"dynamo_hits":   c.dynamoHits,
		"dynamo_misses": c.dynamoMisses,
	}
}

// Clear removes all entries from the LRU layer.
func (c *ResultCache) Clear() {
	c.lru.Purge()
}
