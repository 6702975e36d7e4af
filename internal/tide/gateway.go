package tide

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tidecast/tidecast/internal/cache"
	"github.com/tidecast/tidecast/internal/config"
	"github.com/tidecast/tidecast/internal/metrics"
	"github.com/tidecast/tidecast/internal/models"
)

const cacheKind = "tide"

// Gateway selects between the free and metered providers, normalizes their
// output and caches the result. Providers are attempted sequentially, never
// in parallel: the metered provider's budget must not be spent
// speculatively.
type Gateway struct {
	providers []Provider
	cache     *cache.ResultCache
	decimals  int
	freshTTL  time.Duration
	staleTTL  time.Duration
}

// NewGateway wires the provider chain in preference order.
func NewGateway(free, metered Provider, resultCache *cache.ResultCache, cacheCfg *config.CacheConfig) *Gateway {
	if cacheCfg == nil {
		cacheCfg = config.GetCacheConfig()
	}
	var providers []Provider
	if free != nil {
		providers = append(providers, free)
	}
	if metered != nil {
		providers = append(providers, metered)
	}
	return &Gateway{
		providers: providers,
		cache:     resultCache,
		decimals:  cacheCfg.CoordinateDecimals,
		freshTTL:  cacheCfg.GetFreshTTL(),
		staleTTL:  cacheCfg.GetStaleTTL(),
	}
}

// GetTideDataset returns tide extremes for the point, consulting the fresh
// cache, then each available provider in order, then the stale cache. It
// fails with ProviderUnavailableError only once every fallback is exhausted.
func (g *Gateway) GetTideDataset(ctx context.Context, point models.Coordinate, days int) (*models.TideDataset, error) {
	if err := point.Validate(); err != nil {
		return nil, err
	}

	key := cache.Key(cacheKind, point, g.decimals)

	if dataset := g.cached(ctx, key); dataset != nil {
		return dataset, nil
	}

	var lastErr error
	for _, provider := range g.providers {
		if !provider.Available(point) {
			log.Debug().Str("provider", provider.Name()).Msg("Provider not available for point")
			metrics.ProviderCallsTotal.WithLabelValues(provider.Name(), "skipped").Inc()
			continue
		}

		dataset, err := provider.FetchExtremes(ctx, point, days)
		if err != nil {
			log.Warn().Err(err).Str("provider", provider.Name()).Msg("Provider fetch failed")
			metrics.ProviderCallsTotal.WithLabelValues(provider.Name(), "error").Inc()
			lastErr = err
			continue
		}

		metrics.ProviderCallsTotal.WithLabelValues(provider.Name(), "ok").Inc()
		g.store(ctx, key, dataset)
		return dataset, nil
	}

	// All providers failed or were unavailable; try the stale entry.
	if dataset := g.cached(ctx, cache.StaleKey(key)); dataset != nil {
		log.Warn().Str("key", key).Msg("Serving stale tide dataset after provider failure")
		metrics.StaleServedTotal.Inc()
		dataset.Stale = true
		return dataset, nil
	}

	return nil, &ProviderUnavailableError{Err: lastErr}
}

func (g *Gateway) cached(ctx context.Context, key string) *models.TideDataset {
	payload, ok := g.cache.Get(ctx, key)
	if !ok {
		return nil
	}
	var dataset models.TideDataset
	if err := json.Unmarshal(payload, &dataset); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Discarding undecodable cache entry")
		return nil
	}
	return &dataset
}

// store writes both the fresh and the stale entry under the same coordinate
// key. Cache failures are logged, not surfaced; the fetch already succeeded.
func (g *Gateway) store(ctx context.Context, key string, dataset *models.TideDataset) {
	payload, err := json.Marshal(dataset)
	if err != nil {
		log.Warn().Err(err).Msg("Marshaling dataset for cache failed")
		return
	}
	if err := g.cache.Set(ctx, key, payload, g.freshTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Caching fresh dataset failed")
	}
	if err := g.cache.Set(ctx, cache.StaleKey(key), payload, g.staleTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Caching stale dataset failed")
	}
}
