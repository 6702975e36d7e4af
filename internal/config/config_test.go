package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "https://api.tidesandcurrents.noaa.gov", cfg.FreeBaseURL)
	assert.Equal(t, "https://www.worldtides.info/api/v3", cfg.MeteredBaseURL)
	assert.Equal(t, 2, cfg.MeteredMaxDays)
	assert.Equal(t, 100.0, cfg.StationRadiusKm)
}

func TestOptions(t *testing.T) {
	cfg := New(
		WithEnvironment("local"),
		WithLogLevel("debug"),
		WithHTTPTimeout(3*time.Second),
		WithMeteredAPIKey("secret"),
		WithMeteredMaxDays(5),
		WithStationRadiusKm(50),
	)

	assert.Equal(t, "local", cfg.Environment)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "secret", cfg.MeteredAPIKey)
	assert.Equal(t, 5, cfg.MeteredMaxDays)
	assert.Equal(t, 50.0, cfg.StationRadiusKm)
}

func TestInvalidLogLevelFallsBack(t *testing.T) {
	cfg := New(WithLogLevel("shouting"))
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
}

func TestOptionGuards(t *testing.T) {
	cfg := New(WithMeteredMaxDays(0), WithStationRadiusKm(-1))
	assert.Equal(t, 2, cfg.MeteredMaxDays)
	assert.Equal(t, 100.0, cfg.StationRadiusKm)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("METERED_API_KEY", "tok-123")
	t.Setenv("METERED_MAX_DAYS", "4")
	t.Setenv("STATION_RADIUS_KM", "250")
	t.Setenv("FREE_PROVIDER_URL", "http://localhost:9090")
	t.Setenv("METERED_PROVIDER_URL", "http://localhost:9091")

	cfg := LoadFromEnv()

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, zerolog.WarnLevel, cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "tok-123", cfg.MeteredAPIKey)
	assert.Equal(t, 4, cfg.MeteredMaxDays)
	assert.Equal(t, 250.0, cfg.StationRadiusKm)
	assert.Equal(t, "http://localhost:9090", cfg.FreeBaseURL)
	assert.Equal(t, "http://localhost:9091", cfg.MeteredBaseURL)
}

func TestLoadFromEnvBadDuration(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "not-a-duration")

	cfg := LoadFromEnv()
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
}

func TestGetCacheConfigDefaults(t *testing.T) {
	cfg := GetCacheConfig()

	assert.Equal(t, 1000, cfg.ResultLRUSize)
	assert.Equal(t, 6, cfg.FreshTTLHours)
	assert.Equal(t, 24, cfg.StaleTTLHours)
	assert.Equal(t, 1, cfg.CoordinateDecimals)
	assert.Equal(t, 2, cfg.StationListTTLDays)
	assert.True(t, cfg.EnableLRUCache)
	assert.False(t, cfg.EnableDynamoCache)
	assert.Equal(t, "tidecast-results-cache", cfg.DynamoTableName)
}

func TestGetCacheConfigFromEnv(t *testing.T) {
	t.Setenv("CACHE_RESULT_LRU_SIZE", "50")
	t.Setenv("CACHE_FRESH_TTL_HOURS", "2")
	t.Setenv("CACHE_STALE_TTL_HOURS", "12")
	t.Setenv("CACHE_COORDINATE_DECIMALS", "2")
	t.Setenv("CACHE_ENABLE_DYNAMO", "true")

	cfg := GetCacheConfig()

	assert.Equal(t, 50, cfg.ResultLRUSize)
	assert.Equal(t, 2*time.Hour, cfg.GetFreshTTL())
	assert.Equal(t, 12*time.Hour, cfg.GetStaleTTL())
	assert.Equal(t, 2, cfg.CoordinateDecimals)
	assert.True(t, cfg.EnableDynamoCache)
}

func TestGetCacheConfigInvalidInt(t *testing.T) {
	t.Setenv("CACHE_FRESH_TTL_HOURS", "soon")

	cfg := GetCacheConfig()
	assert.Equal(t, 6, cfg.FreshTTLHours)
}
