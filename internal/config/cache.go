package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// CacheConfig holds all cache-related configuration
type CacheConfig struct {
	// LRU cache settings
	ResultLRUSize int

	// Fresh entries answer lookups directly; stale entries are only
	// consulted once every provider has failed.
	FreshTTLHours int
	StaleTTLHours int

	// Coordinate quantization for cache keys, in decimal places.
	// One decimal place buckets coordinates into roughly 10km cells.
	CoordinateDecimals int

	// Station directory settings
	StationListTTLDays int

	// General settings
	EnableLRUCache    bool
	EnableDynamoCache bool
	DynamoTableName   string
}

const (
	// Default values
	defaultResultLRUSize      = 1000
	defaultFreshTTLHours      = 6
	defaultStaleTTLHours      = 24
	defaultCoordinateDecimals = 1
	defaultStationListTTLDays = 2
	defaultDynamoTableName    = "tidecast-results-cache"
)

// GetCacheConfig returns the cache configuration from environment variables or defaults
func GetCacheConfig() *CacheConfig {
	config := &CacheConfig{
		ResultLRUSize:      getEnvInt("CACHE_RESULT_LRU_SIZE", defaultResultLRUSize),
		FreshTTLHours:      getEnvInt("CACHE_FRESH_TTL_HOURS", defaultFreshTTLHours),
		StaleTTLHours:      getEnvInt("CACHE_STALE_TTL_HOURS", defaultStaleTTLHours),
		CoordinateDecimals: getEnvInt("CACHE_COORDINATE_DECIMALS", defaultCoordinateDecimals),
		StationListTTLDays: getEnvInt("CACHE_STATION_LIST_TTL_DAYS", defaultStationListTTLDays),
		EnableLRUCache:     getEnvBool("CACHE_ENABLE_LRU", true),
		EnableDynamoCache:  getEnvBool("CACHE_ENABLE_DYNAMO", false),
		DynamoTableName:    getEnvOrDefault("CACHE_TABLE_NAME", defaultDynamoTableName),
	}

	log.Debug().
		Int("ResultLRUSize", config.ResultLRUSize).
		Int("FreshTTLHours", config.FreshTTLHours).
		Int("StaleTTLHours", config.StaleTTLHours).
		Int("CoordinateDecimals", config.CoordinateDecimals).
		Int("StationListTTLDays", config.StationListTTLDays).
		Bool("EnableLRUCache", config.EnableLRUCache).
		Bool("EnableDynamoCache", config.EnableDynamoCache).
		Msg("Cache configuration loaded")

	return config
}

// Helper methods for the CacheConfig struct
func (c *CacheConfig) GetFreshTTL() time.Duration {
	return time.Duration(c.FreshTTLHours) * time.Hour
}

func (c *CacheConfig) GetStaleTTL() time.Duration {
	return time.Duration(c.StaleTTLHours) * time.Hour
}

func (c *CacheConfig) GetStationListTTL() time.Duration {
	return time.Duration(c.StationListTTLDays) * 24 * time.Hour
}

// Helper functions to get environment variables with defaults
func getEnvInt(key string, defaultVal int) int {
	if val, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
		log.Warn().Str("key", key).Msg("Invalid integer value in environment variable, using default")
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val, exists := os.LookupEnv(key); exists {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

func getIntEnvOrDefault(key string, defaultVal int) int {
	return getEnvInt(key, defaultVal)
}

func getFloatEnvOrDefault(key string, defaultVal float64) float64 {
	if val, exists := os.LookupEnv(key); exists {
		if floatVal, err := strconv.ParseFloat(val, 64); err == nil {
			return floatVal
		}
		log.Warn().Str("key", key).Msg("Invalid float value in environment variable, using default")
	}
	return defaultVal
}
