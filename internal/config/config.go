package config

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Environment string
	LogLevel    zerolog.Level
	HTTPTimeout time.Duration
	MaxRetries  uint64

	// Free station-based tide provider (NOAA-style).
	FreeBaseURL      string
	StationDirectory string

	// Metered global tide provider.
	MeteredBaseURL string
	MeteredAPIKey  string
	// MeteredMaxDays caps the day-span of metered requests; the provider
	// bills per call so requests must stay inside the token budget.
	MeteredMaxDays int

	// StationRadiusKm is the nearest-station cutoff for the free provider.
	StationRadiusKm float64
}

type Option func(*Config)

// WithEnvironment allows setting the environment
func WithEnvironment(env string) Option {
	return func(c *Config) {
		c.Environment = env
	}
}

// WithLogLevel allows setting the log level
func WithLogLevel(level string) Option {
	return func(c *Config) {
		parsedLevel, err := zerolog.ParseLevel(level)
		if err != nil {
			parsedLevel = zerolog.InfoLevel
		}
		c.LogLevel = parsedLevel
	}
}

// WithHTTPTimeout allows setting the HTTP timeout
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.HTTPTimeout = timeout
	}
}

// WithMeteredAPIKey sets the API token for the metered provider.
func WithMeteredAPIKey(key string) Option {
	return func(c *Config) {
		c.MeteredAPIKey = key
	}
}

// WithMeteredMaxDays overrides the metered provider's day-span cap.
func WithMeteredMaxDays(days int) Option {
	return func(c *Config) {
		if days > 0 {
			c.MeteredMaxDays = days
		}
	}
}

// WithStationRadiusKm overrides the nearest-station radius cutoff.
func WithStationRadiusKm(radius float64) Option {
	return func(c *Config) {
		if radius > 0 {
			c.StationRadiusKm = radius
		}
	}
}

// New creates a new configuration with default values
func New(opts ...Option) *Config {
	cfg := &Config{
		Environment:      "production",
		LogLevel:         zerolog.InfoLevel,
		HTTPTimeout:      10 * time.Second,
		MaxRetries:       3,
		FreeBaseURL:      "https://api.tidesandcurrents.noaa.gov",
		StationDirectory: "/mdapi/prod/webapi/tidepredstations.json",
		MeteredBaseURL:   "https://www.worldtides.info/api/v3",
		MeteredMaxDays:   2,
		StationRadiusKm:  100,
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// InitializeLogging sets up logging based on the configuration
func (c *Config) InitializeLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(c.LogLevel)

	// Setup console logger for development environments
	if c.Environment == "local" || c.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	cfg := New(
		WithEnvironment(getEnvOrDefault("ENV", "production")),
		WithLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
		WithHTTPTimeout(getDurationEnvOrDefault("HTTP_TIMEOUT", 10*time.Second)),
		WithMeteredAPIKey(os.Getenv("METERED_API_KEY")),
		WithMeteredMaxDays(getIntEnvOrDefault("METERED_MAX_DAYS", 2)),
		WithStationRadiusKm(getFloatEnvOrDefault("STATION_RADIUS_KM", 100)),
	)
	if url := os.Getenv("FREE_PROVIDER_URL"); url != "" {
		cfg.FreeBaseURL = url
	}
	if url := os.Getenv("METERED_PROVIDER_URL"); url != "" {
		cfg.MeteredBaseURL = url
	}
	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
