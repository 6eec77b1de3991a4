package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// Environment
	RunMode string // Set via flag, not env

	// Upstream marketplace API
	MarketAPIURL      string
	MarketAPITimeout  time.Duration
	BulkFetchPageSize int

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Server
	ApiPort string

	// Browse pipeline
	CarsPerPage    int
	SearchDebounce time.Duration
	CompareLimit   int

	// Sessions
	SessionTTL  time.Duration // token lifetime without "remember me"
	RememberTTL time.Duration // token lifetime with "remember me"

	// Catalog refresh
	CatalogRefreshInterval time.Duration

	// Rate Limiting Defaults
	RateLimitBucketSize int
	RateLimitRefillRate int // tokens per second
}

// Load configuration from environment variables.
// RunMode needs to be passed in as it comes from command-line flags.
func Load(runMode string) (*Config, error) {
	// Load .env file, ignoring errors if it doesn't exist
	godotenv.Load()

	cfg := &Config{
		RunMode: runMode, // Set from flag
	}

	var err error

	// Helper function to get env var or default
	getEnv := func(key, defaultValue string) string {
		if value, exists := os.LookupEnv(key); exists {
			return value
		}
		return defaultValue
	}

	// Helper function to get required env var
	getRequiredEnv := func(key string) (string, error) {
		value, exists := os.LookupEnv(key)
		if !exists {
			return "", fmt.Errorf("missing required environment variable: %s", key)
		}
		return value, nil
	}

	cfg.MarketAPIURL, err = getRequiredEnv("MARKET_API_URL")
	if err != nil {
		return nil, err
	}
	cfg.RedisAddr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.ApiPort = getEnv("API_PORT", "8080")

	cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	apiTimeoutSeconds, err := strconv.ParseInt(getEnv("MARKET_API_TIMEOUT_SECONDS", "15"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MARKET_API_TIMEOUT_SECONDS: %w", err)
	}
	cfg.MarketAPITimeout = time.Duration(apiTimeoutSeconds) * time.Second

	cfg.BulkFetchPageSize, err = strconv.Atoi(getEnv("BULK_FETCH_SIZE", "1000"))
	if err != nil {
		return nil, fmt.Errorf("invalid BULK_FETCH_SIZE: %w", err)
	}

	cfg.CarsPerPage, err = strconv.Atoi(getEnv("CARS_PER_PAGE", "9"))
	if err != nil {
		return nil, fmt.Errorf("invalid CARS_PER_PAGE: %w", err)
	}

	debounceMs, err := strconv.ParseInt(getEnv("SEARCH_DEBOUNCE_MS", "300"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid SEARCH_DEBOUNCE_MS: %w", err)
	}
	cfg.SearchDebounce = time.Duration(debounceMs) * time.Millisecond

	cfg.CompareLimit, err = strconv.Atoi(getEnv("COMPARE_LIMIT", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid COMPARE_LIMIT: %w", err)
	}

	sessionTTLSeconds, err := strconv.ParseInt(getEnv("SESSION_TTL_SECONDS", "3600"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL_SECONDS: %w", err)
	}
	cfg.SessionTTL = time.Duration(sessionTTLSeconds) * time.Second

	rememberTTLDays, err := strconv.ParseInt(getEnv("REMEMBER_TTL_DAYS", "30"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid REMEMBER_TTL_DAYS: %w", err)
	}
	cfg.RememberTTL = time.Duration(rememberTTLDays) * 24 * time.Hour

	refreshSeconds, err := strconv.ParseInt(getEnv("CATALOG_REFRESH_SECONDS", "900"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid CATALOG_REFRESH_SECONDS: %w", err)
	}
	cfg.CatalogRefreshInterval = time.Duration(refreshSeconds) * time.Second

	// Rate Limiting
	cfg.RateLimitBucketSize, err = strconv.Atoi(getEnv("RATE_LIMIT_BUCKET_SIZE", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BUCKET_SIZE: %w", err)
	}
	cfg.RateLimitRefillRate, err = strconv.Atoi(getEnv("RATE_LIMIT_REFILL_RATE", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_REFILL_RATE: %w", err)
	}

	return cfg, nil
}
