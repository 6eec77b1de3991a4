package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MARKET_API_URL", "http://localhost:5000")

	cfg, err := Load("api")
	require.NoError(t, err)

	assert.Equal(t, "api", cfg.RunMode)
	assert.Equal(t, "http://localhost:5000", cfg.MarketAPIURL)
	assert.Equal(t, "8080", cfg.ApiPort)
	assert.Equal(t, 1000, cfg.BulkFetchPageSize)
	assert.Equal(t, 9, cfg.CarsPerPage)
	assert.Equal(t, 300*time.Millisecond, cfg.SearchDebounce)
	assert.Equal(t, 4, cfg.CompareLimit)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, 30*24*time.Hour, cfg.RememberTTL)
	assert.Equal(t, 15*time.Minute, cfg.CatalogRefreshInterval)
}

func TestLoad_MissingUpstreamURL(t *testing.T) {
	// t.Setenv registers env cleanup even though the value is unset below.
	t.Setenv("MARKET_API_URL", "")
	require.NoError(t, os.Unsetenv("MARKET_API_URL"))

	_, err := Load("api")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MARKET_API_URL")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MARKET_API_URL", "http://market.internal")
	t.Setenv("CARS_PER_PAGE", "12")
	t.Setenv("COMPARE_LIMIT", "3")
	t.Setenv("SESSION_TTL_SECONDS", "120")

	cfg, err := Load("all")
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.CarsPerPage)
	assert.Equal(t, 3, cfg.CompareLimit)
	assert.Equal(t, 2*time.Minute, cfg.SessionTTL)
}

func TestLoad_InvalidNumber(t *testing.T) {
	t.Setenv("MARKET_API_URL", "http://localhost:5000")
	t.Setenv("CARS_PER_PAGE", "nine")

	_, err := Load("api")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CARS_PER_PAGE")
}
