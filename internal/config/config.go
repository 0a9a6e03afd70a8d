package config

import (
	"os"
	"strconv"
	"time"

	"invdash/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Source SourceConfig
	Cache  CacheConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// SourceConfig holds settings for the spreadsheet data source. Either both
// CSV export URLs are set, or a workbook file with two worksheet names.
type SourceConfig struct {
	StockURL         string
	NewArrivalsURL   string
	WorkbookFile     string
	StockSheet       string
	NewArrivalsSheet string
	FetchTimeout     time.Duration
}

// CacheConfig holds load-result caching settings
type CacheConfig struct {
	TTL time.Duration
}

// UsesWorkbook reports whether the workbook transport is configured.
// A configured workbook takes precedence over CSV URLs.
func (c SourceConfig) UsesWorkbook() bool {
	return c.WorkbookFile != ""
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: loadServerConfig(),
		Source: loadSourceConfig(),
		Cache:  loadCacheConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "debug"),
	}
}

func loadSourceConfig() SourceConfig {
	return SourceConfig{
		StockURL:         getEnvOrDefault("STOCK_CSV_URL", ""),
		NewArrivalsURL:   getEnvOrDefault("NEW_ARRIVALS_CSV_URL", ""),
		WorkbookFile:     getEnvOrDefault("WORKBOOK_FILE", ""),
		StockSheet:       getEnvOrDefault("STOCK_SHEET", "Warehouse Stock"),
		NewArrivalsSheet: getEnvOrDefault("NEW_ARRIVALS_SHEET", "New Arrival"),
		FetchTimeout:     getEnvDurationOrDefault("FETCH_TIMEOUT", 30*time.Second),
	}
}

func loadCacheConfig() CacheConfig {
	return CacheConfig{
		TTL: getEnvDurationOrDefault("CACHE_TTL", 10*time.Minute),
	}
}

func validateConfig(config *Config) error {
	src := config.Source
	if src.UsesWorkbook() {
		if src.StockSheet == "" || src.NewArrivalsSheet == "" {
			return errors.ConfigInvalid("STOCK_SHEET and NEW_ARRIVALS_SHEET are required with WORKBOOK_FILE")
		}
		return nil
	}
	if src.StockURL == "" || src.NewArrivalsURL == "" {
		return errors.ConfigInvalid("either WORKBOOK_FILE or both STOCK_CSV_URL and NEW_ARRIVALS_CSV_URL are required")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
