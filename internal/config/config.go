package config

import (
	"os"
	"strconv"
	"time"

	"tablero/domain/commerce"
	"tablero/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Commerce CommerceConfig
	Cache    CacheConfig
}

// DatabaseConfig holds row-store connection settings
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// CommerceConfig holds sale registration settings
type CommerceConfig struct {
	// DefaultOrderStatus is applied to orders written by the sale flow.
	DefaultOrderStatus commerce.OrderStatus
}

// CacheConfig bounds the in-process dataset row cache
type CacheConfig struct {
	MaxEntries int
	TTL        time.Duration
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return nil, errors.New(errors.CodeValidation, "DATABASE_URL is required")
	}

	return &Config{
		Database: DatabaseConfig{URL: url},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Commerce: CommerceConfig{
			DefaultOrderStatus: loadDefaultOrderStatus(),
		},
		Cache: CacheConfig{
			MaxEntries: getEnvIntOrDefault("CACHE_MAX_ENTRIES", 32),
			TTL:        getEnvDurationOrDefault("CACHE_TTL", 15*time.Minute),
		},
	}, nil
}

// loadDefaultOrderStatus reads ORDER_DEFAULT_STATUS, falling back to
// "fulfilled" when it is unset or names an unknown state.
func loadDefaultOrderStatus() commerce.OrderStatus {
	status := commerce.OrderStatus(os.Getenv("ORDER_DEFAULT_STATUS"))
	if commerce.ValidOrderStatus(status) {
		return status
	}
	return commerce.StatusFulfilled
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
