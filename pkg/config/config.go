// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the full configuration for the dashboard service.
type Config struct {
	Server  ServerConfig
	Source  SourceConfig
	Redis   RedisConfig
	Display DisplayConfig
}

type ServerConfig struct {
	Host         string `validate:"required"`
	Port         string `validate:"required,numeric"`
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	// CORSAllowedOrigins restricts cross-origin callers. Empty means
	// any origin is allowed.
	CORSAllowedOrigins []string
}

// SourceConfig locates the transactions CSV. Location is either an
// http(s) URL or a local file path.
type SourceConfig struct {
	Location     string `validate:"required"`
	FetchTimeout time.Duration
}

// RedisConfig configures the optional summary cache. An empty Addr
// disables caching entirely.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

// DisplayConfig holds presentation-layer settings. Locale drives the
// number grouping of the total-amount card; it is a display concern, not
// part of the data contract.
type DisplayConfig struct {
	Locale         string `validate:"required"`
	CurrencySymbol string `validate:"required"`
}

// Load reads configuration from environment variables, applying
// defaults for everything but the CSV location.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),

			CORSAllowedOrigins: getListEnv("CORS_ALLOWED_ORIGINS"),
		},
		Source: SourceConfig{
			Location:     getEnv("CSV_SOURCE", "transactions.csv"),
			FetchTimeout: getDurationEnv("CSV_FETCH_TIMEOUT", 30*time.Second),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
			CacheTTL: getDurationEnv("SUMMARY_CACHE_TTL", time.Hour),
		},
		Display: DisplayConfig{
			Locale:         getEnv("DISPLAY_LOCALE", "en-US"),
			CurrencySymbol: getEnv("DISPLAY_CURRENCY_SYMBOL", "$"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getListEnv(key string) []string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
