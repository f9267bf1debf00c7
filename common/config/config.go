package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all service configuration
type Config struct {
	Service   ServiceConfig
	Store     StoreConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Telemetry TelemetryConfig
}

// ServiceConfig holds service-specific settings
type ServiceConfig struct {
	Name        string
	Port        int
	Environment string
	LogLevel    string
	LogFormat   string
}

// StoreConfig holds settings for the durable key-value store
type StoreConfig struct {
	// Path is the on-disk location of the LevelDB database.
	// Ignored when InMemory is set (tests, throwaway environments).
	Path     string
	InMemory bool
}

// RedisConfig holds Redis connection settings (event stream, optional rate limiting)
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// RateLimitConfig holds per-creator request throttling settings
type RateLimitConfig struct {
	Backend string // "memory" or "redis"
	Limit   int64  // requests allowed per window per creator
	Window  time.Duration
}

// TelemetryConfig holds observability settings
type TelemetryConfig struct {
	EnablePprof bool
	PprofPort   int
}

// Load loads configuration from environment variables
func Load(serviceName string) (*Config, error) {
	cfg := &Config{
		Service: ServiceConfig{
			Name:        serviceName,
			Port:        getEnvInt("PORT", 8080),
			Environment: getEnv("ENVIRONMENT", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			LogFormat:   getEnv("LOG_FORMAT", "text"), // Default to text for development
		},
		Store: StoreConfig{
			Path:     getEnv("STORE_PATH", "data/registry.leveldb"),
			InMemory: getEnvBool("STORE_IN_MEMORY", false),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		RateLimit: RateLimitConfig{
			Backend: getEnv("RATE_LIMIT_BACKEND", "memory"),
			Limit:   int64(getEnvInt("RATE_LIMIT_PER_CREATOR", 10)),
			Window:  getEnvDuration("RATE_LIMIT_WINDOW", 60*time.Second),
		},
		Telemetry: TelemetryConfig{
			EnablePprof: getEnvBool("ENABLE_PPROF", false),
			PprofPort:   getEnvInt("PPROF_PORT", 6060),
		},
	}

	return cfg, cfg.Validate()
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.Service.Port < 1 || c.Service.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Service.Port)
	}

	if c.Store.Path == "" && !c.Store.InMemory {
		return fmt.Errorf("store path is required")
	}

	switch c.RateLimit.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown rate limit backend: %s", c.RateLimit.Backend)
	}

	if c.RateLimit.Backend == "redis" && !c.Redis.Enabled {
		return fmt.Errorf("redis rate limit backend requires REDIS_ENABLED=true")
	}

	if c.RateLimit.Limit < 1 {
		return fmt.Errorf("rate limit must be >= 1, got %d", c.RateLimit.Limit)
	}

	if c.RateLimit.Window < time.Second {
		return fmt.Errorf("rate limit window must be >= 1s, got %s", c.RateLimit.Window)
	}

	return nil
}

// RedisAddr returns the host:port address of the Redis server
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
