package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Listing sources.
const (
	ListingSourceMemory   = "memory"
	ListingSourcePostgres = "postgres"
)

// Favorites persistence backends.
const (
	FavoritesBackendFile  = "file"
	FavoritesBackendRedis = "redis"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Listings  ListingsConfig
	Database  DatabaseConfig
	Favorites FavoritesConfig
	Redis     RedisConfig
	Inquiry   InquiryConfig
	CORS      CORSConfig
	Metrics   MetricsConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port     string
	Env      string
	LogLevel string
}

// ListingsConfig selects where listing and inquiry records come from.
type ListingsConfig struct {
	Source string
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	PoolMin  int
	PoolMax  int
}

// FavoritesConfig holds favorites persistence configuration.
type FavoritesConfig struct {
	Backend string
	Path    string
	Key     string
}

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// InquiryConfig holds rate limits for inquiry and contact submissions.
type InquiryConfig struct {
	RatePerMinute float64
	Burst         int
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	Origins []string
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying development defaults, then validates the result.
func Load() (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("LISTING_SOURCE", ListingSourceMemory)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "homescout")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_POOL_MIN", 2)
	v.SetDefault("DB_POOL_MAX", 10)
	v.SetDefault("FAVORITES_BACKEND", FavoritesBackendFile)
	v.SetDefault("FAVORITES_PATH", "./data")
	v.SetDefault("FAVORITES_KEY", "savedProperties")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("INQUIRY_RATE_PER_MINUTE", 6)
	v.SetDefault("INQUIRY_BURST", 3)
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("METRICS_ENABLED", true)

	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port:     v.GetString("PORT"),
			Env:      v.GetString("ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		Listings: ListingsConfig{
			Source: strings.ToLower(v.GetString("LISTING_SOURCE")),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			PoolMin:  v.GetInt("DB_POOL_MIN"),
			PoolMax:  v.GetInt("DB_POOL_MAX"),
		},
		Favorites: FavoritesConfig{
			Backend: strings.ToLower(v.GetString("FAVORITES_BACKEND")),
			Path:    v.GetString("FAVORITES_PATH"),
			Key:     v.GetString("FAVORITES_KEY"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Inquiry: InquiryConfig{
			RatePerMinute: v.GetFloat64("INQUIRY_RATE_PER_MINUTE"),
			Burst:         v.GetInt("INQUIRY_BURST"),
		},
		CORS: CORSConfig{
			Origins: parseOrigins(v.GetString("CORS_ORIGINS")),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present and valid.
// Database settings are only required when listings come from PostgreSQL.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Listings.Source {
	case ListingSourceMemory:
	case ListingSourcePostgres:
		if err := c.Database.Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("LISTING_SOURCE must be %q or %q, got %q",
			ListingSourceMemory, ListingSourcePostgres, c.Listings.Source)
	}

	switch c.Favorites.Backend {
	case FavoritesBackendFile:
		if c.Favorites.Path == "" {
			return fmt.Errorf("FAVORITES_PATH is required for the file backend")
		}
	case FavoritesBackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis backend")
		}
	default:
		return fmt.Errorf("FAVORITES_BACKEND must be %q or %q, got %q",
			FavoritesBackendFile, FavoritesBackendRedis, c.Favorites.Backend)
	}
	if c.Favorites.Key == "" {
		return fmt.Errorf("FAVORITES_KEY is required")
	}

	if c.Inquiry.RatePerMinute <= 0 {
		return fmt.Errorf("INQUIRY_RATE_PER_MINUTE must be positive")
	}
	if c.Inquiry.Burst < 1 {
		return fmt.Errorf("INQUIRY_BURST must be at least 1")
	}

	if len(c.CORS.Origins) == 0 {
		return fmt.Errorf("CORS_ORIGINS is required")
	}

	return nil
}

// Validate checks the PostgreSQL connection settings.
func (d DatabaseConfig) Validate() error {
	if d.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if d.Port == "" {
		return fmt.Errorf("DB_PORT is required")
	}
	if d.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if d.User == "" {
		return fmt.Errorf("DB_USER is required")
	}
	if d.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if d.PoolMin < 0 {
		return fmt.Errorf("DB_POOL_MIN must be non-negative")
	}
	if d.PoolMax < 1 {
		return fmt.Errorf("DB_POOL_MAX must be at least 1")
	}
	if d.PoolMin > d.PoolMax {
		return fmt.Errorf("DB_POOL_MIN must be less than or equal to DB_POOL_MAX")
	}
	return nil
}

// parseOrigins splits a comma-separated string of origins into a slice.
func parseOrigins(origins string) []string {
	if origins == "" {
		return []string{}
	}

	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
