// Package config loads server settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is used when JWT_SECRET is unset. It must not be used in production.
const DefaultJWTSecret = "dev-only-secret-change-in-prod"

// Config holds the full server configuration
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	NATS    NATSConfig
	Auth    AuthConfig
	CORS    CORSConfig
	Log     LogConfig

	// Location is the zone in which "today" is evaluated
	Location *time.Location
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host string
	Port int
}

// StorageConfig selects and configures the persistence backend
type StorageConfig struct {
	Type     string // file, memory or redis
	DataDir  string
	RedisURL string
}

// NATSConfig configures event publishing. An empty URL disables it.
type NATSConfig struct {
	URL string
}

// AuthConfig holds admin authentication settings
type AuthConfig struct {
	JWTSecret      string
	TokenTTL       time.Duration
	AdminUsername  string
	AdminPassword  string
	LoginRateRPS   float64
	LoginRateBurst int
}

// CORSConfig lists the origins allowed to call the API
type CORSConfig struct {
	AllowedOrigins []string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level slog.Level
}

// Load reads .env from the working directory when present, then the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only
func FromEnv() (*Config, error) {
	loc, err := time.LoadLocation(getEnv("TIMEZONE", "Local"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	level, err := parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("HOST", ""),
			Port: getInt("PORT", 3000),
		},
		Storage: StorageConfig{
			Type:     getEnv("STORAGE_TYPE", "file"),
			DataDir:  getEnv("DATA_DIR", "data"),
			RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		NATS: NATSConfig{
			URL: getEnv("NATS_URL", ""),
		},
		Auth: AuthConfig{
			JWTSecret:      getEnv("JWT_SECRET", DefaultJWTSecret),
			TokenTTL:       getDuration("TOKEN_TTL", 24*time.Hour),
			AdminUsername:  getEnv("ADMIN_USERNAME", "admin"),
			AdminPassword:  getEnv("ADMIN_PASSWORD", "admin123"),
			LoginRateRPS:   getFloat("LOGIN_RATE_RPS", 1),
			LoginRateBurst: getInt("LOGIN_RATE_BURST", 5),
		},
		CORS: CORSConfig{
			AllowedOrigins: getList("CORS_ORIGINS", []string{"*"}),
		},
		Log:      LogConfig{Level: level},
		Location: loc,
	}

	switch cfg.Storage.Type {
	case "file", "memory", "redis":
	default:
		return nil, fmt.Errorf("invalid STORAGE_TYPE %q: must be file, memory or redis", cfg.Storage.Type)
	}

	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
