package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// FilterNoMatchPolicy controls what the directory filter returns when no
// entry matches the query.
type FilterNoMatchPolicy string

const (
	// NoMatchShowAll falls back to the full directory when nothing matches.
	NoMatchShowAll FilterNoMatchPolicy = "show_all"
	// NoMatchShowEmpty returns an empty view when nothing matches.
	NoMatchShowEmpty FilterNoMatchPolicy = "show_empty"
)

// SessionStoreKind selects the durable storage backend for session state.
type SessionStoreKind string

const (
	// SessionStoreFile persists the session in a local JSON file.
	SessionStoreFile SessionStoreKind = "file"
	// SessionStoreRedis persists the session in Redis.
	SessionStoreRedis SessionStoreKind = "redis"
)

// Config holds all configuration values
type Config struct {
	// Environment
	Environment string `json:"environment"`

	// Remote API configuration
	BaseURL     string        `json:"base_url"`
	HTTPTimeout time.Duration `json:"http_timeout"`

	// Session storage configuration
	SessionStore SessionStoreKind `json:"session_store"`
	SessionFile  string           `json:"session_file"`

	// Redis configuration (used when SessionStore is "redis")
	RedisURI      string        `json:"redis_uri"`
	RedisPassword string        `json:"redis_password"`
	RedisDB       int           `json:"redis_db"`
	RedisTTL      time.Duration `json:"redis_ttl"`

	// Directory filter behavior
	FilterNoMatch FilterNoMatchPolicy `json:"filter_no_match"`

	// Tracing configuration
	TracingEnabled  bool   `json:"tracing_enabled"`
	TracingEndpoint string `json:"tracing_endpoint"`
}

var (
	AppConfig *Config
)

// LoadConfig loads configuration from environment variables
func LoadConfig() error {
	httpTimeout, err := time.ParseDuration(getEnvOrDefault("MEDCLIENT_HTTP_TIMEOUT", "5s"))
	if err != nil {
		return fmt.Errorf("invalid MEDCLIENT_HTTP_TIMEOUT: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	redisTTL, err := time.ParseDuration(getEnvOrDefault("REDIS_TTL", "0"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_TTL: %w", err)
	}

	sessionStore := SessionStoreKind(getEnvOrDefault("SESSION_STORE", string(SessionStoreFile)))
	switch sessionStore {
	case SessionStoreFile, SessionStoreRedis:
	default:
		return fmt.Errorf("invalid SESSION_STORE: %q", sessionStore)
	}

	noMatch := FilterNoMatchPolicy(getEnvOrDefault("FILTER_NO_MATCH_POLICY", string(NoMatchShowAll)))
	switch noMatch {
	case NoMatchShowAll, NoMatchShowEmpty:
	default:
		return fmt.Errorf("invalid FILTER_NO_MATCH_POLICY: %q", noMatch)
	}

	AppConfig = &Config{
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),

		BaseURL:     getEnvOrDefault("MEDCLIENT_BASE_URL", "https://kenziemed-production.up.railway.app"),
		HTTPTimeout: httpTimeout,

		SessionStore: sessionStore,
		SessionFile:  os.Getenv("SESSION_FILE"),

		RedisURI:      getEnvOrDefault("REDIS_URI", "localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,
		RedisTTL:      redisTTL,

		FilterNoMatch: noMatch,

		TracingEnabled:  getEnvOrDefault("TRACING_ENABLED", "false") == "true",
		TracingEndpoint: getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),
	}

	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
