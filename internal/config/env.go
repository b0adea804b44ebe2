package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Server defaults
const (
	DefaultPort                   = 8080
	DefaultSessionExpirationHours = 24
	DefaultEvalDelay              = 1500 * time.Millisecond
	DefaultCacheTTL               = 15 * time.Minute
	DefaultLogLevel               = "info"
)

// SessionConfig holds configuration for session token generation and validation
type SessionConfig struct {
	Secret          string
	ExpirationHours int
}

// NewSessionConfig creates a session configuration from environment variables.
// It reads SESSION_SECRET (required) and SESSION_EXPIRATION_HOURS (default: 24).
func NewSessionConfig() (*SessionConfig, error) {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required but not set")
	}

	expirationHours, err := envInt("SESSION_EXPIRATION_HOURS", DefaultSessionExpirationHours)
	if err != nil {
		return nil, err
	}

	cfg := &SessionConfig{
		Secret:          secret,
		ExpirationHours: expirationHours,
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize validates the configuration
func (c *SessionConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("SESSION_SECRET cannot be empty")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("SESSION_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}

// ServerConfig holds the environment-driven settings of the HTTP server
type ServerConfig struct {
	Port        int
	DatabaseURL string // PostgreSQL; takes precedence over SQLitePath
	SQLitePath  string
	RedisURL    string
	EvalDelay   time.Duration
	CacheTTL    time.Duration
	LogLevel    string
	ChromePath  string
	Session     *SessionConfig
}

// LoadServerConfig reads the server configuration from the environment
func LoadServerConfig() (*ServerConfig, error) {
	session, err := NewSessionConfig()
	if err != nil {
		return nil, err
	}

	port, err := envInt("PORT", DefaultPort)
	if err != nil {
		return nil, err
	}
	evalDelay, err := envDuration("EVAL_DELAY", DefaultEvalDelay)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := envDuration("CACHE_TTL", DefaultCacheTTL)
	if err != nil {
		return nil, err
	}

	return &ServerConfig{
		Port:        port,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  os.Getenv("SQLITE_PATH"),
		RedisURL:    os.Getenv("REDIS_URL"),
		EvalDelay:   evalDelay,
		CacheTTL:    cacheTTL,
		LogLevel:    envString("LOG_LEVEL", DefaultLogLevel),
		ChromePath:  os.Getenv("CHROME_PATH"),
		Session:     session,
	}, nil
}

func envString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func envInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return n, nil
}

func envDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must be non-negative", key)
	}
	return d, nil
}
