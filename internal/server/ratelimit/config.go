package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variables read by LoadConfig
const (
	EnvEnabled         = "RATE_LIMIT_ENABLED"
	EnvDefaultLimit    = "RATE_LIMIT_DEFAULT_LIMIT"
	EnvDefaultWindow   = "RATE_LIMIT_DEFAULT_WINDOW"
	EnvCleanupInterval = "RATE_LIMIT_CLEANUP_INTERVAL"
	EnvIdleTimeout     = "RATE_LIMIT_IDLE_TIMEOUT"
	EnvWhitelist       = "RATE_LIMIT_WHITELIST"
	EnvBlacklist       = "RATE_LIMIT_BLACKLIST"
)

// EndpointConfig is the budget of one route family.
// Path is a prefix; Suffix, when set, must also match.
type EndpointConfig struct {
	Path   string
	Suffix string
	Method string
	Limit  int // requests per Window
	Window time.Duration
	Burst  int // 0 means Limit
}

// DefaultConfig is the limiter setup used when nothing is configured
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
		Whitelist:       map[string]bool{},
		Blacklist:       map[string]bool{},
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// LoadConfig starts from DefaultConfig and applies RATE_LIMIT_* overrides.
// Unparseable values are ignored.
func LoadConfig() *Config {
	cfg := DefaultConfig()
	cfg.Enabled = envValue(EnvEnabled, strconv.ParseBool, cfg.Enabled)
	if !cfg.Enabled {
		return &Config{}
	}

	cfg.DefaultLimit = envValue(EnvDefaultLimit, strconv.Atoi, cfg.DefaultLimit)
	cfg.DefaultWindow = envValue(EnvDefaultWindow, time.ParseDuration, cfg.DefaultWindow)
	cfg.CleanupInterval = envValue(EnvCleanupInterval, time.ParseDuration, cfg.CleanupInterval)
	cfg.IdleTimeout = envValue(EnvIdleTimeout, time.ParseDuration, cfg.IdleTimeout)
	cfg.Whitelist = clientSet(os.Getenv(EnvWhitelist))
	cfg.Blacklist = clientSet(os.Getenv(EnvBlacklist))
	return cfg
}

// DefaultEndpointConfigs returns the per-route budgets, strictest first
func DefaultEndpointConfigs() []EndpointConfig {
	const (
		get  = "GET"
		post = "POST"
		del  = "DELETE"
	)
	return []EndpointConfig{
		// generation and PDF export start the heaviest work
		{Path: "/generate", Method: post, Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/generate/stream", Method: post, Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/sessions/", Suffix: "/resume.pdf", Method: get, Limit: 30, Window: time.Hour, Burst: 3},

		// evaluation carries the simulated delay
		{Path: "/evaluate", Method: post, Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/sessions/", Suffix: "/practice", Method: post, Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/sessions/", Suffix: "/practice/stream", Method: post, Limit: 60, Window: time.Minute, Burst: 10},

		{Path: "/parse/resume", Method: post, Limit: 100, Window: time.Minute, Burst: 20},
		{Path: "/parse/job", Method: post, Limit: 100, Window: time.Minute, Burst: 20},
		{Path: "/sessions/", Method: del, Limit: 100, Window: time.Minute, Burst: 10},

		// other reads fall back to DefaultLimit; /health is unlimited (see MatchEndpoint)
	}
}

// envValue parses the variable key, returning fallback when it is unset or malformed
func envValue[T any](key string, parse func(string) (T, error), fallback T) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := parse(raw)
	if err != nil {
		return fallback
	}
	return v
}

// clientSet turns a comma-separated client list into a lookup set
func clientSet(list string) map[string]bool {
	set := map[string]bool{}
	for _, client := range strings.Split(list, ",") {
		if client = strings.TrimSpace(client); client != "" {
			set[client] = true
		}
	}
	return set
}
