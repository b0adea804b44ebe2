// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// Output formats for the tailored resume
const (
	FormatText  = "text"
	FormatLaTeX = "latex"
	FormatPDF   = "pdf"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	Resume  string   `json:"resume,omitempty"`   // Path to resume text file
	Jobs    []string `json:"jobs,omitempty"`     // Paths to job description files
	JobURLs []string `json:"job_urls,omitempty"` // Job posting URLs, fetched before generation

	// Output
	OutDir   string `json:"out_dir,omitempty"`  // Directory for generated files
	Format   string `json:"format,omitempty"`   // text, latex or pdf
	Template string `json:"template,omitempty"` // Optional LaTeX template override

	// Storage
	SQLitePath  string `json:"sqlite_path,omitempty"`  // Local session history database
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	RedisURL    string `json:"redis_url,omitempty"`    // Redis URL for the L2 cache

	// Behavior
	Concurrency int  `json:"concurrency,omitempty"` // Parallel generation cycles for multiple jobs
	UseBrowser  bool `json:"use_browser,omitempty"` // Render job URLs in headless Chrome when plain HTTP yields too little text
	Verbose     bool `json:"verbose,omitempty"`     // Print detailed debug information
}

// ConfigError reports an invalid configuration value
//
//nolint:revive // ConfigError reads better at call sites than config.Error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: '%s' %s", e.Field, e.Message)
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required inputs are checked by the CLI after merging with flags.
func (c *Config) Validate() error {
	switch c.Format {
	case "", FormatText, FormatLaTeX, FormatPDF:
	default:
		return &ConfigError{Field: "format", Message: fmt.Sprintf("must be one of text, latex, pdf (got %q)", c.Format)}
	}

	if c.Concurrency < 0 {
		return &ConfigError{Field: "concurrency", Message: "must be non-negative"}
	}

	if c.Resume != "" {
		if _, err := os.Stat(c.Resume); os.IsNotExist(err) {
			return &ConfigError{Field: "resume", Message: "file not found: " + c.Resume}
		}
	}
	for _, job := range c.Jobs {
		if _, err := os.Stat(job); os.IsNotExist(err) {
			return &ConfigError{Field: "jobs", Message: "file not found: " + job}
		}
	}
	for _, raw := range c.JobURLs {
		if u, err := url.Parse(raw); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return &ConfigError{Field: "job_urls", Message: "invalid URL: " + raw}
		}
	}
	if c.Template != "" {
		if _, err := os.Stat(c.Template); os.IsNotExist(err) {
			return &ConfigError{Field: "template", Message: "file not found: " + c.Template}
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if len(result.Jobs) == 0 {
		result.Jobs = defaults.Jobs
	}
	if len(result.JobURLs) == 0 {
		result.JobURLs = defaults.JobURLs
	}
	if result.OutDir == "" {
		result.OutDir = defaults.OutDir
	}
	if result.Format == "" {
		result.Format = defaults.Format
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.SQLitePath == "" {
		result.SQLitePath = defaults.SQLitePath
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
