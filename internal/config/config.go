package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// HistoryConfig represents load-history configuration
type HistoryConfig struct {
	// Enabled records each load invocation in the history database
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the history database (empty = default under
	// the fragments home)
	DBPath string `yaml:"db_path"`

	// KeepDays is the number of days of history to retain when pruning
	KeepDays int `yaml:"keep_days"`
}

// Config represents fragments configuration options
type Config struct {
	// MaxFiles caps how many files one walk may select
	MaxFiles int `yaml:"max_files"`

	// MaxFileSize caps the largest single file read, in bytes
	MaxFileSize int64 `yaml:"max_file_size"`

	// GitTimeout bounds the version-control listing subprocess
	GitTimeout time.Duration `yaml:"git_timeout"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// History contains load-history configuration
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		MaxFiles:    500,
		MaxFileSize: 1_000_000,
		GitTimeout:  10 * time.Second,
		LogLevel:    "info",
		History: HistoryConfig{
			Enabled:  true,
			DBPath:   "",
			KeepDays: 90,
		},
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		// File doesn't exist, return defaults (not an error)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Use a temporary struct to handle duration parsing
	type yamlConfig struct {
		MaxFiles    int           `yaml:"max_files"`
		MaxFileSize int64         `yaml:"max_file_size"`
		GitTimeout  string        `yaml:"git_timeout"`
		LogLevel    string        `yaml:"log_level"`
		History     HistoryConfig `yaml:"history"`
	}

	// Seed the history section with defaults so omitted fields keep them.
	yamlCfg := yamlConfig{History: cfg.History}
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Merge non-zero values over defaults
	if yamlCfg.MaxFiles > 0 {
		cfg.MaxFiles = yamlCfg.MaxFiles
	}
	if yamlCfg.MaxFileSize > 0 {
		cfg.MaxFileSize = yamlCfg.MaxFileSize
	}
	if yamlCfg.GitTimeout != "" {
		timeout, err := time.ParseDuration(yamlCfg.GitTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid git_timeout: %w", err)
		}
		cfg.GitTimeout = timeout
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	cfg.History = yamlCfg.History

	return cfg, nil
}

// Validate checks configuration values for consistency
func (c *Config) Validate() error {
	if c.MaxFiles < 0 {
		return fmt.Errorf("max_files cannot be negative: %d", c.MaxFiles)
	}
	if c.MaxFileSize < 0 {
		return fmt.Errorf("max_file_size cannot be negative: %d", c.MaxFileSize)
	}
	if c.GitTimeout < 0 {
		return fmt.Errorf("git_timeout cannot be negative: %s", c.GitTimeout)
	}
	return nil
}
