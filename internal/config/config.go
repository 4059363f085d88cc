// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"cloudpool/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Catalog contains pricing catalog configuration
	Catalog CatalogConfig `json:"catalog"`

	// Storage contains invoice repository configuration
	Storage StorageConfig `json:"storage"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server"`

	// Extract contains extraction tuning
	Extract ExtractConfig `json:"extract"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// CatalogConfig contains pricing catalog settings
type CatalogConfig struct {
	// OverridePath is an optional HCL file whose SKU tier tables
	// replace or extend the built-in ones
	OverridePath string `json:"override_path,omitempty"`

	// DefaultRegion is attributed to records without a region
	DefaultRegion string `json:"default_region"`
}

// StorageConfig contains invoice repository settings
type StorageConfig struct {
	// Backend selects the repository implementation (memory, file, postgres)
	Backend string `json:"backend"`

	// Directory is the invoice directory for the file backend
	Directory string `json:"directory,omitempty"`

	// DSN is the connection string for the postgres backend
	DSN string `json:"dsn,omitempty"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`
}

// ExtractConfig contains extraction tuning knobs
type ExtractConfig struct {
	// LookaheadChars is how far past a service name the tagged strategy
	// searches for a currency amount
	LookaheadChars int `json:"lookahead_chars"`

	// LookaheadLines is how many lines past a service line the line-scan
	// strategy searches for a cost
	LookaheadLines int `json:"lookahead_lines"`

	// YQuantum is the vertical grouping step for positioned fragments
	YQuantum float64 `json:"y_quantum"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	invoiceDir := filepath.Join(homeDir, ".cloudpool", "invoices")

	return &Config{
		Version: "1.0",
		Catalog: CatalogConfig{
			DefaultRegion: "us-east-1",
		},
		Storage: StorageConfig{
			Backend:   "file",
			Directory: invoiceDir,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Extract: ExtractConfig{
			LookaheadChars: 160,
			LookaheadLines: 3,
			YQuantum:       2.0,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
