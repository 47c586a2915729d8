// ABOUTME: Application configuration loaded from file, .env and environment
// ABOUTME: Environment variables prefixed OUTREACH_ override the JSON config file
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/harperreed/outreach/db"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Remote kinds.
const (
	RemoteNone  = "none"
	RemoteCharm = "charm"
	RemoteHTTP  = "http"
)

// Config holds settings for every outreach command. Fields without an
// environment value keep whatever the JSON file (or the defaults) set.
type Config struct {
	// DBPath is the SQLite local cache.
	DBPath string `json:"db_path" envconfig:"DB_PATH"`

	// Remote selects the remote copy: none, charm or http.
	Remote string `json:"remote" envconfig:"REMOTE"`

	// RemoteURL is the sync server base URL for the http remote.
	RemoteURL string `json:"remote_url" envconfig:"REMOTE_URL"`

	// RemoteToken is sent as a bearer token to the sync server.
	RemoteToken string `json:"remote_token,omitempty" envconfig:"REMOTE_TOKEN"`

	RemoteTimeout time.Duration `json:"remote_timeout" envconfig:"REMOTE_TIMEOUT"`

	// ServerAddr is where `outreach serve` listens.
	ServerAddr string `json:"server_addr" envconfig:"SERVER_ADDR"`

	// RedisURL switches the sync server's key store from SQLite to Redis.
	RedisURL string `json:"redis_url,omitempty" envconfig:"REDIS_URL"`

	// AllowedOrigins lists CORS origins for the sync server.
	AllowedOrigins []string `json:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`

	LogLevel string `json:"log_level" envconfig:"LOG_LEVEL"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DBPath:         db.DefaultPath(),
		Remote:         RemoteNone,
		RemoteTimeout:  30 * time.Second,
		ServerAddr:     ":8787",
		AllowedOrigins: []string{"*"},
		LogLevel:       "info",
	}
}

// Path returns the config file location.
func Path() string {
	return filepath.Join(xdg.ConfigHome, "outreach", "config.json")
}

// Load reads an optional .env file, then the config file at Path, then
// environment overrides.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return LoadFrom(Path())
}

// LoadFrom reads the config file at path and applies environment overrides.
// A missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := envconfig.Process("outreach", cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the remote selection.
func (c *Config) Validate() error {
	switch c.Remote {
	case "", RemoteNone, RemoteCharm:
	case RemoteHTTP:
		if c.RemoteURL == "" {
			return fmt.Errorf("remote %q requires remote_url", RemoteHTTP)
		}
	default:
		return fmt.Errorf("unsupported remote: %s", c.Remote)
	}
	return nil
}

// Save writes the config file at path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}
