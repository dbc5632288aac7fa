// Package config loads server configuration from a YAML file with
// environment-variable overrides.
//
// Config file locations (priority order):
//  1. $DIETLOG_CONFIG
//  2. ./dietlog.yaml
//  3. $XDG_CONFIG_HOME/dietlog/config.yaml
//  4. ~/.config/dietlog/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	envConfigPath  = "DIETLOG_CONFIG"
	configFileName = "dietlog.yaml"
	configDirName  = "dietlog"
)

// Duration wraps time.Duration for YAML unmarshaling ("24h", "90m").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	// Driver is one of "sqlite", "postgres" or "memory".
	Driver string `yaml:"driver"`
	// Path is the sqlite database file.
	Path string `yaml:"path"`
	// URL is the postgres connection string.
	URL string `yaml:"url"`
}

// AuthConfig controls the session layer.
type AuthConfig struct {
	Disabled   bool     `yaml:"disabled"`
	SessionTTL Duration `yaml:"session_ttl"`
}

// OIDCConfig configures optional single sign-on.
type OIDCConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Issuer       string `yaml:"issuer"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
}

// Config is the root configuration document.
type Config struct {
	Addr   string      `yaml:"addr"`
	WebDir string      `yaml:"web_dir"`
	Store  StoreConfig `yaml:"store"`
	Auth   AuthConfig  `yaml:"auth"`
	OIDC   OIDCConfig  `yaml:"oidc"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Addr:   ":8080",
		WebDir: "./web",
		Store: StoreConfig{
			Driver: "sqlite",
			Path:   "./dietlog.db",
		},
		Auth: AuthConfig{
			SessionTTL: Duration(24 * time.Hour),
		},
	}
}

// Load reads the config file at path, or searches the standard locations when
// path is empty. Missing files yield defaults. Environment variables override
// file values either way.
func Load(path string) (*Config, error) {
	if path == "" {
		path = findPath()
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
		cfg.applyDefaults()
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.WebDir == "" {
		c.WebDir = "./web"
	}
	if c.Store.Driver == "" {
		c.Store.Driver = "sqlite"
	}
	if c.Store.Driver == "sqlite" && c.Store.Path == "" {
		c.Store.Path = "./dietlog.db"
	}
	if c.Auth.SessionTTL <= 0 {
		c.Auth.SessionTTL = Duration(24 * time.Hour)
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("WEB_DIR"); v != "" {
		c.WebDir = v
	}
	if v := os.Getenv("DIETLOG_DB"); v != "" {
		c.Store.Driver = "sqlite"
		c.Store.Path = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Store.Driver = "postgres"
		c.Store.URL = v
	}
	if v := os.Getenv("DIETLOG_DISABLE_AUTH"); v == "1" || v == "true" {
		c.Auth.Disabled = true
	}
}

func findPath() string {
	if path := os.Getenv(envConfigPath); path != "" {
		if fileExists(path) {
			return path
		}
	}

	if fileExists(configFileName) {
		if abs, err := filepath.Abs(configFileName); err == nil {
			return abs
		}
		return configFileName
	}

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		path := filepath.Join(xdgHome, configDirName, "config.yaml")
		if fileExists(path) {
			return path
		}
	}

	if home := os.Getenv("HOME"); home != "" {
		path := filepath.Join(home, ".config", configDirName, "config.yaml")
		if fileExists(path) {
			return path
		}
	}

	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
