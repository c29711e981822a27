// Package config loads the bridges tool configuration from a YAML file,
// an optional .env file and the process environment, in increasing order
// of precedence.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all settings for the CLI and the HTTP server.
type Config struct {
	// DataFile is the CSV inventory export.
	DataFile  string        `yaml:"data_file"`
	Watchlist string        `yaml:"watchlist"`
	Regions   RegionConfig  `yaml:"regions"`
	Database  DBConfig      `yaml:"database"`
	Server    ServerConfig  `yaml:"server"`
	Logging   LoggingConfig `yaml:"logging"`
}

// RegionConfig names an optional polygon shapefile used to label bridges
// with the region they fall in.
type RegionConfig struct {
	Layer string `yaml:"layer"`
	Field string `yaml:"field"`
}

// DBConfig holds database connection configuration. Driver is "oracle" or
// "sqlite"; Path is only used by sqlite.
type DBConfig struct {
	Driver         string `yaml:"driver"`
	Host           string `yaml:"host"`
	Port           string `yaml:"port"`
	Service        string `yaml:"service"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	WalletLocation string `yaml:"wallet_location"`
	Path           string `yaml:"path"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the settings used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		DataFile:  filepath.Join("data", "bridge_data.csv"),
		Watchlist: filepath.Join("data", "watchlist.txt"),
		Regions:   RegionConfig{Field: "REGION"},
		Database: DBConfig{
			Driver:  "sqlite",
			Host:    "localhost",
			Port:    "1521",
			Service: "XE",
			Path:    filepath.Join("data", "bridges.db"),
		},
		Server:  ServerConfig{Addr: ":8080"},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads the YAML file at path on top of the defaults, then applies
// environment overrides. A missing file is not an error. Variables from a
// .env file next to the working directory fill in anything the environment
// does not already set.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// .env is optional
	_ = godotenv.Load(".env")

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	c.DataFile = getEnvOrDefault("BRIDGES_DATA", c.DataFile)
	c.Server.Addr = getEnvOrDefault("BRIDGES_ADDR", c.Server.Addr)
	c.Logging.Level = getEnvOrDefault("LOG_LEVEL", c.Logging.Level)

	db := &c.Database
	db.Driver = getEnvOrDefault("DB_DRIVER", db.Driver)
	db.Host = getEnvOrDefault("DB_HOST", db.Host)
	db.Port = getEnvOrDefault("DB_PORT", db.Port)
	db.Service = getEnvOrDefault("DB_SERVICE", db.Service)
	db.Username = getEnvOrDefault("DB_USERNAME", db.Username)
	db.Password = getEnvOrDefault("DB_PASSWORD", db.Password)
	db.WalletLocation = getEnvOrDefault("DB_WALLET_LOCATION", db.WalletLocation)
	db.Path = getEnvOrDefault("DB_PATH", db.Path)
}

// DSN builds the driver connection string.
func (d DBConfig) DSN() (string, error) {
	switch d.Driver {
	case "sqlite":
		if d.Path == "" {
			return "", fmt.Errorf("sqlite database path is empty")
		}
		return d.Path, nil
	case "oracle":
		if d.WalletLocation != "" {
			// Wallet-based mTLS connection
			return fmt.Sprintf(
				"oracle://%s:%s@%s:%s/%s?ssl=true&wallet_location=%s",
				url.PathEscape(d.Username), url.PathEscape(d.Password), d.Host, d.Port, d.Service,
				url.PathEscape(d.WalletLocation)), nil
		}
		return (&url.URL{
			Scheme:   "oracle",
			User:     url.UserPassword(d.Username, d.Password),
			Host:     d.Host + ":" + d.Port,
			Path:     "/" + d.Service,
			RawQuery: "ssl=true",
		}).String(), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", d.Driver)
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
