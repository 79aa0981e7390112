package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var ErrConfigFileNotFound = errors.New("could not find config file in any config path")

// Config represents the entire application configuration.
type Config struct {
	Debug      Debug      `koanf:"debug"`
	Discord    Discord    `koanf:"discord"`
	PostgreSQL PostgreSQL `koanf:"postgresql"`
	Redis      Redis      `koanf:"redis"`
	Panel      Panel      `koanf:"settings_panel"`
}

// Debug contains debug-related configuration.
type Debug struct {
	LogLevel      string `koanf:"log_level"`        // Log level (debug, info, warn, error)
	MaxLogsToKeep int    `koanf:"max_logs_to_keep"` // Maximum log sessions to keep
}

// Discord contains Discord bot configuration.
type Discord struct {
	Token string `koanf:"token"` // Discord bot token for authentication
}

// PostgreSQL contains database connection configuration.
type PostgreSQL struct {
	Host         string `koanf:"host"`           // Database hostname
	Port         int    `koanf:"port"`           // Database port
	User         string `koanf:"user"`           // Database username
	Password     string `koanf:"password"`       // Database password
	DBName       string `koanf:"db_name"`        // Database name
	MaxOpenConns int    `koanf:"max_open_conns"` // Maximum open connections
	MaxIdleConns int    `koanf:"max_idle_conns"` // Maximum idle connections
	MaxLifetime  int    `koanf:"max_lifetime"`   // Connection lifetime in minutes
	MaxIdleTime  int    `koanf:"max_idle_time"`  // Idle timeout in minutes
}

// Redis contains Redis connection configuration.
type Redis struct {
	Host     string `koanf:"host"`     // Redis hostname
	Port     int    `koanf:"port"`     // Redis port
	Username string `koanf:"username"` // Redis username
	Password string `koanf:"password"` // Redis password
}

// Panel tunes the settings panel lifecycle.
type Panel struct {
	CleanupDelaySecs int `koanf:"cleanup_delay_secs"` // Idle seconds before a panel is deleted
	SessionTTLMins   int `koanf:"session_ttl_mins"`   // Session lifetime in minutes
}

// CleanupDelay returns the configured panel cleanup delay.
func (p Panel) CleanupDelay() time.Duration {
	return time.Duration(p.CleanupDelaySecs) * time.Second
}

// SessionTTL returns the configured session lifetime.
func (p Panel) SessionTTL() time.Duration {
	return time.Duration(p.SessionTTLMins) * time.Minute
}

// defaults returns a Config populated with sensible defaults. Values present
// in the config file override these.
func defaults() *Config {
	return &Config{
		Debug: Debug{
			LogLevel:      "info",
			MaxLogsToKeep: 10,
		},
		PostgreSQL: PostgreSQL{
			Host:         "localhost",
			Port:         5432,
			MaxOpenConns: 4,
			MaxIdleConns: 4,
			MaxLifetime:  10,
			MaxIdleTime:  10,
		},
		Redis: Redis{
			Host: "localhost",
			Port: 6379,
		},
		Panel: Panel{
			CleanupDelaySecs: 180,
			SessionTTLMins:   10,
		},
	}
}

// LoadConfig loads the configuration from the first config.toml found in the
// search paths, falling back to an explicit path when one is given.
func LoadConfig(path string) (*Config, error) {
	configPath, err := resolveConfigPath(path)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}

	cfg := defaults()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// resolveConfigPath picks the config file to load. An explicit path wins;
// otherwise the standard locations are searched in order.
func resolveConfigPath(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("config file %s: %w", path, err)
		}
		return path, nil
	}

	home, _ := os.UserHomeDir()
	searchPaths := []string{
		"config.toml",
		filepath.Join("config", "config.toml"),
	}
	if home != "" {
		searchPaths = append(searchPaths, filepath.Join(home, ".fixmediabot", "config.toml"))
	}

	for _, candidate := range searchPaths {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", ErrConfigFileNotFound
}
