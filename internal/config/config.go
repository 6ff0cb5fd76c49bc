// Package config loads server configuration from a YAML file with
// environment-variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the server.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Currency CurrencyConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port int
}

// DatabaseConfig holds SQLite configuration.
type DatabaseConfig struct {
	Path string
}

// CurrencyConfig holds the display-currency settings for the boundary.
// The engine itself only ever sees integer minor units.
type CurrencyConfig struct {
	Code     string
	Symbol   string
	Exponent int32
}

// Load reads configuration from the given file (default "config.yaml") and
// the SPLITLEDGER_* environment variables. A missing file is not an error;
// defaults and environment cover everything.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("database.path", "./data/ledger.db")
	viper.SetDefault("currency.code", "INR")
	viper.SetDefault("currency.symbol", "₹")
	viper.SetDefault("currency.exponent", 2)

	viper.SetEnvPrefix("SPLITLEDGER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// viper reports an explicitly named missing file as *fs.PathError
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}
	if cfg.Database.Path == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if cfg.Currency.Exponent < 0 || cfg.Currency.Exponent > 6 {
		return nil, fmt.Errorf("invalid currency exponent: %d", cfg.Currency.Exponent)
	}

	return &cfg, nil
}
