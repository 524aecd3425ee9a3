package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Order    OrderConfig
	UI       UIConfig
	Log      LogConfig
	Kitchen  KitchenConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// OrderConfig holds pricing settings. TaxRate is a decimal string such as "0.08".
type OrderConfig struct {
	TaxRate string `mapstructure:"tax_rate"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
	HistoryLimit   int    `mapstructure:"history_limit"`
}

// LogConfig controls the log file. An empty path disables logging.
type LogConfig struct {
	Path  string
	Level string
}

// KitchenConfig enables publishing tickets over AMQP when URL is set.
type KitchenConfig struct {
	AMQPURL  string `mapstructure:"amqp_url"`
	Exchange string
}

// TaxRate returns the configured rate. It panics on a rate Validate rejects.
func (c Config) TaxRate() decimal.Decimal {
	return decimal.RequireFromString(strings.TrimSpace(c.Order.TaxRate))
}

// Load reads configuration from file and env. Env var overrides use prefix LUNCHTRAY_.
func Load() (Config, error) {
	v := viper.New()

	home := os.Getenv("HOME")
	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "lunchtray", "lunchtray.db"))
	v.SetDefault("order.tax_rate", "0.08")
	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("ui.history_limit", 10)
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "lunchtray", "lunchtray.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("kitchen.amqp_url", "")
	v.SetDefault("kitchen.exchange", "lunchtray_orders")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("LUNCHTRAY_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "lunchtray"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("LUNCHTRAY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// a missing default file is fine; an explicit path that fails to load is not
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the app cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("config: database.path is required")
	}
	rate, err := decimal.NewFromString(strings.TrimSpace(c.Order.TaxRate))
	if err != nil {
		return fmt.Errorf("config: order.tax_rate %q is not a number: %w", c.Order.TaxRate, err)
	}
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("config: order.tax_rate must be in [0, 1), got %s", rate)
	}
	if c.UI.HistoryLimit <= 0 {
		return fmt.Errorf("config: ui.history_limit must be positive")
	}
	return nil
}
