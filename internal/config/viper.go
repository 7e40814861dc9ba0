package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`

	Import struct {
		SettlementCurrency string `mapstructure:"settlement_currency"`
		RatesFile          string `mapstructure:"rates_file"`
		RulesFile          string `mapstructure:"rules_file"`
	} `mapstructure:"import"`

	Store struct {
		// Path to the SQLite database file; empty selects the in-memory store.
		Path string `mapstructure:"path"`
	} `mapstructure:"store"`

	Server struct {
		Addr      string `mapstructure:"addr"`
		AuthToken string `mapstructure:"auth_token"`
	} `mapstructure:"server"`

	Telematics struct {
		BaseURL string           `mapstructure:"base_url"`
		APIKey  string           `mapstructure:"api_key"`
		Units   map[string]int64 `mapstructure:"units"`
	} `mapstructure:"telematics"`
}

// InitializeConfig loads configuration hierarchically: defaults, then an
// optional config file, then FUELIMPORT_-prefixed environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.fuelimport")
	v.AddConfigPath(".fuelimport")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FUELIMPORT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
		// No config file is fine; defaults and env vars apply.
	}

	// The provider key is conventionally set unprefixed in deployments.
	if err := v.BindEnv("telematics.api_key", "TELEMATICS_API_KEY", "FUELIMPORT_TELEMATICS_API_KEY"); err != nil {
		return nil, fmt.Errorf("error binding provider key: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("import.settlement_currency", "EUR")
	v.SetDefault("import.rates_file", "")
	v.SetDefault("import.rules_file", "")

	v.SetDefault("store.path", "")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.auth_token", "")

	v.SetDefault("telematics.base_url", "")
	v.SetDefault("telematics.api_key", "")
	v.SetDefault("telematics.units", map[string]int64{})
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}
	if len(config.Import.SettlementCurrency) != 3 {
		return fmt.Errorf("settlement currency must be a 3-letter code, got: %s",
			config.Import.SettlementCurrency)
	}
	return nil
}
