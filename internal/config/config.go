// Package config loads daylog settings from .daylog.yaml, DAYLOG_* env vars
// and CLI flags through viper.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for a daylog invocation.
type Config struct {
	TaxonomyPath string            `mapstructure:"taxonomy_path"`
	DBPath       string            `mapstructure:"db_path"`
	Extension    string            `mapstructure:"extension"`
	EventsPath   string            `mapstructure:"events_path"`
	Verbose      bool              `mapstructure:"verbose"`
	TopLevel     map[string]string `mapstructure:"top_level"`
	Aliases      map[string]string `mapstructure:"aliases"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("taxonomy_path", "activity_taxonomy.json")
	viper.SetDefault("db_path", "daylog.db")
	viper.SetDefault("extension", ".txt")
	viper.SetDefault("events_path", "")
	viper.SetDefault("verbose", false)
	viper.SetDefault("top_level", map[string]string{})
	viper.SetDefault("aliases", map[string]string{"stduy": "study"})

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}
