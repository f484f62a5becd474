// Package config provides configuration types and helpers for envform.
package config

import (
	"github.com/spf13/viper"
)

// DefaultFile is the input file used when none is given.
const DefaultFile = ".env"

// DefaultFormat is the serialization target used when none is given.
const DefaultFormat = "json"

// Config holds the application-wide configuration, loaded from the config
// file, ENVFORM_* environment variables, and flag bindings.
type Config struct {
	File    string   `mapstructure:"file"`
	Format  string   `mapstructure:"format"`
	Redact  []string `mapstructure:"redact"`
	Verbose bool     `mapstructure:"verbose"`
}

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("file", DefaultFile)
	v.SetDefault("format", DefaultFormat)
	v.SetDefault("redact", []string{})
	v.SetDefault("verbose", false)
}

// Load unmarshals the merged viper state into a Config.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
