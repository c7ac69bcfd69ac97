// Package config provides Viper-based configuration loading for the dungeon model.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is the zap sink: "stderr", "stdout", or a file path.
	Output string `mapstructure:"output"`
}

// WorldConfig holds the tunable rules of the dungeon model.
type WorldConfig struct {
	// MaxSlipperyFraction is the ceiling on the share of squares with a slippery floor.
	MaxSlipperyFraction float64 `mapstructure:"max_slippery_fraction"`
	// MergeWeight biases the temperature blend when two squares merge.
	MergeWeight float64 `mapstructure:"merge_weight"`
	// HotRockThreshold is the temperature at or above which a solid square counts as hot.
	HotRockThreshold int `mapstructure:"hot_rock_threshold"`
	// HeatDamageMin is the temperature at which heat damage starts.
	HeatDamageMin int `mapstructure:"heat_damage_min"`
	// HeatDamageInterval is the number of degrees per heat damage point.
	HeatDamageInterval int `mapstructure:"heat_damage_interval"`
	// ColdDamageMax is the temperature at which cold damage starts.
	ColdDamageMax int `mapstructure:"cold_damage_max"`
	// ColdDamageInterval is the number of degrees per cold damage point.
	ColdDamageInterval int `mapstructure:"cold_damage_interval"`
	// RustDamageMin is the temperature at which rust damage starts.
	RustDamageMin int `mapstructure:"rust_damage_min"`
	// RustDamageInterval is the number of degrees per rust damage point.
	RustDamageInterval int `mapstructure:"rust_damage_interval"`
	// SharedBorderEdits allows replacing a border that is mirrored by a neighbour.
	SharedBorderEdits bool `mapstructure:"shared_border_edits"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	World   WorldConfig   `mapstructure:"world"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateWorld(c.World); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateWorld(w WorldConfig) error {
	var errs []string
	if w.MaxSlipperyFraction < 0 || w.MaxSlipperyFraction > 1 {
		errs = append(errs, fmt.Sprintf("world.max_slippery_fraction must be in [0, 1], got %g", w.MaxSlipperyFraction))
	}
	if w.MergeWeight < 0.1 || w.MergeWeight > 0.4 {
		errs = append(errs, fmt.Sprintf("world.merge_weight must be in [0.1, 0.4], got %g", w.MergeWeight))
	}
	if w.HeatDamageInterval <= 0 {
		errs = append(errs, fmt.Sprintf("world.heat_damage_interval must be > 0, got %d", w.HeatDamageInterval))
	}
	if w.ColdDamageInterval <= 0 {
		errs = append(errs, fmt.Sprintf("world.cold_damage_interval must be > 0, got %d", w.ColdDamageInterval))
	}
	if w.RustDamageInterval <= 0 {
		errs = append(errs, fmt.Sprintf("world.rust_damage_interval must be > 0, got %d", w.RustDamageInterval))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with DUNGEON_ prefix
	v.SetEnvPrefix("DUNGEON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration produced by the built-in defaults alone.
func Default() Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadFromViper(v)
	if err != nil {
		panic("config: built-in defaults are invalid: " + err.Error())
	}
	return cfg
}

// SetDefaults installs the built-in default for every known key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("world.max_slippery_fraction", 0.2)
	v.SetDefault("world.merge_weight", 0.2)
	v.SetDefault("world.hot_rock_threshold", 200)
	v.SetDefault("world.heat_damage_min", 35)
	v.SetDefault("world.heat_damage_interval", 15)
	v.SetDefault("world.cold_damage_max", -5)
	v.SetDefault("world.cold_damage_interval", 10)
	v.SetDefault("world.rust_damage_min", 30)
	v.SetDefault("world.rust_damage_interval", 7)
	v.SetDefault("world.shared_border_edits", true)
}
