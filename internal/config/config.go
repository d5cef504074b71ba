// Package config loads the CLI settings from an optional YAML file,
// LIFELOG_* environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. LIFELOG_LOGGING_LEVEL
const EnvPrefix = "LIFELOG"

// Config represents the complete CLI configuration
type Config struct {
	Monitor MonitorConfig `mapstructure:"monitor"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// MonitorConfig selects the generation profile and session knobs
type MonitorConfig struct {
	Profile    string        `mapstructure:"profile"`
	ProfileDir string        `mapstructure:"profile_dir"`
	Capacity   int           `mapstructure:"capacity"` // 0 keeps the profile's value
	Seed       int64         `mapstructure:"seed"`     // 0 seeds from the wall clock
	Duration   time.Duration `mapstructure:"duration"` // 0 runs until interrupted
}

// OutputConfig controls how events are printed
type OutputConfig struct {
	Format     string `mapstructure:"format"`
	TimeFormat string `mapstructure:"time_format"`
	Buffer     int    `mapstructure:"buffer"`
	Quiet      bool   `mapstructure:"quiet"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from path, when given, and the environment.
// An empty path uses defaults and environment overrides only.
func Load(path string) (*Config, error) {
	v := New()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return Decode(v)
}

// New returns a viper instance with defaults and environment overrides
// set up, so callers can bind command-line flags before decoding.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Decode unmarshals v into a Config
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	v.SetDefault("monitor.profile", "balanced")
	v.SetDefault("monitor.profile_dir", "")
	v.SetDefault("monitor.capacity", 0)
	v.SetDefault("monitor.seed", 0)
	v.SetDefault("monitor.duration", "0s")

	v.SetDefault("output.format", "text")
	v.SetDefault("output.time_format", "15:04:05")
	v.SetDefault("output.buffer", 64)
	v.SetDefault("output.quiet", false)

	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "json")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	if c.Monitor.Profile == "" {
		return errors.New("monitor.profile is required")
	}
	if c.Monitor.Capacity < 0 {
		return fmt.Errorf("monitor.capacity must not be negative")
	}
	if c.Monitor.Duration < 0 {
		return fmt.Errorf("monitor.duration must not be negative")
	}

	validOutput := map[string]bool{"text": true, "json": true, "protobuf": true}
	if !validOutput[strings.ToLower(c.Output.Format)] {
		return fmt.Errorf("output.format must be one of: text, json, protobuf")
	}
	if c.Output.Buffer < 1 {
		return fmt.Errorf("output.buffer must be at least 1")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}
