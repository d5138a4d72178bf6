//-------------------------------------------------------------------------
//
// cannetl - Cannabis Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, Cannalytics
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for cannetl.
// Configuration is loaded from config files and CLI flags (no environment
// variables). CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for cannetl.
type Config struct {
	// RawDir is the directory containing raw input datasets.
	RawDir string `mapstructure:"raw_dir"`

	// OutDir is the directory for final pipeline outputs.
	OutDir string `mapstructure:"out_dir"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Run holds configuration for the run subcommand.
	Run RunConfig `mapstructure:"run"`

	// Geocoder holds geocoding configuration.
	Geocoder GeocoderConfig `mapstructure:"geocoder"`

	// Seed holds configuration for the seed subcommand.
	Seed SeedConfig `mapstructure:"seed"`

	// Load holds configuration for the load subcommand.
	Load LoadConfig `mapstructure:"load"`
}

// RunConfig holds configuration for a pipeline run.
type RunConfig struct {
	// Datasets restricts the run to the named datasets (empty = all).
	Datasets []string `mapstructure:"datasets"`

	// Geocode enables address geocoding during cleaning. When disabled,
	// rows lacking coordinates keep null coordinates.
	Geocode bool `mapstructure:"geocode"`

	// SQLite, when non-empty, is the path of a SQLite database that
	// receives a copy of every final table for dashboard consumption.
	SQLite string `mapstructure:"sqlite"`
}

// GeocoderConfig holds configuration for the geocoding collaborator.
type GeocoderConfig struct {
	// APIKey is the Google Maps Geocoding API key.
	APIKey string `mapstructure:"api_key"`

	// DelayMs is the pause between geocoding requests in milliseconds.
	DelayMs int `mapstructure:"delay_ms"`

	// MaxRetries is the number of attempts per address.
	MaxRetries int `mapstructure:"max_retries"`
}

// SeedConfig holds configuration for synthetic raw-data generation.
type SeedConfig struct {
	// Rows is the approximate row count per generated raw file.
	Rows int `mapstructure:"rows"`

	// Seed is the RNG seed (0 = time-based).
	Seed uint64 `mapstructure:"seed"`
}

// LoadConfig holds configuration for loading outputs into Postgres.
type LoadConfig struct {
	// Connection is the PostgreSQL connection string.
	Connection string `mapstructure:"connection"`

	// Schema is the target schema for loaded tables.
	Schema string `mapstructure:"schema"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		RawDir:   "data/raw",
		OutDir:   "data/final",
		LogLevel: "info",
		Run: RunConfig{
			Geocode: true,
		},
		Geocoder: GeocoderConfig{
			DelayMs:    200,
			MaxRetries: 3,
		},
		Seed: SeedConfig{
			Rows: 500,
		},
		Load: LoadConfig{
			Schema: "cannetl",
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./cannetl.yaml
// 3. ~/.config/cannetl/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Set config name and type
	v.SetConfigName("cannetl")
	v.SetConfigType("yaml")

	// Add config paths
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "cannetl"))
	}

	// Use specific config file if provided
	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Start with defaults
	cfg := DefaultConfig()

	// Unmarshal config file values
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.RawDir == "" {
		return fmt.Errorf("raw_dir is required")
	}
	if c.OutDir == "" {
		return fmt.Errorf("out_dir is required")
	}
	return nil
}

// ValidateRun checks configuration required for the run command.
func (c *Config) ValidateRun() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Run.Geocode && c.Geocoder.APIKey == "" {
		return fmt.Errorf("geocoder api_key is required when geocoding is enabled " +
			"(use --no-geocode to run without it)")
	}
	if c.Geocoder.MaxRetries < 1 {
		return fmt.Errorf("geocoder max_retries must be at least 1")
	}
	if c.Geocoder.DelayMs < 0 {
		return fmt.Errorf("geocoder delay_ms must be non-negative")
	}
	return nil
}

// ValidateSeed checks configuration required for the seed command.
func (c *Config) ValidateSeed() error {
	if c.RawDir == "" {
		return fmt.Errorf("raw_dir is required")
	}
	if c.Seed.Rows < 1 {
		return fmt.Errorf("seed rows must be at least 1")
	}
	return nil
}

// ValidateLoad checks configuration required for the load command.
func (c *Config) ValidateLoad() error {
	if c.OutDir == "" {
		return fmt.Errorf("out_dir is required")
	}
	if c.Load.Connection == "" {
		return fmt.Errorf("connection string is required for load")
	}
	if c.Load.Schema == "" {
		return fmt.Errorf("load schema is required")
	}
	return nil
}
