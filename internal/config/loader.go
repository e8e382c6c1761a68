package config

import (
	"time"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with environment variables
// 3. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	// Step 1: Start with defaults (already done in NewConfig)

	// Step 2: Load from environment variables
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	// Step 3: Validate the configuration
	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	// Load base configuration
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	// Apply command line overrides
	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Server overrides
	Host            *string
	Port            *int
	ReadTimeout     *time.Duration
	WriteTimeout    *time.Duration
	ShutdownTimeout *time.Duration

	// Storage overrides
	StorageBackend *string
	StorageDir     *string
	SQLiteFilename *string

	// Entries overrides
	EditedFlagTTL *time.Duration

	// Seed overrides
	SeedDefaultUsers *bool

	// Application overrides
	LogLevel  *string
	LogFormat *string
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	// Server overrides
	if overrides.Host != nil {
		config.Server.Host = *overrides.Host
	}
	if overrides.Port != nil {
		config.Server.Port = *overrides.Port
	}
	if overrides.ReadTimeout != nil {
		config.Server.ReadTimeout = *overrides.ReadTimeout
	}
	if overrides.WriteTimeout != nil {
		config.Server.WriteTimeout = *overrides.WriteTimeout
	}
	if overrides.ShutdownTimeout != nil {
		config.Server.ShutdownTimeout = *overrides.ShutdownTimeout
	}

	// Storage overrides
	if overrides.StorageBackend != nil {
		config.Storage.Backend = *overrides.StorageBackend
	}
	if overrides.StorageDir != nil {
		config.Storage.Dir = *overrides.StorageDir
	}
	if overrides.SQLiteFilename != nil {
		config.Storage.SQLiteFilename = *overrides.SQLiteFilename
	}

	// Entries overrides
	if overrides.EditedFlagTTL != nil {
		config.Entries.EditedFlagTTL = *overrides.EditedFlagTTL
	}

	// Seed overrides
	if overrides.SeedDefaultUsers != nil {
		config.Seed.DefaultUsers = *overrides.SeedDefaultUsers
	}

	// Application overrides
	if overrides.LogLevel != nil {
		config.Application.LogLevel = *overrides.LogLevel
	}
	if overrides.LogFormat != nil {
		config.Application.LogFormat = *overrides.LogFormat
	}
}
