package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Storage backend identifiers.
const (
	StorageBackendJSONFile = "jsonfile"
	StorageBackendSQLite   = "sqlite"
)

// Config holds all configuration options for the time clock service
type Config struct {
	Server      ServerConfig
	Storage     StorageConfig
	Entries     EntriesConfig
	Seed        SeedConfig
	Application ApplicationConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `env:"TIMECLOCK_SERVER_HOST"`
	Port            int           `env:"TIMECLOCK_SERVER_PORT"`
	ReadTimeout     time.Duration `env:"TIMECLOCK_SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `env:"TIMECLOCK_SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `env:"TIMECLOCK_SERVER_SHUTDOWN_TIMEOUT"`
}

// StorageConfig holds durable-store configuration
type StorageConfig struct {
	Backend        string `env:"TIMECLOCK_STORAGE_BACKEND"`
	Dir            string `env:"TIMECLOCK_STORAGE_DIR"`
	SQLiteFilename string `env:"TIMECLOCK_STORAGE_SQLITE_FILENAME"`
	DirPermissions uint32 `env:"TIMECLOCK_STORAGE_DIR_PERMISSIONS"`
}

// EntriesConfig holds time-entry behaviour configuration
type EntriesConfig struct {
	EditedFlagTTL time.Duration `env:"TIMECLOCK_ENTRIES_EDITED_FLAG_TTL"`
}

// SeedConfig holds default-account seeding configuration
type SeedConfig struct {
	DefaultUsers bool `env:"TIMECLOCK_SEED_DEFAULT_USERS"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	LogLevel  string `env:"TIMECLOCK_LOG_LEVEL"`
	LogFormat string `env:"TIMECLOCK_LOG_FORMAT"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "",
			Port:            5000,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			Backend:        StorageBackendJSONFile,
			Dir:            "data",
			SQLiteFilename: "timeclock.db",
			DirPermissions: 0755,
		},
		Entries: EntriesConfig{
			EditedFlagTTL: 72 * time.Hour,
		},
		Seed: SeedConfig{
			DefaultUsers: true,
		},
		Application: ApplicationConfig{
			LogLevel:  "info",
			LogFormat: "json",
		},
	}
}

// Address returns the host:port the HTTP server listens on
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// UsersFilePath returns the full path to the users collection file
func (c *Config) UsersFilePath() string {
	return filepath.Join(c.Storage.Dir, "users.json")
}

// TimeEntriesFilePath returns the full path to the time entries collection file
func (c *Config) TimeEntriesFilePath() string {
	return filepath.Join(c.Storage.Dir, "time_entries.json")
}

// NotesFilePath returns the full path to the notes collection file
func (c *Config) NotesFilePath() string {
	return filepath.Join(c.Storage.Dir, "notes.json")
}

// SQLitePath returns the full path to the sqlite database file
func (c *Config) SQLitePath() string {
	return filepath.Join(c.Storage.Dir, c.Storage.SQLiteFilename)
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Server configuration
	if host := os.Getenv("TIMECLOCK_SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("TIMECLOCK_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}
	if timeout := os.Getenv("TIMECLOCK_SERVER_READ_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Server.ReadTimeout = d
		}
	}
	if timeout := os.Getenv("TIMECLOCK_SERVER_WRITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Server.WriteTimeout = d
		}
	}
	if timeout := os.Getenv("TIMECLOCK_SERVER_SHUTDOWN_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Server.ShutdownTimeout = d
		}
	}

	// Storage configuration
	if backend := os.Getenv("TIMECLOCK_STORAGE_BACKEND"); backend != "" {
		c.Storage.Backend = backend
	}
	if dir := os.Getenv("TIMECLOCK_STORAGE_DIR"); dir != "" {
		c.Storage.Dir = dir
	}
	if filename := os.Getenv("TIMECLOCK_STORAGE_SQLITE_FILENAME"); filename != "" {
		c.Storage.SQLiteFilename = filename
	}
	if perms := os.Getenv("TIMECLOCK_STORAGE_DIR_PERMISSIONS"); perms != "" {
		if p, err := strconv.ParseUint(perms, 8, 32); err == nil {
			c.Storage.DirPermissions = uint32(p)
		}
	}

	// Entries configuration
	if ttl := os.Getenv("TIMECLOCK_ENTRIES_EDITED_FLAG_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			c.Entries.EditedFlagTTL = d
		}
	}

	// Seed configuration
	if seed := os.Getenv("TIMECLOCK_SEED_DEFAULT_USERS"); seed != "" {
		if b, err := strconv.ParseBool(seed); err == nil {
			c.Seed.DefaultUsers = b
		}
	}

	// Application configuration
	if level := os.Getenv("TIMECLOCK_LOG_LEVEL"); level != "" {
		c.Application.LogLevel = level
	}
	if format := os.Getenv("TIMECLOCK_LOG_FORMAT"); format != "" {
		c.Application.LogFormat = format
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate server configuration
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return &ConfigError{Field: "server.port", Message: "port must be between 1 and 65535"}
	}
	if c.Server.ReadTimeout <= 0 {
		return &ConfigError{Field: "server.read_timeout", Message: "read timeout must be positive"}
	}
	if c.Server.WriteTimeout <= 0 {
		return &ConfigError{Field: "server.write_timeout", Message: "write timeout must be positive"}
	}
	if c.Server.ShutdownTimeout <= 0 {
		return &ConfigError{Field: "server.shutdown_timeout", Message: "shutdown timeout must be positive"}
	}

	// Validate storage configuration
	if c.Storage.Backend != StorageBackendJSONFile && c.Storage.Backend != StorageBackendSQLite {
		return &ConfigError{Field: "storage.backend", Message: "backend must be jsonfile or sqlite"}
	}
	if c.Storage.Dir == "" {
		return &ConfigError{Field: "storage.dir", Message: "storage directory cannot be empty"}
	}
	if c.Storage.Backend == StorageBackendSQLite && c.Storage.SQLiteFilename == "" {
		return &ConfigError{Field: "storage.sqlite_filename", Message: "sqlite filename cannot be empty"}
	}

	// Validate entries configuration
	if c.Entries.EditedFlagTTL <= 0 {
		return &ConfigError{Field: "entries.edited_flag_ttl", Message: "edited flag TTL must be positive"}
	}

	// Validate application configuration
	switch c.Application.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ConfigError{Field: "application.log_level", Message: "log level must be debug, info, warn or error"}
	}
	switch c.Application.LogFormat {
	case "json", "text":
	default:
		return &ConfigError{Field: "application.log_format", Message: "log format must be json or text"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
