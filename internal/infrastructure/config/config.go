package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Accepted spellings for the enumerated database settings.
var (
	journalModes     = []string{"DELETE", "TRUNCATE", "PERSIST", "MEMORY", "WAL", "OFF"}
	synchronousModes = []string{"OFF", "NORMAL", "FULL", "EXTRA"}
	tiers            = []string{"auto", "legacy", "open_params", "tuning"}
)

// Config is the root configuration structure for glsqlite.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DatabaseConfig describes the database to open, delete or inspect.
type DatabaseConfig struct {
	// Dir is the directory holding the database files.
	Dir string `yaml:"dir"`

	// Name is the database file name inside Dir.
	Name string `yaml:"name"`

	// Version is the schema version the application expects (>= 1).
	Version int `yaml:"version"`

	// ReadOnly requests a strictly read-only connection.
	ReadOnly bool `yaml:"read_only"`

	// InMemory requests a database with no backing file when the engine supports it.
	InMemory bool `yaml:"in_memory"`

	// JournalMode is one of DELETE, TRUNCATE, PERSIST, MEMORY, WAL, OFF.
	JournalMode string `yaml:"journal_mode"`

	// SynchronousMode is one of OFF, NORMAL, FULL, EXTRA.
	SynchronousMode string `yaml:"synchronous_mode"`

	// BusyTimeout is the maximum time to wait for a database lock (seconds).
	BusyTimeout int `yaml:"busy_timeout"`

	// Lookaside sizes the engine's small-allocation pool.
	Lookaside LookasideConfig `yaml:"lookaside"`

	// Tier pins the capability tier: auto, legacy, open_params or tuning.
	// "auto" asks the engine.
	Tier string `yaml:"tier"`

	// SchemaDir optionally points at NNNN_name.up.sql files used to
	// create and upgrade the schema.
	SchemaDir string `yaml:"schema_dir"`
}

// LookasideConfig contains lookaside buffer sizing. Both zero means engine default.
type LookasideConfig struct {
	SlotSize  int `yaml:"slot_size"`
	SlotCount int `yaml:"slot_count"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: GLSQLITE_SECTION_KEY
// For example: GLSQLITE_DATABASE_DIR, GLSQLITE_LOG_LEVEL
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns the default configuration with environment overrides applied.
// It is used when no configuration file exists.
func Default() (*Config, error) {
	cfg := defaultConfig()
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Dir:             "./data",
			Name:            "app.db",
			Version:         1,
			JournalMode:     "WAL",
			SynchronousMode: "NORMAL",
			BusyTimeout:     5,
			Tier:            "auto",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: GLSQLITE_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Database
	if v := os.Getenv("GLSQLITE_DATABASE_DIR"); v != "" {
		cfg.Database.Dir = v
	}
	if v := os.Getenv("GLSQLITE_DATABASE_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("GLSQLITE_DATABASE_VERSION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Database.Version = n
		}
	}
	if v := os.Getenv("GLSQLITE_TIER"); v != "" {
		cfg.Database.Tier = v
	}

	// Logging
	if v := os.Getenv("GLSQLITE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of every validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string
	db := c.Database

	if db.Name == "" && !db.InMemory {
		errs = append(errs, "database.name is required unless database.in_memory is set")
	}
	if db.Dir == "" && !db.InMemory {
		errs = append(errs, "database.dir is required unless database.in_memory is set")
	}
	if db.Version < 1 {
		errs = append(errs, "database.version must be at least 1")
	}
	if !slices.Contains(journalModes, strings.ToUpper(db.JournalMode)) {
		errs = append(errs, fmt.Sprintf("database.journal_mode must be one of %s", strings.Join(journalModes, ", ")))
	}
	if !slices.Contains(synchronousModes, strings.ToUpper(db.SynchronousMode)) {
		errs = append(errs, fmt.Sprintf("database.synchronous_mode must be one of %s", strings.Join(synchronousModes, ", ")))
	}
	if db.BusyTimeout < 0 {
		errs = append(errs, "database.busy_timeout must not be negative")
	}
	if db.Lookaside.SlotSize < 0 || db.Lookaside.SlotCount < 0 {
		errs = append(errs, "database.lookaside values must not be negative")
	} else if (db.Lookaside.SlotSize == 0) != (db.Lookaside.SlotCount == 0) {
		errs = append(errs, "database.lookaside.slot_size and slot_count must be set together")
	}
	if !slices.Contains(tiers, strings.ToLower(db.Tier)) {
		errs = append(errs, fmt.Sprintf("database.tier must be one of %s", strings.Join(tiers, ", ")))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetBusyTimeout returns the database busy timeout as a Duration.
func (c *Config) GetBusyTimeout() time.Duration {
	return time.Duration(c.Database.BusyTimeout) * time.Second
}
