// Package config provides centralized configuration for the simulator.
//
// Values come from built-in defaults, then an optional TOML file, then
// GITSIM_* environment variables, each layer overriding the previous one.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/kurobon/gitsim/internal/progress"
)

const (
	EnvPrefix      = "GITSIM_"
	EnvConfigFile  = EnvPrefix + "CONFIG"
	DefaultDataDir = ".gitsim-data"
)

var ErrInvalid = errors.New("invalid configuration")

// Config holds application-wide configuration.
type Config struct {
	HTTP      HTTP      `toml:"http"`
	Log       Log       `toml:"log"`
	Progress  Progress  `toml:"progress"`
	Simulator Simulator `toml:"simulator"`
}

type HTTP struct {
	Address string `toml:"address" validate:"required"`
}

type Log struct {
	Level       string `toml:"level" validate:"oneof=debug info warn error"`
	Development bool   `toml:"development"`
}

type Progress struct {
	Driver string `toml:"driver" validate:"oneof=memory sqlite badger"`
	// DSN is the sqlite database path; empty means <dir>/progress.db
	DSN string `toml:"dsn"`
	Dir string `toml:"dir" validate:"required_unless=Driver memory"`
}

type Simulator struct {
	XPPerCommand int    `toml:"xp_per_command" validate:"gte=0"`
	UserID       string `toml:"user_id"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTP{Address: ":8080"},
		Log:  Log{Level: "info"},
		Progress: Progress{
			Driver: progress.DriverMemory,
			Dir:    DefaultDataDir,
		},
		Simulator: Simulator{
			XPPerCommand: 10,
			UserID:       "local",
		},
	}
}

// Load builds the configuration. path names a TOML file; when empty the
// GITSIM_CONFIG variable is consulted, and when that is empty too no file
// is read.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"HTTP_ADDRESS":    &c.HTTP.Address,
		"LOG_LEVEL":       &c.Log.Level,
		"PROGRESS_DRIVER": &c.Progress.Driver,
		"PROGRESS_DSN":    &c.Progress.DSN,
		"DATA_DIR":        &c.Progress.Dir,
		"USER_ID":         &c.Simulator.UserID,
	}
	for key, dst := range strs {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}

	if v, ok := lookup(EnvPrefix + "LOG_DEVELOPMENT"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sLOG_DEVELOPMENT: %w", ErrInvalid, EnvPrefix, err)
		}
		c.Log.Development = b
	}
	if v, ok := lookup(EnvPrefix + "XP_PER_COMMAND"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sXP_PER_COMMAND: %w", ErrInvalid, EnvPrefix, err)
		}
		c.Simulator.XPPerCommand = n
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field against its constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// ProgressOptions translates the progress section for progress.Open
func (c *Config) ProgressOptions() progress.Options {
	return progress.Options{
		Driver: c.Progress.Driver,
		DSN:    c.Progress.DSN,
		Dir:    c.Progress.Dir,
	}
}
