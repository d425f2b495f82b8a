// Package config loads the rpndate CLI configuration from TOML.
//
// A configuration file is optional. Lookup order is the --config flag, then
// RPNDATE_CONFIG, then ./rpndate.toml, then
// $HOME/.config/rpndate/config.toml; when none exists the defaults are used.
// RPNDATE_DB always overrides the database path.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Defaults applied to any field left empty.
const (
	DefaultDBPath    = ".rpndate/catalog.db"
	DefaultFormat    = "text"
	DefaultLogLevel  = "warn"
	DefaultStepHours = 6.0
)

// Config holds the complete CLI configuration.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Output   OutputConfig   `toml:"output"`
	Log      LogConfig      `toml:"log"`
	Range    RangeConfig    `toml:"range"`
}

// DatabaseConfig locates the SQLite catalogue.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// OutputConfig selects how commands print results: text, json or yaml.
type OutputConfig struct {
	Format string `toml:"format"`
}

// LogConfig sets the slog level: debug, info, warn or error.
type LogConfig struct {
	Level string `toml:"level"`
}

// RangeConfig holds defaults for range traversal commands.
type RangeConfig struct {
	StepHours float64 `toml:"step_hours"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from a TOML file.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Resolve finds and loads the configuration. An explicit path must exist;
// otherwise the first file found in the lookup order is used, or the
// defaults when there is none.
func Resolve(explicit string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	if p := os.Getenv("RPNDATE_CONFIG"); p != "" {
		return Load(p)
	}
	candidates := []string{"./rpndate.toml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "rpndate", "config.toml"))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	cfg := Default()
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Database.Path == "" {
		c.Database.Path = DefaultDBPath
	}
	if c.Output.Format == "" {
		c.Output.Format = DefaultFormat
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Range.StepHours == 0 {
		c.Range.StepHours = DefaultStepHours
	}
}

func (c *Config) applyEnv() {
	if p := os.Getenv("RPNDATE_DB"); p != "" {
		c.Database.Path = p
	}
}

// Validate checks the enumerated fields.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Output.Format) {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("output.format must be text, json or yaml, got %q", c.Output.Format)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel converts Log.Level to a slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}
