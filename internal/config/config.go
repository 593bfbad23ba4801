// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/overlap/internal/slot"
)

// Config holds the application configuration.
type Config struct {
	Grid    GridConfig    `toml:"grid"`
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
}

// GridConfig holds availability grid settings.
type GridConfig struct {
	ViewWindowSize int     `toml:"view_window_size"` // date columns shown at once
	BestTimesDim   float64 `toml:"best_times_dim"`   // intensity of non-best slots, 0 < dim < 1
	DefaultStart   string  `toml:"default_start"`    // e.g., "09:00"
	DefaultEnd     string  `toml:"default_end"`      // e.g., "17:00"
	TimeZone       string  `toml:"time_zone"`        // IANA name, empty means local
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte", "light"
	Name  string `toml:"name"`  // default participant name
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			ViewWindowSize: 7,
			BestTimesDim:   0.2,
			DefaultStart:   "09:00",
			DefaultEnd:     "17:00",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "mocha",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "overlap.db"
	}
	return filepath.Join(home, ".local", "share", "overlap", "overlap.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "overlap", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
// A .env file in the working directory is read first, if present.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadEnvFile reads KEY=VALUE pairs from a dotenv file into the process
// environment without overriding variables that are already set.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file: %w", err)
	}
	return nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("OVERLAP_VIEW_WINDOW_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("OVERLAP_VIEW_WINDOW_SIZE: %w", err)
		}
		cfg.Grid.ViewWindowSize = n
	}
	if v := os.Getenv("OVERLAP_BEST_TIMES_DIM"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("OVERLAP_BEST_TIMES_DIM: %w", err)
		}
		cfg.Grid.BestTimesDim = f
	}
	if v := os.Getenv("OVERLAP_DEFAULT_START"); v != "" {
		cfg.Grid.DefaultStart = v
	}
	if v := os.Getenv("OVERLAP_DEFAULT_END"); v != "" {
		cfg.Grid.DefaultEnd = v
	}
	if v := os.Getenv("OVERLAP_TIME_ZONE"); v != "" {
		cfg.Grid.TimeZone = v
	}

	if v := os.Getenv("OVERLAP_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	if v := os.Getenv("OVERLAP_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("OVERLAP_NAME"); v != "" {
		cfg.UI.Name = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Grid.ViewWindowSize < 1 {
		return errors.New("view_window_size must be at least 1")
	}
	if c.Grid.BestTimesDim <= 0 || c.Grid.BestTimesDim >= 1 {
		return fmt.Errorf("best_times_dim must be between 0 and 1, got %v", c.Grid.BestTimesDim)
	}
	if err := validateTime(c.Grid.DefaultStart, "default_start"); err != nil {
		return err
	}
	if err := validateTime(c.Grid.DefaultEnd, "default_end"); err != nil {
		return err
	}
	if c.Grid.DefaultEnd != "00:00" && c.Grid.DefaultStart >= c.Grid.DefaultEnd {
		return errors.New("default_start must be before default_end")
	}
	if c.Grid.TimeZone != "" {
		if _, err := time.LoadLocation(c.Grid.TimeZone); err != nil {
			return fmt.Errorf("invalid time_zone %q", c.Grid.TimeZone)
		}
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// validateTime checks that a time is HH:MM on a half-hour boundary.
func validateTime(t, field string) error {
	if len(t) != 5 {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	if _, ok := slot.Minutes(t); !ok {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	if !slot.IsAligned(t) {
		return fmt.Errorf("%s must be on a 30 minute boundary, got %q", field, t)
	}
	return nil
}

// Location returns the configured time zone, or time.Local.
func (c *Config) Location() *time.Location {
	if c.Grid.TimeZone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Grid.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
