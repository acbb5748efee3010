// Package config loads and saves deskpad's TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Config holds all deskpad configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	Expenses   ExpensesConfig   `toml:"expenses"`
	Log        LogConfig        `toml:"log"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	Variant string `toml:"variant" env:"VARIANT"`
	DataDir string `toml:"data_dir,omitempty" env:"DATA_DIR"`
}

// AppearanceConfig holds theme settings. Dark selects between Theme and
// LightTheme, and is flipped by the TUI's theme toggle.
type AppearanceConfig struct {
	Theme      string `toml:"theme" env:"THEME"`
	LightTheme string `toml:"light_theme" env:"LIGHT_THEME"`
	Dark       bool   `toml:"dark"`
}

// ExpensesConfig holds expense display settings.
type ExpensesConfig struct {
	Currency string `toml:"currency" env:"CURRENCY"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string `toml:"level" env:"LOG_LEVEL"`
}

// envPrefix namespaces every environment override, e.g. DESKPAD_DATA_DIR.
const envPrefix = "DESKPAD_"

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Variant: "multi",
		},
		Appearance: AppearanceConfig{
			Theme:      "flexoki-dark",
			LightTheme: "flexoki-light",
			Dark:       true,
		},
		Expenses: ExpensesConfig{
			Currency: "₹",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "deskpad")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "deskpad")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// DefaultDataDir returns where the slot database lives when no data_dir
// is configured.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "deskpad")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "deskpad")
}

// Load reads the config file, returning defaults if it doesn't exist.
// Environment overrides are applied on top of the file.
func Load() (Config, error) {
	cfg, err := loadFile()
	if err != nil {
		return cfg, err
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadFile returns the defaults overlaid with the config file only.
func loadFile() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		return fmt.Errorf("parsing env: %w", err)
	}
	return nil
}

// envFields lists every field that has an env override.
var envFields = []func(*Config) *string{
	func(c *Config) *string { return &c.General.Variant },
	func(c *Config) *string { return &c.General.DataDir },
	func(c *Config) *string { return &c.Appearance.Theme },
	func(c *Config) *string { return &c.Appearance.LightTheme },
	func(c *Config) *string { return &c.Expenses.Currency },
	func(c *Config) *string { return &c.Log.Level },
}

// withoutEnv undoes environment overrides that cfg still carries, so a
// value that only came from DESKPAD_* never reaches the file. Fields the
// caller changed away from the env value are kept.
func withoutEnv(cfg Config) Config {
	base, err := loadFile()
	if err != nil {
		base = DefaultConfig()
	}
	overlay := base
	if err := applyEnv(&overlay); err != nil {
		return cfg
	}

	for _, field := range envFields {
		fromEnv := *field(&overlay)
		if fromEnv != *field(&base) && *field(&cfg) == fromEnv {
			*field(&cfg) = *field(&base)
		}
	}
	return cfg
}

// Save writes the config to disk. Values still equal to an active
// environment override are written as the file had them.
func Save(cfg Config) error {
	cfg = withoutEnv(cfg)

	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// DataDir resolves the data directory: the flag value wins, then the
// config, then the default location.
func (c Config) DataDir(flag string) string {
	if flag != "" {
		return flag
	}
	if c.General.DataDir != "" {
		return c.General.DataDir
	}
	return DefaultDataDir()
}

// ActiveTheme returns the theme name for the current dark/light mode.
func (c Config) ActiveTheme() string {
	if c.Appearance.Dark {
		return c.Appearance.Theme
	}
	return c.Appearance.LightTheme
}
