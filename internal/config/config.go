// Package config provides the TOML configuration file and default paths.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. Pointer fields
// distinguish "unset" from a zero value; Resolve applies the defaults.
type FileConfig struct {
	Display DisplayConfig `toml:"display"`
	Storage StorageConfig `toml:"storage"`
}

// DisplayConfig maps presentation settings.
type DisplayConfig struct {
	Currency     *string `toml:"currency"`
	TopGames     *int    `toml:"top-games"`
	TopProviders *int    `toml:"top-providers"`
}

// StorageConfig maps store settings.
type StorageConfig struct {
	Database *string `toml:"database"`
}

// Config is the resolved configuration the rest of the app consumes.
type Config struct {
	Currency     string
	TopGames     int
	TopProviders int
	DBPath       string
}

// Load reads a TOML config from the given path. Missing file is not an error.
func Load(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Resolve fills in defaults for anything the file left unset.
func (f FileConfig) Resolve() Config {
	cfg := Config{
		Currency:     "$",
		TopGames:     15,
		TopProviders: 5,
		DBPath:       DefaultDBPath(),
	}
	if f.Storage.Database != nil && *f.Storage.Database != "" {
		cfg.DBPath = *f.Storage.Database
	}
	if f.Display.Currency != nil {
		cfg.Currency = *f.Display.Currency
	}
	if f.Display.TopGames != nil && *f.Display.TopGames > 0 {
		cfg.TopGames = *f.Display.TopGames
	}
	if f.Display.TopProviders != nil && *f.Display.TopProviders > 0 {
		cfg.TopProviders = *f.Display.TopProviders
	}
	return cfg
}

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "bbtrack", "config.toml")
}

// DefaultDBPath returns the default path for the SQLite database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), "bbtrack", "bbtrack.db")
}
