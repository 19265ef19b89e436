// Package config loads the jeepscore configuration file. Configuration
// is HCL; every field is optional and falls back to a default.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete configuration.
type Config struct {
	LogLevel string       `hcl:"log_level,optional"`
	Store    *StoreConfig `hcl:"store,block"`
	Game     *GameConfig  `hcl:"game,block"`
}

// StoreConfig selects and locates the persistence backend.
type StoreConfig struct {
	// Driver is one of "file", "sqlite", or "memory".
	Driver string `hcl:"driver,optional"`
	Path   string `hcl:"path,optional"`
}

// GameConfig holds game-level settings.
type GameConfig struct {
	// Retention caps how many saved games the repository keeps. Zero
	// disables eviction; a pointer distinguishes an explicit zero from
	// an unset value.
	Retention *int `hcl:"retention,optional"`
	// DefaultAlgorithm is the scoring algorithm tag new games start with.
	DefaultAlgorithm string `hcl:"default_algorithm,optional"`
}

// RetentionCap returns the configured saved-game cap, zero meaning
// eviction is disabled. Defaults are applied at load time, so this only
// falls back for a hand-built GameConfig.
func (c *GameConfig) RetentionCap() int {
	if c.Retention == nil {
		return defaultRetention
	}
	return *c.Retention
}

const defaultRetention = 10

// Default returns the configuration used when no file is present: a
// file store under the user's home directory, a retention cap of 10,
// and spread/split scoring.
func Default() *Config {
	retention := defaultRetention
	return &Config{
		LogLevel: "info",
		Store: &StoreConfig{
			Driver: "file",
			Path:   defaultStorePath(),
		},
		Game: &GameConfig{
			Retention:        &retention,
			DefaultAlgorithm: "spread-split",
		},
	}
}

// Load parses the HCL file at path and fills unset fields from the
// defaults.
func Load(path string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config %s: %s", path, diags.Error())
	}

	var cfg Config
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config %s: %s", path, diags.Error())
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// LoadOrDefault loads path when it exists and otherwise returns the
// defaults. An empty path means the default location.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(homeDir(), ".jeepscore", "config.hcl")
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
	if cfg.Store == nil {
		cfg.Store = def.Store
	} else {
		if cfg.Store.Driver == "" {
			cfg.Store.Driver = def.Store.Driver
		}
		if cfg.Store.Path == "" {
			cfg.Store.Path = defaultPathForDriver(cfg.Store.Driver)
		}
	}
	if cfg.Game == nil {
		cfg.Game = def.Game
	} else {
		if cfg.Game.Retention == nil {
			cfg.Game.Retention = def.Game.Retention
		}
		if cfg.Game.DefaultAlgorithm == "" {
			cfg.Game.DefaultAlgorithm = def.Game.DefaultAlgorithm
		}
	}
}

func defaultStorePath() string {
	return filepath.Join(homeDir(), ".jeepscore", "games.json")
}

func defaultPathForDriver(driver string) string {
	if driver == "sqlite" {
		return filepath.Join(homeDir(), ".jeepscore", "games.db")
	}
	return defaultStorePath()
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
