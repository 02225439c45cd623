package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Seed      SeedConfig      `yaml:"seed"`
	Templates TemplatesConfig `yaml:"templates"`
	Export    ExportConfig    `yaml:"export"`
	Limits    LimitsConfig    `yaml:"limits"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type SeedConfig struct {
	// CatalogPath points at a seed CSV. Empty means the embedded catalog.
	CatalogPath string `yaml:"catalog_path"`
}

type TemplatesConfig struct {
	// Path points at a templates YAML. Empty means the embedded templates.
	Path string `yaml:"path"`
}

type ExportConfig struct {
	Dir string `yaml:"dir"`
}

type LimitsConfig struct {
	Sessions  int `yaml:"sessions"`
	Exercises int `yaml:"exercises"`
}

// Default returns the configuration used when no config file is given:
// everything under the user's data directory.
func Default() *Config {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	base := filepath.Join(dataDir, "gymlog")
	cfg := &Config{
		Database: DatabaseConfig{Path: filepath.Join(base, "gym_log.db")},
		Export:   ExportConfig{Dir: filepath.Join(base, "exports")},
		Limits:   LimitsConfig{Sessions: 20, Exercises: 500},
	}
	applyEnvOverrides(cfg)
	return cfg
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Env vars use the prefix GYMLOG_ and underscore-separated paths:
//
//	GYMLOG_DB_PATH, GYMLOG_SEED_CATALOG, GYMLOG_TEMPLATES_PATH,
//	GYMLOG_EXPORT_DIR, GYMLOG_LIMIT_SESSIONS, GYMLOG_LIMIT_EXERCISES
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GYMLOG_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("GYMLOG_SEED_CATALOG"); v != "" {
		cfg.Seed.CatalogPath = v
	}
	if v := os.Getenv("GYMLOG_TEMPLATES_PATH"); v != "" {
		cfg.Templates.Path = v
	}
	if v := os.Getenv("GYMLOG_EXPORT_DIR"); v != "" {
		cfg.Export.Dir = v
	}
	if v := os.Getenv("GYMLOG_LIMIT_SESSIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Limits.Sessions = n
		}
	}
	if v := os.Getenv("GYMLOG_LIMIT_EXERCISES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Limits.Exercises = n
		}
	}
}

func (c *Config) validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Export.Dir == "" {
		return fmt.Errorf("export.dir is required")
	}
	if c.Limits.Sessions < 0 || c.Limits.Exercises < 0 {
		return fmt.Errorf("limits must not be negative")
	}
	return nil
}
