// Package cli implements the gymlog command tree. Commands are boundary
// glue: argument parsing and printing live here, every invariant lives in
// the storage layer.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/claude/gymlog/internal/config"
	"github.com/claude/gymlog/internal/storage"
	"github.com/claude/gymlog/internal/templates"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "gymlog",
	Short: "Personal workout log",
	Long: `gymlog keeps a local log of training sessions, the exercises performed
in them, and the sets recorded for each exercise. Data lives in a single
SQLite file; export dumps it faithfully to CSV and JSON.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: built-in defaults)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func logger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

// openStore initializes the process-wide store: config, connection,
// migrations, and the one-time catalog seed.
func openStore(ctx context.Context) (*storage.DB, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := storage.Init(ctx, cfg.Database.Path, logger())
	if err != nil {
		return nil, nil, err
	}

	if cfg.Seed.CatalogPath != "" {
		f, err := os.Open(cfg.Seed.CatalogPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening seed catalog: %w", err)
		}
		defer f.Close()
		if _, err := db.SeedExercises(ctx, f); err != nil {
			return nil, nil, err
		}
	} else if _, err := db.SeedExercisesDefault(ctx); err != nil {
		return nil, nil, err
	}

	return db, cfg, nil
}

func loadTemplates(cfg *config.Config) (*templates.Library, error) {
	if cfg.Templates.Path != "" {
		return templates.LoadFile(cfg.Templates.Path)
	}
	return templates.Default(), nil
}
