package cmd

import (
	"fmt"
	"os"

	"github.com/ziadkadry99/userboard/internal/config"
	"github.com/ziadkadry99/userboard/internal/db"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `userboard init` to create a config file", err)
	}
	return cfg, nil
}

// openDatabase creates the database file and schema if needed and opens the pool.
func openDatabase(cfg *config.Config) (*db.DB, error) {
	database, err := db.Open(cfg.Database.Path, db.Options{
		MaxConns:       cfg.Database.MaxConns,
		AcquireTimeout: cfg.Database.AcquireTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", cfg.Database.Path, err)
	}
	return database, nil
}

// printConfig writes the effective configuration to stderr in verbose mode.
func printConfig(cfg *config.Config) {
	if !verbose {
		return
	}
	fmt.Fprintf(os.Stderr, "  Config file: %s\n", cfgFile)
	fmt.Fprintf(os.Stderr, "  Listen: %s\n", cfg.Addr())
	fmt.Fprintf(os.Stderr, "  Database: %s (max %d conns, %s acquire timeout)\n",
		cfg.Database.Path, cfg.Database.MaxConns, cfg.Database.AcquireTimeout)
	fmt.Fprintf(os.Stderr, "  Views: %t, allow all origins: %t\n", cfg.Views.Enabled, cfg.Server.AllowAllOrigins)
}
