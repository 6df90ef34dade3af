package config

import "time"

// DefaultPath is the config file read when --config is not given.
const DefaultPath = ".userboard.yml"

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            3000,
			AllowAllOrigins: true,
			RequestTimeout:  60 * time.Second,
		},
		Database: DatabaseConfig{
			Path:           "db.db",
			MaxConns:       5,
			AcquireTimeout: 5 * time.Second,
		},
		Views: ViewsConfig{
			Enabled: true,
		},
	}
}
