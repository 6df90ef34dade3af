package config

import "time"

// Config is the top-level userboard configuration, corresponding to .userboard.yml.
type Config struct {
	Server   ServerConfig   `yaml:"server" koanf:"server"`
	Database DatabaseConfig `yaml:"database" koanf:"database"`
	Views    ViewsConfig    `yaml:"views" koanf:"views"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host            string        `yaml:"host" koanf:"host"`
	Port            int           `yaml:"port" koanf:"port"`
	AllowAllOrigins bool          `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	RequestTimeout  time.Duration `yaml:"request_timeout" koanf:"request_timeout"`
}

// DatabaseConfig holds the SQLite file location and pool limits.
type DatabaseConfig struct {
	Path           string        `yaml:"path" koanf:"path"`
	MaxConns       int           `yaml:"max_conns" koanf:"max_conns"`
	AcquireTimeout time.Duration `yaml:"acquire_timeout" koanf:"acquire_timeout"`
}

// ViewsConfig toggles the server-rendered HTML pages.
type ViewsConfig struct {
	Enabled bool `yaml:"enabled" koanf:"enabled"`
}
