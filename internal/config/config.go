package config

import (
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override. Nested keys use a double
// underscore: USERBOARD_SERVER__PORT -> server.port.
const EnvPrefix = "USERBOARD_"

// LoadEnvFile loads KEY=value pairs from a .env file into the process
// environment. Variables that are already set win. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("reading env file %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (USERBOARD_*, then PORT and DATABASE_PATH).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	loadConventionalEnv(k)

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// loadConventionalEnv maps the unprefixed variables most hosting platforms set.
func loadConventionalEnv(k *koanf.Koanf) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			k.Set("server.port", port)
		} else {
			log.Printf("ignoring non-numeric PORT %q", v)
		}
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		k.Set("database.path", v)
	}
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", c.Server.Port)
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("server.request_timeout must be positive")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Database.MaxConns <= 0 {
		return fmt.Errorf("database.max_conns must be positive")
	}
	if c.Database.AcquireTimeout <= 0 {
		return fmt.Errorf("database.acquire_timeout must be positive")
	}
	return nil
}

// Addr returns the host:port the server listens on.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}
