// Package config loads application configuration with koanf v2.
//
// Loading is layered, lowest priority first:
//  1. Built-in defaults (structs provider)
//  2. Environment variables (PORT, DB_PATH, JWT_SECRET, ...)
//
// The config is immutable after Load and safe for concurrent reads.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config holds every runtime setting the server needs.
//
// YouTubeAPIKey is deliberately NOT validated at startup: a missing key
// is a per-request failure on the /api/boost routes, not a reason to
// refuse to serve goals and todos.
type Config struct {
	Port          int    `koanf:"port"`
	DBPath        string `koanf:"db_path"`
	JWTSecret     string `koanf:"jwt_secret"`
	YouTubeAPIKey string `koanf:"youtube_api_key"`
	BcryptCost    int    `koanf:"bcrypt_cost"`
	LogLevel      string `koanf:"log_level"`
	CORSOrigins   string `koanf:"cors_origins"`
}

func defaults() Config {
	return Config{
		Port:        8080,
		DBPath:      "data/focusflow.db",
		BcryptCost:  12,
		LogLevel:    "info",
		CORSOrigins: "*",
	}
}

// Load reads defaults and environment variables into a Config.
//
// Environment variable names map to lower-cased koanf keys, so
// JWT_SECRET populates jwt_secret. Unknown variables are ignored by the
// unmarshal step.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: loading defaults: %w", err)
	}

	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("config: loading environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshaling: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the settings the server cannot run without.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: invalid port %d", c.Port)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET is required")
	}
	if len(c.JWTSecret) < 16 {
		return fmt.Errorf("config: JWT_SECRET must be at least 16 characters")
	}
	if c.DBPath == "" {
		return fmt.Errorf("config: DB_PATH must not be empty")
	}
	return nil
}

// Origins splits the comma-separated CORS_ORIGINS value.
func (c *Config) Origins() []string {
	parts := strings.Split(c.CORSOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
