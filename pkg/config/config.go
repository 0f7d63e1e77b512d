// Package config carries the process configuration, merged from flags
// and the environment.
package config

import (
	"os"
	"strings"
)

// Config holds everything the server needs at start-up.
type Config struct {
	Debug   bool
	Port    string
	APIKeys []string // empty disables authentication
}

// Load builds the configuration. Flag values win; PORT and API_KEYS come
// from the environment (a .env file is loaded by main before this runs).
func Load(debug bool, port string) *Config {
	cfg := &Config{
		Debug: debug,
		Port:  port,
	}

	if cfg.Port == "" {
		cfg.Port = os.Getenv("PORT")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if envKeys := os.Getenv("API_KEYS"); envKeys != "" {
		keys := strings.Split(envKeys, ",")
		for i, key := range keys {
			keys[i] = strings.TrimSpace(key)
		}
		cfg.APIKeys = keys
	}

	return cfg
}
