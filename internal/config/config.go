// Package config loads chankeys settings from defaults, an optional YAML
// file and CHANKEYS_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"go-simpler.org/env"
	"gopkg.in/yaml.v3"

	"github.com/pivaldi/channels/internal/hashes"
)

// Config for the chankeys command.
type Config struct {
	Hash     string `yaml:"hash" env:"CHANKEYS_HASH" usage:"64-byte hash used for derivation"`
	Seed     string `yaml:"seed" env:"CHANKEYS_SEED" usage:"path to the identity seed file"`
	LogLevel string `yaml:"log_level" env:"CHANKEYS_LOG_LEVEL" usage:"debug, info, warn or error"`
	Workers  int    `yaml:"workers" env:"CHANKEYS_WORKERS" usage:"concurrent derivations"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Hash:     hashes.Default,
		LogLevel: "info",
		Workers:  runtime.NumCPU(),
	}
}

// Load builds a Config from the defaults, the YAML file at path when path is
// not empty, and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := env.Load(cfg, &env.Options{}); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the hash name and worker count.
func (c *Config) Validate() error {
	if _, err := hashes.Lookup(c.Hash); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Workers < 1 {
		return errors.New("config: workers must be at least 1")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
