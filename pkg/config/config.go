package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every environment variable name
const Prefix = "SDFTRACE"

// Config is the process configuration shared by the CLI and the web server.
// Each field is read from SDFTRACE_<NAME>.
type Config struct {
	Workers   int    `envconfig:"WORKERS" default:"0"`
	Seed      uint64 `envconfig:"SEED" default:"42"`
	Width     int    `envconfig:"WIDTH" default:"400"`
	Height    int    `envconfig:"HEIGHT" default:"225"`
	OutputDir string `envconfig:"OUTPUT_DIR" default:"output"`
	ScenesDir string `envconfig:"SCENES_DIR" default:"scenes"`
	Port      int    `envconfig:"PORT" default:"8080"`
	MaxPixels int    `envconfig:"MAX_PIXELS" default:"4000000"`
}

// Load reads the configuration from the environment and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings no render could use
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	if c.MaxPixels <= 0 {
		return fmt.Errorf("max pixels must be positive, got %d", c.MaxPixels)
	}
	return nil
}
