// Package config provides the server configuration: a YAML file overlaid
// with environment variables, so deployments can override single settings
// without shipping a new file.
package config

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/simplechess/simplechess-go/internal/errors"
)

// Config holds all server settings.
type Config struct {
	// ListenAddr is the address the HTTP server binds to.
	ListenAddr string `yaml:"listen_addr"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// LogFormat is json or console.
	LogFormat string `yaml:"log_format"`

	// MaxGames caps the number of games held in memory at once.
	MaxGames int `yaml:"max_games"`

	// PerftWorkers is the goroutine count for parallel move-tree counts.
	PerftWorkers int `yaml:"perft_workers"`

	// AllowedOrigins is the CORS allow list for the HTTP and websocket
	// surfaces.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Default returns the built-in defaults used when no file or environment
// override is present.
func Default() *Config {
	return &Config{
		ListenAddr:   ":3000",
		LogLevel:     "info",
		LogFormat:    "console",
		MaxGames:     1000,
		PerftWorkers: 4,
	}
}

// Load builds the configuration from the optional YAML file at path and the
// environment. An empty path skips the file; a missing file at an explicit
// path is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read config file %s", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config file %s", path)
		}
	}

	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays CHESSD_-prefixed environment variables.
func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("CHESSD_LISTEN_ADDR")); v != "" {
		c.ListenAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("CHESSD_LOG_LEVEL")); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("CHESSD_LOG_FORMAT")); v != "" {
		c.LogFormat = v
	}
	if v := strings.TrimSpace(os.Getenv("CHESSD_MAX_GAMES")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.MaxGames = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("CHESSD_PERFT_WORKERS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.PerftWorkers = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("CHESSD_ALLOWED_ORIGINS")); v != "" {
		c.AllowedOrigins = nil
		for _, part := range strings.Split(v, ",") {
			if s := strings.TrimSpace(part); s != "" {
				c.AllowedOrigins = append(c.AllowedOrigins, s)
			}
		}
	}
}

func (c *Config) validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.Wrapf(errors.ErrInvalidArgument, "log level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return errors.Wrapf(errors.ErrInvalidArgument, "log format %q", c.LogFormat)
	}
	if c.ListenAddr == "" {
		return errors.Wrap(errors.ErrInvalidArgument, "empty listen address")
	}
	if c.MaxGames < 1 {
		return errors.Wrapf(errors.ErrInvalidArgument, "max games %d", c.MaxGames)
	}
	if c.PerftWorkers < 1 {
		return errors.Wrapf(errors.ErrInvalidArgument, "perft workers %d", c.PerftWorkers)
	}
	return nil
}
