// Package config loads settings shared by the infcounter binaries from the
// environment, optionally seeded from a .env file.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	EnvLogLevel    = "INFCOUNTER_LOG_LEVEL"
	EnvAnnounceDir = "INFCOUNTER_ANNOUNCE_DIR"

	DefaultLogLevel = "warn"
)

type Config struct {
	// LogLevel is a log15 level name: debug, info, warn, error or crit.
	LogLevel string
	// AnnounceDir is where counters publish themselves. Empty disables
	// announcing.
	AnnounceDir string
}

// Load reads the configuration from the environment. Variables set in a .env
// file in the working directory are used when the environment doesn't set
// them already; a missing .env file is not an error.
func Load() (Config, error) {
	return load(".env")
}

func load(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return Config{}, errors.Wrapf(err, "could not load %s", envFile)
	}
	cfg := Config{
		LogLevel:    DefaultLogLevel,
		AnnounceDir: os.Getenv(EnvAnnounceDir),
	}
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		cfg.LogLevel = lvl
	}
	return cfg, nil
}
