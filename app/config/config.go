package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the server settings read from the environment.
type Config struct {
	Port                 int
	LogLevel             string
	ConfirmDeletes       bool
	DeleteDelay          time.Duration
	RequirePositivePrice bool
	ShutdownTimeout      time.Duration
}

func defaults() Config {
	return Config{
		Port:                 8080,
		LogLevel:             "info",
		ConfirmDeletes:       true,
		DeleteDelay:          600 * time.Millisecond,
		RequirePositivePrice: true,
		ShutdownTimeout:      10 * time.Second,
	}
}

// Load reads the given .env files (missing ones are skipped) and then the
// process environment. Values already set in the environment win.
func Load(files ...string) (Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from a lookup function such as os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := defaults()
	var errs []error

	if v, ok := lookup("PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil || port < 1 || port > 65535 {
			errs = append(errs, fmt.Errorf("PORT: invalid port %q", v))
		} else {
			cfg.Port = port
		}
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := lookup("CONFIRM_DELETES"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("CONFIRM_DELETES: %w", err))
		} else {
			cfg.ConfirmDeletes = b
		}
	}
	if v, ok := lookup("REQUIRE_POSITIVE_PRICE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("REQUIRE_POSITIVE_PRICE: %w", err))
		} else {
			cfg.RequirePositivePrice = b
		}
	}
	if v, ok := lookup("DELETE_DELAY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			errs = append(errs, fmt.Errorf("DELETE_DELAY: invalid duration %q", v))
		} else {
			cfg.DeleteDelay = d
		}
	}
	if v, ok := lookup("SHUTDOWN_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT: invalid duration %q", v))
		} else {
			cfg.ShutdownTimeout = d
		}
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
