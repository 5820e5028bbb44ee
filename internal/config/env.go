package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const dotEnvFile = ".env"

// lookupFunc resolves an environment variable.
type lookupFunc func(key string) (string, bool)

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	loadFromEnvHelper(cfg, os.LookupEnv, sources, SourceEnv)
}

// loadDotEnv applies TODO_* values from a .env file that are not already
// set (non-empty) in the process environment. A missing file is not an error.
func loadDotEnv(cfg *Config, path string, sources map[string]ConfigSource) error {
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	lookup := func(key string) (string, bool) {
		if real, set := os.LookupEnv(key); set && real != "" {
			return "", false
		}
		v, ok := vars[key]
		return v, ok
	}
	loadFromEnvHelper(cfg, lookup, sources, SourceDotEnv)
	return nil
}

// loadFromEnvHelper is the shared implementation for env loading.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnvHelper(cfg *Config, lookup lookupFunc, sources map[string]ConfigSource, source ConfigSource) {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		if !ok || v == "" {
			return "", false
		}
		return v, true
	}
	track := func(field string) {
		if sources != nil {
			sources[field] = source
		}
	}
	setInt := func(key, field string, target *int) {
		if v, ok := get(key); ok {
			if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				*target = i
				track(field)
			}
		}
	}

	if v, ok := get("TODO_DATE_FORMAT"); ok {
		cfg.DateFormat = v
		track("date_format")
	}
	if v, ok := get("TODO_UI"); ok {
		cfg.UI = strings.ToLower(strings.TrimSpace(v))
		track("ui")
	}
	if v, ok := get("TODO_ALT_SCREEN"); ok {
		cfg.AltScreen = boolFromString(v)
		track("alt_screen")
	}
	setInt("TODO_WINDOW_TODAY", "windows.today", &cfg.Windows.Today)
	setInt("TODO_WINDOW_WEEK", "windows.week", &cfg.Windows.Week)
	setInt("TODO_WINDOW_MONTH", "windows.month", &cfg.Windows.Month)
	if v, ok := get("TODO_LOG_DIR"); ok {
		cfg.LogDir = v
		track("log_dir")
	}
	if v, ok := get("TODO_LOG_LEVEL"); ok {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(v))
		track("log_level")
	}
	if v, ok := get("TODO_LOG_FORMAT"); ok {
		cfg.LogFormat = strings.ToLower(strings.TrimSpace(v))
		track("log_format")
	}
	if v, ok := get("TODO_LOG_TIMESTAMPS"); ok {
		cfg.LogTimestamps = boolFromString(v)
		track("log_timestamps")
	}
	if v, ok := get("TODO_LOG_CALLER"); ok {
		cfg.LogCaller = boolFromString(v)
		track("log_caller")
	}
}

func boolFromString(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
