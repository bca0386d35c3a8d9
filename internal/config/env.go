package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// loadFromEnv overrides config from MYWORK_* environment variables.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	set := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}
	intEnv := func(name string) (int, bool, error) {
		v := strings.TrimSpace(os.Getenv(name))
		if v == "" {
			return 0, false, nil
		}
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, false, fmt.Errorf("%s: %w", name, err)
		}
		return i, true, nil
	}

	if v := os.Getenv("MYWORK_DATA_DIR"); v != "" {
		cfg.DataDir = v
		set("data_dir")
	}
	if v := os.Getenv("MYWORK_BACKEND"); v != "" {
		cfg.Backend = v
		set("backend")
	}
	if v := os.Getenv("MYWORK_STORAGE_KEY"); v != "" {
		cfg.StorageKey = v
		set("storage_key")
	}
	if i, ok, err := intEnv("MYWORK_UNDO_DELAY"); err != nil {
		return err
	} else if ok {
		cfg.UndoDelaySeconds = i
		set("undo_delay_seconds")
	}
	if i, ok, err := intEnv("MYWORK_FADE_MILLIS"); err != nil {
		return err
	} else if ok {
		cfg.FadeMillis = i
		set("fade_millis")
	}
	if v := os.Getenv("MYWORK_JOURNAL"); v != "" {
		cfg.Journal = boolFromString(v)
		set("journal")
	}

	// Logging configuration
	if v := os.Getenv("MYWORK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		set("log_level")
	}
	if v := os.Getenv("MYWORK_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		set("log_format")
	}
	if v := os.Getenv("MYWORK_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		set("log_timestamps")
	}
	if v := os.Getenv("MYWORK_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
		set("log_caller")
	}
	return nil
}
