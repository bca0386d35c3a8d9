package config

import (
	"time"

	"github.com/nibzard/mywork/internal/storage"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, lowest priority first.
	Files []string
}

// Default values.
const (
	DefaultDataDir          = "~/.mywork"
	DefaultBackend          = "file"
	DefaultUndoDelaySeconds = 7
	DefaultFadeMillis       = 400
	DefaultJournal          = true
)

// Config holds the full configuration for mywork.
type Config struct {
	// Storage
	DataDir    string `toml:"data_dir"`
	Backend    string `toml:"backend"`
	StorageKey string `toml:"storage_key"`

	// Lifecycle timing
	UndoDelaySeconds int `toml:"undo_delay_seconds"`
	FadeMillis       int `toml:"fade_millis"`

	// Activity journal under <data_dir>/journal
	Journal bool `toml:"journal"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`
}

// UndoDelay returns how long a completed task stays undoable.
func (c *Config) UndoDelay() time.Duration {
	return time.Duration(c.UndoDelaySeconds) * time.Second
}

// FadeDuration returns the fade-out length shown before a completed task is removed.
func (c *Config) FadeDuration() time.Duration {
	return time.Duration(c.FadeMillis) * time.Millisecond
}

// BackendKind returns the parsed storage backend.
func (c *Config) BackendKind() (storage.Kind, error) {
	return storage.ParseKind(c.Backend)
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"data_dir",
		"backend",
		"storage_key",
		"undo_delay_seconds",
		"fade_millis",
		"journal",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.DataDir = DefaultDataDir
	cfg.Backend = DefaultBackend
	cfg.StorageKey = storage.DefaultKey
	cfg.UndoDelaySeconds = DefaultUndoDelaySeconds
	cfg.FadeMillis = DefaultFadeMillis
	cfg.Journal = DefaultJournal
	cfg.LogLevel = "info"
	cfg.LogFormat = "text"
}
