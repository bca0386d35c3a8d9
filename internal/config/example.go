package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# mywork configuration file
# Values can be overridden by MYWORK_* environment variables or CLI flags

# Where tasks and journals live (supports ~ expansion and %VAR% on Windows)
data_dir = "~/.mywork"

# Storage backend: file (JSON snapshot), sqlite, or memory (nothing persisted)
backend = "file"

# Key the task list is stored under
storage_key = "TASKS"

# Seconds a completed task stays undoable before it is deleted
undo_delay_seconds = 7

# Fade-out shown in the TUI before a completed task disappears
fade_millis = 400

# Record add/complete/undo/remove events under <data_dir>/journal
journal = true

# Logging: debug, info, warn, error / text, json, logfmt
log_level = "info"
log_format = "text"
log_timestamps = false
log_caller = false
`
}
