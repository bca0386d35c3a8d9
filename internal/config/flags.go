package config

import "flag"

// flagFields maps flag names to the config field they set.
var flagFields = map[string]string{
	"data-dir":       "data_dir",
	"backend":        "backend",
	"storage-key":    "storage_key",
	"undo-delay":     "undo_delay_seconds",
	"fade-ms":        "fade_millis",
	"journal":        "journal",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// parseFlags defines the global flags on fs and parses args.
// Parsing stops at the first non-flag argument, leaving the command in fs.Args().
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("mywork", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Directory holding tasks and journals")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "Storage backend: file, sqlite or memory")
	fs.StringVar(&cfg.StorageKey, "storage-key", cfg.StorageKey, "Key the task list is stored under")
	fs.IntVar(&cfg.UndoDelaySeconds, "undo-delay", cfg.UndoDelaySeconds, "Seconds a completed task stays undoable")
	fs.IntVar(&cfg.FadeMillis, "fade-ms", cfg.FadeMillis, "Fade-out length in milliseconds before a completed task is removed")
	fs.BoolVar(&cfg.Journal, "journal", cfg.Journal, "Record activity to the journal")

	// Logging flags
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: text, json, logfmt")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in log output")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Include caller info in log output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if field, ok := flagFields[f.Name]; ok {
				sources[field] = SourceFlag
			}
		})
	}
	return nil
}
