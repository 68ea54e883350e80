package config

import "flag"

// flagToField maps flag names to config field names.
var flagToField = map[string]string{
	"store":          "store_backend",
	"store-path":     "store_path",
	"key":            "storage_key",
	"log-dir":        "log_dir",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// parseFlags defines and parses the global CLI flags on fs.
// Flags bind directly to cfg; fs.Visit records which were set explicitly.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("taskpad", flag.ContinueOnError)
	}

	// Storage
	fs.StringVar(&cfg.StoreBackend, "store", cfg.StoreBackend, "Store backend (sqlite, file, memory)")
	fs.StringVar(&cfg.StorePath, "store-path", cfg.StorePath, "Store file path (default ~/.taskpad/taskpad.db or taskpad.json)")
	fs.StringVar(&cfg.StorageKey, "key", cfg.StorageKey, "Storage key holding the task list")

	// Logging
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Log directory for TUI sessions")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if field, ok := flagToField[f.Name]; ok {
				sources[field] = SourceFlag
			}
		})
	}
	return nil
}
