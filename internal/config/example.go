package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# taskpad configuration file
# Values can be overridden by TASKPAD_* environment variables or CLI flags

# Store backend: sqlite, file, or memory
store_backend = "sqlite"

# Store file (supports ~ expansion); empty uses ~/.taskpad/taskpad.db
# (or ~/.taskpad/taskpad.json for the file backend)
# store_path = "~/.taskpad/taskpad.db"

# Key holding the task list
storage_key = "@tasks"

# Log directory for TUI sessions
log_dir = "~/.taskpad/logs"

# Logging: debug, info, warn, error
log_level = "info"
# text, json, or logfmt
log_format = "text"
log_timestamps = false
log_caller = false
`
}
