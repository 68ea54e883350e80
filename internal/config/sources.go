package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/nibzard/taskpad/internal/appdir"
)

// projectConfigNames are looked up in the current directory, first match wins.
var projectConfigNames = []string{"taskpad.toml", ".taskpad.toml"}

// findProjectConfigFile looks for a config file in the current directory.
func findProjectConfigFile() string {
	for _, name := range projectConfigNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// findUserConfigFile looks for a user-level config file.
// Checks ~/.taskpad/taskpad.toml first, then the OS-specific config directory.
func findUserConfigFile() string {
	if home, err := os.UserHomeDir(); err == nil {
		path := appdir.ConfigPath(filepath.Join(home, appdir.Dir))
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	if cfgDir := osUserConfigDir(); cfgDir != "" {
		path := filepath.Join(cfgDir, "taskpad", appdir.DefaultConfigFile)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// osUserConfigDir returns the OS-specific user config directory.
// Returns empty string if the directory cannot be determined.
func osUserConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return os.Getenv("APPDATA")
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "Library", "Application Support")
		}
	case "linux", "openbsd", "freebsd", "netbsd":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, ".config")
		}
	}
	return ""
}
