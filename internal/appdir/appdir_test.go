package appdir

import (
	"path/filepath"
	"testing"
)

func TestStorePath(t *testing.T) {
	base := filepath.Join("home", "u", Dir)
	tests := []struct {
		backend string
		want    string
	}{
		{"sqlite", filepath.Join(base, DefaultDatabaseFile)},
		{"", filepath.Join(base, DefaultDatabaseFile)},
		{"file", filepath.Join(base, DefaultFileStore)},
		{"memory", ""},
	}
	for _, tt := range tests {
		if got := StorePath(base, tt.backend); got != tt.want {
			t.Errorf("StorePath(%q): got %q, want %q", tt.backend, got, tt.want)
		}
	}
}

func TestConfigPath(t *testing.T) {
	if got := ConfigPath("x"); got != filepath.Join("x", "taskpad.toml") {
		t.Errorf("ConfigPath: got %q", got)
	}
}
