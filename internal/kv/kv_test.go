package kv

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func openBackends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	sqliteStore, err := OpenSQLite(filepath.Join(dir, "kv.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	fileStore, err := OpenFile(filepath.Join(dir, "kv.json"))
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	stores := map[string]Store{
		BackendSQLite: sqliteStore,
		BackendFile:   fileStore,
		BackendMemory: NewMemory(),
	}
	t.Cleanup(func() {
		for _, s := range stores {
			s.Close()
		}
	})
	return stores
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := s.Get(ctx, "@tasks"); err != nil || ok {
				t.Fatalf("Get on empty store: ok=%v err=%v", ok, err)
			}

			if err := s.Set(ctx, "@tasks", `[{"id":"1","value":"a"}]`); err != nil {
				t.Fatalf("Set: %v", err)
			}
			got, ok, err := s.Get(ctx, "@tasks")
			if err != nil || !ok {
				t.Fatalf("Get after Set: ok=%v err=%v", ok, err)
			}
			if got != `[{"id":"1","value":"a"}]` {
				t.Errorf("Get: got %q", got)
			}

			if err := s.Set(ctx, "@tasks", "[]"); err != nil {
				t.Fatalf("Set overwrite: %v", err)
			}
			if got, _, _ := s.Get(ctx, "@tasks"); got != "[]" {
				t.Errorf("Get after overwrite: got %q, want []", got)
			}

			if err := s.Set(ctx, "other", "x"); err != nil {
				t.Fatalf("Set other: %v", err)
			}
			if err := s.Remove(ctx, "@tasks"); err != nil {
				t.Fatalf("Remove: %v", err)
			}
			if _, ok, _ := s.Get(ctx, "@tasks"); ok {
				t.Error("key still present after Remove")
			}
			if v, ok, _ := s.Get(ctx, "other"); !ok || v != "x" {
				t.Errorf("unrelated key disturbed: %q %v", v, ok)
			}

			if err := s.Remove(ctx, "@tasks"); err != nil {
				t.Errorf("Remove of absent key: %v", err)
			}
		})
	}
}

func TestStoreCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Set(ctx, "k", "v"); err == nil {
				t.Error("Set with canceled context: expected error")
			}
		})
	}
}

func TestFilePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "kv.json")

	f, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if err := f.Set(ctx, "@tasks", "[]"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.HasSuffix(string(raw), "\n") {
		t.Error("store file should end with a newline")
	}
	if !strings.Contains(string(raw), "\n  \"@tasks\"") {
		t.Errorf("store file should use 2-space indentation, got %q", raw)
	}

	reopened, err := OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if v, ok, _ := reopened.Get(ctx, "@tasks"); !ok || v != "[]" {
		t.Errorf("value after reopen: %q %v", v, ok)
	}
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.db")

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := s.Set(ctx, "@tasks", "[]"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	s.Close()

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if v, ok, _ := reopened.Get(ctx, "@tasks"); !ok || v != "[]" {
		t.Errorf("value after reopen: %q %v", v, ok)
	}
}

func TestOpenFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenFile(path); err == nil {
		t.Fatal("expected error opening corrupt file store")
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		backend string
		path    string
		wantErr bool
	}{
		{"sqlite", filepath.Join(dir, "a.db"), false},
		{"", filepath.Join(dir, "b.db"), false},
		{"FILE", filepath.Join(dir, "c.json"), false},
		{"memory", "", false},
		{"redis", "", true},
		{"sqlite", "", true},
	}
	for _, tt := range tests {
		s, err := Open(tt.backend, tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("Open(%q, %q): err=%v, wantErr=%v", tt.backend, tt.path, err, tt.wantErr)
			continue
		}
		if s != nil {
			s.Close()
		}
	}
}

func TestValidBackend(t *testing.T) {
	for _, b := range []string{"sqlite", "file", "memory", "", " Memory "} {
		if !ValidBackend(b) {
			t.Errorf("ValidBackend(%q) = false", b)
		}
	}
	if ValidBackend("postgres") {
		t.Error("ValidBackend(postgres) = true")
	}
}
