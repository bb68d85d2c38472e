package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"taskmaster/internal/storage"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "sub", DefaultConfigFileName)

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to be created: %v", err)
	}
	if cfg.Backend != storage.BackendJSON {
		t.Fatalf("expected json backend, got %q", cfg.Backend)
	}
	if strings.HasPrefix(cfg.DataPath, "~") || !strings.HasSuffix(cfg.DataPath, filepath.Join(storage.DefaultDirName, storage.DefaultFileName)) {
		t.Fatalf("expected expanded default data path, got %q", cfg.DataPath)
	}
	if !reflect.DeepEqual(cfg.Keys, DefaultKeymap()) {
		t.Fatalf("expected default keymap, got %+v", cfg.Keys)
	}

	again, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reflect.DeepEqual(again, cfg) {
		t.Fatalf("expected written defaults to load back identically:\n%+v\n%+v", again, cfg)
	}
}

func TestLoadOrCreateReadsOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFileName)
	data := `backend = "sqlite"
log_level = "debug"

[keys]
new = ["a"]
save = ["ctrl+w"]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != storage.BackendSQLite || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if filepath.Base(cfg.DataPath) != storage.DefaultDBName {
		t.Fatalf("expected sqlite default data file, got %q", cfg.DataPath)
	}
	if !reflect.DeepEqual(cfg.Keys.New, []string{"a"}) || !reflect.DeepEqual(cfg.Keys.Save, []string{"ctrl+w"}) {
		t.Fatalf("expected key overrides, got %+v", cfg.Keys)
	}
	if !reflect.DeepEqual(cfg.Keys.Edit, DefaultKeymap().Edit) {
		t.Fatalf("expected missing keys to fall back to defaults, got %v", cfg.Keys.Edit)
	}
}

func TestLoadOrCreateRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	if err := os.WriteFile(path, []byte("backend = "), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadOrCreate(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestWithBackend(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Default().expand()
	if err != nil {
		t.Fatalf("expand: %v", err)
	}

	sq, err := cfg.WithBackend(storage.BackendSQLite)
	if err != nil {
		t.Fatalf("with backend: %v", err)
	}
	if sq.Backend != storage.BackendSQLite || filepath.Base(sq.DataPath) != storage.DefaultDBName {
		t.Fatalf("expected default path to follow backend, got %+v", sq)
	}

	cfg.DataPath = "/tmp/custom.json"
	custom, _ := cfg.WithBackend(storage.BackendSQLite)
	if custom.DataPath != "/tmp/custom.json" {
		t.Fatalf("custom data path must be kept, got %q", custom.DataPath)
	}
}

func TestLoadOrCreateBackendFollowsDefaultDataPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFileName)

	// A config written on first launch, then switched to sqlite by hand.
	first, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("first launch: %v", err)
	}
	if filepath.Base(first.DataPath) != storage.DefaultFileName {
		t.Fatalf("expected json data file on first launch, got %q", first.DataPath)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	edited := strings.NewReplacer(
		"backend = 'json'", "backend = 'sqlite'",
		`backend = "json"`, `backend = "sqlite"`,
	).Replace(string(b))
	if edited == string(b) {
		t.Fatalf("expected backend key in written config:\n%s", b)
	}
	if err := os.WriteFile(path, []byte(edited), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != storage.BackendSQLite || filepath.Base(cfg.DataPath) != storage.DefaultDBName {
		t.Fatalf("expected sqlite default data file, got %+v", cfg)
	}

	custom := filepath.Join(dir, "mine.json")
	data := "backend = 'sqlite'\ndata_path = '" + filepath.ToSlash(custom) + "'\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err = LoadOrCreate(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataPath != filepath.ToSlash(custom) {
		t.Fatalf("custom data path must be kept, got %q", cfg.DataPath)
	}
}
