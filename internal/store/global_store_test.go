package store

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/version"
)

func TestFileGlobalStore_LoadMissingFile(t *testing.T) {
	s := NewGlobalStore(filepath.Join(t.TempDir(), "config.toml"))

	cfg, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.StorageOrDefault() != model.StorageFile {
		t.Errorf("Expected default storage, got %q", cfg.StorageOrDefault())
	}
}

func TestFileGlobalStore_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swatch", "config.toml")
	s := NewGlobalStore(path)

	cfg := &model.GlobalConfig{
		Storage:      model.StorageSQLite,
		DataDir:      "data",
		ExportFormat: model.ExportJSON,
		SaveHooks: []model.SaveHook{
			{Name: "notify", PatternName: "^brand-", Command: "~/bin/notify.sh", Timeout: 10},
		},
	}
	if err := s.Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if cfg.SwatchSchema != version.CurrentGlobalSchema() {
		t.Errorf("Save did not stamp schema: %q", cfg.SwatchSchema)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Errorf("Loaded config mismatch:\n got: %+v\nwant: %+v", loaded, cfg)
	}
}

func TestFileGlobalStore_MissingSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("storage = \"file\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewGlobalStore(path).Load()
	if err == nil || !strings.Contains(err.Error(), "no schema version") {
		t.Errorf("Expected missing schema error, got %v", err)
	}
}

func TestFileGlobalStore_FutureSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("swatch_schema = \"global/7\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewGlobalStore(path).Load()
	if _, ok := err.(*version.SchemaVersionError); !ok {
		t.Errorf("Expected SchemaVersionError, got %T: %v", err, err)
	}
}

func TestFileGlobalStore_EnsureExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	s := NewGlobalStore(path)

	if err := s.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Expected config file: %v", err)
	}

	// Second call leaves an existing file alone
	if err := s.Save(&model.GlobalConfig{Storage: model.StorageSQLite}); err != nil {
		t.Fatal(err)
	}
	if err := s.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists failed: %v", err)
	}
	cfg, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage != model.StorageSQLite {
		t.Errorf("EnsureExists overwrote config: %+v", cfg)
	}
}

func TestFileGlobalStore_EmptyPath(t *testing.T) {
	s := NewGlobalStore("")
	if _, err := s.Load(); err != nil {
		t.Errorf("Load with empty path failed: %v", err)
	}
	if err := s.Save(&model.GlobalConfig{}); err != nil {
		t.Errorf("Save with empty path failed: %v", err)
	}
}
