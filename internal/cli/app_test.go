package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amterp/swatch/internal/config"
	"github.com/amterp/swatch/internal/engine"
	"github.com/amterp/swatch/internal/kv"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/prompt"
	"github.com/amterp/swatch/internal/service"
	"github.com/amterp/swatch/internal/store"
	"github.com/amterp/swatch/testutil"
)

func TestNewAppAt_DefaultsToFileStorage(t *testing.T) {
	t.Setenv("SWATCH_DATA_DIR", "")
	t.Setenv("SWATCH_STORAGE", "")
	dir := t.TempDir()

	app, err := NewAppAt(config.NewPaths(dir, ""), false)
	if err != nil {
		t.Fatalf("NewAppAt failed: %v", err)
	}
	defer app.Close()

	if _, ok := app.KV.(*kv.FileStore); !ok {
		t.Errorf("Expected FileStore, got %T", app.KV)
	}
	if _, ok := app.Prompter.(*prompt.NoopPrompter); !ok {
		t.Errorf("Expected NoopPrompter when non-interactive, got %T", app.Prompter)
	}
	if got := len(app.PaletteService.Current().Colors); got != model.PaletteSize {
		t.Errorf("Expected %d colors, got %d", model.PaletteSize, got)
	}

	// The fresh session is persisted immediately.
	if _, err := os.Stat(filepath.Join(dir, store.CurrentPaletteKey+".json")); err != nil {
		t.Errorf("Expected session file: %v", err)
	}
}

func TestNewAppAt_SessionSurvivesRestart(t *testing.T) {
	t.Setenv("SWATCH_DATA_DIR", "")
	t.Setenv("SWATCH_STORAGE", "")
	paths := config.NewPaths(t.TempDir(), "")

	first, err := NewAppAt(paths, false)
	if err != nil {
		t.Fatalf("NewAppAt failed: %v", err)
	}
	if _, err := first.PaletteService.ToggleLock(2); err != nil {
		t.Fatalf("ToggleLock failed: %v", err)
	}
	if _, _, err := first.PaletteService.Save("Sunset"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	want := first.PaletteService.Current()
	first.Close()

	second, err := NewAppAt(paths, false)
	if err != nil {
		t.Fatalf("NewAppAt failed: %v", err)
	}
	defer second.Close()

	got := second.PaletteService.Current()
	for i := range want.Colors {
		if got.Colors[i] != want.Colors[i] {
			t.Errorf("Slot %d: got %+v, want %+v", i, got.Colors[i], want.Colors[i])
		}
	}
	if saved := second.PaletteService.Saved(); len(saved) != 1 || saved[0].Name != "Sunset" {
		t.Errorf("Unexpected saved palettes: %+v", saved)
	}
}

func TestNewAppAt_EnvOverridesConfig(t *testing.T) {
	configDir := t.TempDir()
	dataDir := t.TempDir()

	gs := store.NewGlobalStore(filepath.Join(configDir, config.ConfigFileName))
	if err := gs.Save(&model.GlobalConfig{Storage: model.StorageFile, DataDir: "ignored"}); err != nil {
		t.Fatalf("Save config failed: %v", err)
	}

	t.Setenv("SWATCH_DATA_DIR", dataDir)
	t.Setenv("SWATCH_STORAGE", model.StorageSQLite)

	app, err := NewAppAt(config.NewPaths(configDir, ""), false)
	if err != nil {
		t.Fatalf("NewAppAt failed: %v", err)
	}
	defer app.Close()

	if _, ok := app.KV.(*kv.SQLiteStore); !ok {
		t.Errorf("Expected SQLiteStore, got %T", app.KV)
	}
	if app.Paths.DataDir() != dataDir {
		t.Errorf("Expected data dir %q, got %q", dataDir, app.Paths.DataDir())
	}
	if _, err := os.Stat(filepath.Join(dataDir, kv.SQLiteFileName)); err != nil {
		t.Errorf("Expected database file: %v", err)
	}
}

func TestNewAppAt_UnknownStorage(t *testing.T) {
	t.Setenv("SWATCH_DATA_DIR", "")
	t.Setenv("SWATCH_STORAGE", "redis")

	if _, err := NewAppAt(config.NewPaths(t.TempDir(), ""), false); err == nil {
		t.Error("Expected error for unknown storage backend")
	}
}

func TestNewAppWithoutSession_LeavesStoreUntouched(t *testing.T) {
	t.Setenv("SWATCH_DATA_DIR", "")
	t.Setenv("SWATCH_STORAGE", "")
	dir := t.TempDir()
	sessionPath := filepath.Join(dir, store.CurrentPaletteKey+".json")
	if err := os.WriteFile(sessionPath, []byte("not json"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	app, err := NewAppWithoutSession(config.NewPaths(dir, ""), false)
	if err != nil {
		t.Fatalf("NewAppWithoutSession failed: %v", err)
	}
	defer app.Close()

	if app.PaletteService != nil {
		t.Error("Expected no palette service")
	}
	data, err := os.ReadFile(sessionPath)
	if err != nil || string(data) != "not json" {
		t.Errorf("Session record was modified: %q (%v)", data, err)
	}
}

type readOnlyKV struct {
	*kv.MemoryStore
}

func (readOnlyKV) Set(key, value string) error {
	return errors.New("disk full")
}

// Every mutating command fails the same way when its write is lost.
func TestNotPersisted_AllMutationsFail(t *testing.T) {
	if notPersisted("anything", nil) != nil {
		t.Fatal("Expected nil for a successful write")
	}

	mem := readOnlyKV{kv.NewMemoryStore()}
	svc := service.NewPaletteService(engine.New(testutil.Counter()), store.NewPaletteStore(mem), store.NewSessionStore(mem))

	_, regenErr := svc.Regenerate()
	_, newErr := svc.NewPalette()
	_, lockErr := svc.ToggleLock(0)
	_, _, saveErr := svc.Save("x")
	_, deleteErr := svc.Delete(0)

	for name, err := range map[string]error{
		"regenerate": regenErr,
		"new":        newErr,
		"lock":       lockErr,
		"save":       saveErr,
		"delete":     deleteErr,
	} {
		wrapped := notPersisted(name, err)
		if wrapped == nil {
			t.Errorf("%s: expected a persist error", name)
			continue
		}
		if !strings.Contains(wrapped.Error(), "failed to persist") || !strings.Contains(wrapped.Error(), "disk full") {
			t.Errorf("%s: unexpected message %q", name, wrapped.Error())
		}
	}
}
