package service

import (
	"os"
	"path/filepath"
	"testing"

	kanerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/kv"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/store"
	"github.com/amterp/swatch/testutil"
)

func setupMigrate(t *testing.T) (*MigrateService, *store.FileGlobalStore, string) {
	t.Helper()
	dataDir, cleanup := testutil.TempDataDir(t)
	t.Cleanup(cleanup)

	gs := store.NewGlobalStore(filepath.Join(dataDir, "config.toml"))
	return NewMigrateService(gs, dataDir), gs, dataDir
}

func seedFileStore(t *testing.T, dataDir string) {
	t.Helper()
	fs := kv.NewFileStore(dataDir)
	svc := newServiceOn(fs)
	if _, _, err := svc.Save("seed"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
}

func TestMigrate_FileToSQLite(t *testing.T) {
	svc, gs, dataDir := setupMigrate(t)
	seedFileStore(t, dataDir)

	plan, err := svc.Plan(model.StorageFile, model.StorageSQLite)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(plan.Keys) != 2 {
		t.Fatalf("Expected saved palettes and session in plan, got %+v", plan.Keys)
	}
	if plan.HasConflicts() {
		t.Error("Fresh target should not conflict")
	}
	if _, err := os.Stat(filepath.Join(dataDir, kv.SQLiteFileName)); !os.IsNotExist(err) {
		t.Error("Plan should not create the target database")
	}

	if err := svc.Execute(plan, false); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	db, err := kv.OpenSQLite(filepath.Join(dataDir, kv.SQLiteFileName))
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	defer db.Close()

	palettes := store.NewPaletteStore(db).Load()
	if len(palettes) != 1 || palettes[0].Name != "seed" {
		t.Errorf("Expected migrated palette, got %+v", palettes)
	}
	if _, ok := store.NewSessionStore(db).LoadSession(); !ok {
		t.Error("Expected migrated session")
	}

	cfg, err := gs.Load()
	if err != nil {
		t.Fatalf("Load config failed: %v", err)
	}
	if cfg.Storage != model.StorageSQLite {
		t.Errorf("Expected config to switch to sqlite, got %q", cfg.Storage)
	}
}

func TestMigrate_ConflictNeedsForce(t *testing.T) {
	svc, _, dataDir := setupMigrate(t)
	seedFileStore(t, dataDir)

	db, err := kv.OpenSQLite(filepath.Join(dataDir, kv.SQLiteFileName))
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	db.Set(store.SavedPalettesKey, "[]")
	db.Close()

	plan, err := svc.Plan(model.StorageFile, model.StorageSQLite)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if !plan.HasConflicts() {
		t.Fatal("Expected conflict with existing sqlite data")
	}

	if err := svc.Execute(plan, false); !kanerr.IsValidationError(err) {
		t.Errorf("Expected validation error without force, got %v", err)
	}
	if err := svc.Execute(plan, true); err != nil {
		t.Errorf("Execute with force failed: %v", err)
	}
}

func TestMigrate_EmptySource(t *testing.T) {
	svc, _, _ := setupMigrate(t)

	plan, err := svc.Plan(model.StorageSQLite, model.StorageFile)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if plan.HasChanges() {
		t.Errorf("Expected empty plan, got %+v", plan.Keys)
	}
}

func TestMigrate_InvalidTargets(t *testing.T) {
	svc, _, _ := setupMigrate(t)

	if _, err := svc.Plan(model.StorageFile, model.StorageFile); !kanerr.IsValidationError(err) {
		t.Errorf("Same backend should be a validation error, got %v", err)
	}
	if _, err := svc.Plan(model.StorageFile, "redis"); !kanerr.IsValidationError(err) {
		t.Errorf("Unknown backend should be a validation error, got %v", err)
	}
}
