package service

import (
	"fmt"
	"os"
	"path/filepath"

	kanerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/kv"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/store"
)

// MigratedKeys are the records copied between backends, in copy order.
var MigratedKeys = []string{
	store.SavedPalettesKey,
	store.CurrentPaletteKey,
	store.SavedPalettesKey + BackupKeySuffix,
	store.CurrentPaletteKey + BackupKeySuffix,
}

// MigrateService moves stored records from one storage backend to another
// and points the global config at the new backend.
type MigrateService struct {
	globalStore store.GlobalStore
	dataDir     string
}

// NewMigrateService creates a new migration service for the data directory.
func NewMigrateService(globalStore store.GlobalStore, dataDir string) *MigrateService {
	return &MigrateService{
		globalStore: globalStore,
		dataDir:     dataDir,
	}
}

// MigrationPlan describes what a backend migration would copy.
type MigrationPlan struct {
	From    string         `json:"from"`
	To      string         `json:"to"`
	DataDir string         `json:"data_dir"`
	Keys    []KeyMigration `json:"keys"`
}

// KeyMigration describes a single record in a migration.
type KeyMigration struct {
	Key        string `json:"key"`
	Bytes      int    `json:"bytes"`
	Overwrites bool   `json:"overwrites"` // Target already holds a different value
	value      string
}

// HasChanges returns true if the plan copies at least one record.
func (p *MigrationPlan) HasChanges() bool {
	return len(p.Keys) > 0
}

// HasConflicts returns true if any copied record would replace existing target data.
func (p *MigrationPlan) HasConflicts() bool {
	for _, k := range p.Keys {
		if k.Overwrites {
			return true
		}
	}
	return false
}

// Plan reads every migrated record from the source backend and checks the target for
// existing data. Nothing is written.
func (s *MigrateService) Plan(from, to string) (*MigrationPlan, error) {
	if !model.ValidStorage(to) {
		return nil, kanerr.UnknownStorage(to)
	}
	if from == to {
		return nil, kanerr.InvalidField("storage", fmt.Sprintf("already using %s storage", to))
	}

	source, err := kv.Open(from, s.dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", from, err)
	}
	defer source.Close()

	var target kv.Store
	if s.targetExists(to) {
		target, err = kv.Open(to, s.dataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s store: %w", to, err)
		}
		defer target.Close()
	}

	plan := &MigrationPlan{From: from, To: to, DataDir: s.dataDir}
	for _, key := range MigratedKeys {
		value, ok, err := source.Get(key)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", key, err)
		}
		if !ok {
			continue
		}

		km := KeyMigration{Key: key, Bytes: len(value), value: value}
		if target != nil {
			existing, exists, err := target.Get(key)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s from %s store: %w", key, to, err)
			}
			km.Overwrites = exists && existing != value
		}
		plan.Keys = append(plan.Keys, km)
	}

	return plan, nil
}

// Execute copies the planned records into the target backend and saves the new
// backend to the global config. The source is left untouched.
// Fails without writing if the plan overwrites target data and force is false.
func (s *MigrateService) Execute(plan *MigrationPlan, force bool) error {
	if plan.HasConflicts() && !force {
		return kanerr.InvalidField("storage", fmt.Sprintf("%s store already has different data (use --force to overwrite)", plan.To))
	}

	target, err := kv.Open(plan.To, s.dataDir)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", plan.To, err)
	}

	for _, km := range plan.Keys {
		if err := target.Set(km.Key, km.value); err != nil {
			target.Close()
			return fmt.Errorf("failed to write %s: %w", km.Key, err)
		}
	}
	if err := target.Close(); err != nil {
		return fmt.Errorf("failed to close %s store: %w", plan.To, err)
	}

	cfg, err := s.globalStore.Load()
	if err != nil {
		return fmt.Errorf("failed to load global config: %w", err)
	}
	cfg.Storage = plan.To
	if err := s.globalStore.Save(cfg); err != nil {
		return fmt.Errorf("failed to save global config: %w", err)
	}
	return nil
}

func (s *MigrateService) targetExists(backend string) bool {
	if backend != model.StorageSQLite {
		return true
	}
	_, err := os.Stat(filepath.Join(s.dataDir, kv.SQLiteFileName))
	return err == nil
}
