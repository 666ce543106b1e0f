package service

import (
	"fmt"
	"os"

	"github.com/amterp/swatch/internal/config"
	kanerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/store"
)

// InitOptions are the settings written by init. Empty fields keep what the
// existing config has, or the built-in default.
type InitOptions struct {
	Storage      string
	DataDir      string
	ExportFormat string
}

// InitService writes the global config and prepares the data directory.
type InitService struct {
	globalStore store.GlobalStore
	paths       *config.Paths
}

// NewInitService creates a new init service.
func NewInitService(globalStore store.GlobalStore, paths *config.Paths) *InitService {
	return &InitService{
		globalStore: globalStore,
		paths:       paths,
	}
}

// Initialize validates opts, merges them into the existing config (creating
// it if needed) and creates the data directory. Returns the saved config.
func (s *InitService) Initialize(opts InitOptions) (*model.GlobalConfig, error) {
	if opts.Storage != "" && !model.ValidStorage(opts.Storage) {
		return nil, kanerr.UnknownStorage(opts.Storage)
	}
	if opts.ExportFormat != "" && !model.ValidExportFormat(opts.ExportFormat) {
		return nil, kanerr.UnknownExportFormat(opts.ExportFormat)
	}

	if err := s.globalStore.EnsureExists(); err != nil {
		return nil, fmt.Errorf("failed to create global config: %w", err)
	}
	cfg, err := s.globalStore.Load()
	if err != nil {
		return nil, err
	}

	if opts.Storage != "" {
		cfg.Storage = opts.Storage
	}
	if opts.DataDir != "" {
		cfg.DataDir = opts.DataDir
	}
	if opts.ExportFormat != "" {
		cfg.ExportFormat = opts.ExportFormat
	}

	if err := s.globalStore.Save(cfg); err != nil {
		return nil, fmt.Errorf("failed to save global config: %w", err)
	}

	dataDir := s.paths.WithDataDir(cfg.DataDir).DataDir()
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return cfg, nil
}
