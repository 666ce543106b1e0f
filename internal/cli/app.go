package cli

import (
	"fmt"
	"os"

	"github.com/amterp/swatch/internal/config"
	"github.com/amterp/swatch/internal/engine"
	kanerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/kv"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/prompt"
	"github.com/amterp/swatch/internal/service"
	"github.com/amterp/swatch/internal/store"
)

// App holds all the dependencies for the CLI.
// Uses interfaces for testability.
type App struct {
	Paths          *config.Paths
	Config         *model.GlobalConfig
	ConfigErr      error // Non-nil if config.toml was present but unusable
	GlobalStore    store.GlobalStore
	KV             kv.Store
	PaletteStore   store.PaletteStore
	SessionStore   store.SessionStore
	Prompter       prompt.Prompter
	Engine         *engine.Engine
	PaletteService *service.PaletteService
	ExportService  *service.ExportService
}

// NewApp creates a new App rooted at the user's config directory.
// If interactive is false, uses NoopPrompter that fails on prompts.
func NewApp(interactive bool) (*App, error) {
	return NewAppAt(config.DefaultPaths(), interactive)
}

// NewAppAt creates an App reading config from paths.ConfigDir().
// The data directory comes from SWATCH_DATA_DIR, then config.toml, then the config dir.
func NewAppAt(paths *config.Paths, interactive bool) (*App, error) {
	app, err := NewAppWithoutSession(paths, interactive)
	if err != nil {
		return nil, err
	}

	app.PaletteService = service.NewPaletteService(app.Engine, app.PaletteStore, app.SessionStore)
	app.ExportService = service.NewExportService(app.PaletteService)
	return app, nil
}

// NewAppWithoutSession opens config and storage but does not restore or create
// the current palette, so stored data is left exactly as found.
// Used by doctor, which needs to inspect malformed records before they are replaced.
func NewAppWithoutSession(paths *config.Paths, interactive bool) (*App, error) {
	globalStore := store.NewGlobalStore(paths.ConfigPath())

	// Load global config with warnings (don't silently ignore errors)
	globalCfg, configErr := globalStore.Load()
	if configErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load global config: %v\n", configErr)
		globalCfg = nil
	}

	overrides, err := config.ParseEnv()
	if err != nil {
		return nil, err
	}
	cfg := overrides.Apply(globalCfg)

	backend := cfg.StorageOrDefault()
	if !model.ValidStorage(backend) {
		return nil, kanerr.UnknownStorage(backend)
	}

	paths = paths.WithDataDir(cfg.DataDir)
	if err := os.MkdirAll(paths.DataDir(), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	kvStore, err := kv.Open(backend, paths.DataDir())
	if err != nil {
		return nil, err
	}

	var prompter prompt.Prompter
	if interactive {
		prompter = prompt.NewHuhPrompter()
	} else {
		prompter = &prompt.NoopPrompter{}
	}

	return &App{
		Paths:        paths,
		Config:       cfg,
		ConfigErr:    configErr,
		GlobalStore:  globalStore,
		KV:           kvStore,
		PaletteStore: store.NewPaletteStore(kvStore),
		SessionStore: store.NewSessionStore(kvStore),
		Prompter:     prompter,
		Engine:       engine.NewDefault(),
	}, nil
}

// Close releases the underlying store.
func (a *App) Close() {
	if a.KV == nil {
		return
	}
	if err := a.KV.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close store: %v\n", err)
	}
}

// notPersisted wraps a store write failure. The change still happened in this
// process, so the message says so. Returns nil for a nil err.
func notPersisted(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s in memory but failed to persist: %w", what, err)
}

// Fatal prints an error and exits.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
