package service

import (
	"fmt"
	"os"

	"github.com/amterp/swatch/internal/engine"
	kanerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/id"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/store"
	"github.com/amterp/swatch/internal/util"
)

// PaletteService owns the two pieces of session state: the current palette
// and the saved-palette collection. It is not safe for concurrent use;
// callers that share it (the web server) serialize access themselves.
//
// Mutations update in-memory state first and then persist. A failed write
// is returned as an error but the in-memory state is kept, since it is the
// source of truth for the rest of the session.
type PaletteService struct {
	engine       *engine.Engine
	paletteStore store.PaletteStore
	sessionStore store.SessionStore

	sessionID string
	updatedAt int64
	current   model.Palette
	saved     []model.Palette
}

// NewPaletteService loads the saved collection and restores the current palette
// from the session store, or starts a fresh one if there is none.
// sessionStore may be nil, in which case the current palette lives only in memory.
func NewPaletteService(eng *engine.Engine, paletteStore store.PaletteStore, sessionStore store.SessionStore) *PaletteService {
	s := &PaletteService{
		engine:       eng,
		paletteStore: paletteStore,
		sessionStore: sessionStore,
		saved:        paletteStore.Load(),
	}

	if sessionStore != nil {
		if session, ok := sessionStore.LoadSession(); ok {
			s.sessionID = session.ID
			s.updatedAt = session.UpdatedAtMillis
			s.current = session.Palette()
			return s
		}
	}

	s.sessionID = id.NewSessionID()
	s.current = eng.CreateInitialPalette()
	if err := s.persistSession(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return s
}

// SessionID identifies the current palette's session.
func (s *PaletteService) SessionID() string {
	return s.sessionID
}

// UpdatedAtMillis is when the current palette last changed (0 if never persisted).
func (s *PaletteService) UpdatedAtMillis() int64 {
	return s.updatedAt
}

// Current returns a copy of the current palette.
func (s *PaletteService) Current() model.Palette {
	return s.current.Clone()
}

// Saved returns a copy of the saved collection.
func (s *PaletteService) Saved() []model.Palette {
	return model.ClonePalettes(s.saved)
}

// Get returns a copy of the saved palette at index.
func (s *PaletteService) Get(index int) (model.Palette, error) {
	if index < 0 || index >= len(s.saved) {
		return model.Palette{}, kanerr.PaletteNotFound(index)
	}
	return s.saved[index].Clone(), nil
}

// Regenerate replaces every unlocked color of the current palette.
func (s *PaletteService) Regenerate() (model.Palette, error) {
	s.current.Colors = s.engine.Regenerate(s.current.Colors)
	return s.Current(), s.persistSession()
}

// NewPalette discards the current palette, locks included, and starts a fresh one.
func (s *PaletteService) NewPalette() (model.Palette, error) {
	s.current = s.engine.CreateInitialPalette()
	return s.Current(), s.persistSession()
}

// ToggleLock flips the lock on one slot of the current palette.
// Returns false, and changes nothing, if index is out of range.
func (s *PaletteService) ToggleLock(index int) (bool, error) {
	if !engine.InRange(s.current.Colors, index) {
		return false, nil
	}
	s.current.Colors = engine.ToggleLock(s.current.Colors, index)
	return true, s.persistSession()
}

// Save snapshots the current palette into the saved collection under name
// ("Untitled" if blank) and returns the saved palette with its index.
func (s *PaletteService) Save(name string) (model.Palette, int, error) {
	result, err := s.paletteStore.Save(name, s.current.Colors, s.saved)
	s.saved = result
	index := len(s.saved) - 1
	return s.saved[index].Clone(), index, err
}

// Delete removes the saved palette at index.
// Returns false, and changes nothing, if index is out of range.
func (s *PaletteService) Delete(index int) (bool, error) {
	if index < 0 || index >= len(s.saved) {
		return false, nil
	}
	result, err := s.paletteStore.Delete(index, s.saved)
	s.saved = result
	return true, err
}

// Reload re-reads the saved collection and the session record from storage,
// picking up writes made by another process.
func (s *PaletteService) Reload() {
	s.saved = s.paletteStore.Load()
	if s.sessionStore == nil {
		return
	}
	if session, ok := s.sessionStore.LoadSession(); ok {
		s.sessionID = session.ID
		s.updatedAt = session.UpdatedAtMillis
		s.current = session.Palette()
	}
}

func (s *PaletteService) persistSession() error {
	s.updatedAt = util.NowMillis()
	if s.sessionStore == nil {
		return nil
	}
	return s.sessionStore.SaveSession(&model.Session{
		ID:              s.sessionID,
		Colors:          model.CloneColors(s.current.Colors),
		UpdatedAtMillis: s.updatedAt,
	})
}
