package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/amterp/swatch/internal/kv"
	"github.com/amterp/swatch/internal/model"
)

// CurrentPaletteKey is the key the current-palette session record is stored under.
const CurrentPaletteKey = "currentPalette"

// KVSessionStore implements SessionStore on top of a kv.Store.
type KVSessionStore struct {
	kv kv.Store
}

// NewSessionStore creates a session store backed by the given key-value store.
func NewSessionStore(s kv.Store) *KVSessionStore {
	return &KVSessionStore{kv: s}
}

// LoadSession returns the stored session, or false if none is stored or it is malformed.
func (s *KVSessionStore) LoadSession() (*model.Session, bool) {
	raw, ok, err := s.kv.Get(CurrentPaletteKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to read current palette: %v\n", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	session, err := DecodeSession(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring malformed current palette: %v\n", err)
		return nil, false
	}
	return session, true
}

// DecodeSession parses a stored session record. A session must hold at least
// one color and every hex must be well formed.
func DecodeSession(raw string) (*model.Session, error) {
	var session model.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if len(session.Colors) == 0 {
		return nil, fmt.Errorf("no colors")
	}
	if !session.Palette().Valid() {
		return nil, fmt.Errorf("malformed colors")
	}
	return &session, nil
}

// SaveSession overwrites the stored session.
func (s *KVSessionStore) SaveSession(session *model.Session) error {
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal current palette: %w", err)
	}
	if err := s.kv.Set(CurrentPaletteKey, string(data)); err != nil {
		return fmt.Errorf("failed to persist current palette: %w", err)
	}
	return nil
}
