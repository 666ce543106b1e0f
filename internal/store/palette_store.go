package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/amterp/swatch/internal/kv"
	"github.com/amterp/swatch/internal/model"
)

// SavedPalettesKey is the key the whole saved-palette collection is stored under.
const SavedPalettesKey = "savedPalettes"

// KVPaletteStore implements PaletteStore on top of a kv.Store.
// The collection is always written as one JSON array; there are no per-palette records.
type KVPaletteStore struct {
	kv kv.Store
}

// NewPaletteStore creates a palette store backed by the given key-value store.
func NewPaletteStore(s kv.Store) *KVPaletteStore {
	return &KVPaletteStore{kv: s}
}

// Load reads the saved collection.
// Missing, unreadable or malformed data yields an empty collection; it never fails.
func (s *KVPaletteStore) Load() []model.Palette {
	raw, ok, err := s.kv.Get(SavedPalettesKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to read saved palettes: %v\n", err)
		return []model.Palette{}
	}
	if !ok {
		return []model.Palette{}
	}

	palettes, err := DecodePalettes(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring malformed saved palettes: %v\n", err)
		return []model.Palette{}
	}
	return palettes
}

// Save appends a snapshot of currentColors under name (or "Untitled") and persists
// the resulting collection. The returned collection is valid even if the write
// fails; the error only reports that it did not reach storage.
func (s *KVPaletteStore) Save(name string, currentColors []model.Color, existing []model.Palette) ([]model.Palette, error) {
	result := make([]model.Palette, 0, len(existing)+1)
	result = append(result, model.ClonePalettes(existing)...)
	result = append(result, model.Palette{
		Name:   model.NameOrDefault(name),
		Colors: model.CloneColors(currentColors),
	})

	if err := s.persist(result); err != nil {
		return result, err
	}
	return result, nil
}

// Delete removes the palette at index and persists the result.
// An out-of-range index returns the collection unchanged and writes nothing.
func (s *KVPaletteStore) Delete(index int, existing []model.Palette) ([]model.Palette, error) {
	if index < 0 || index >= len(existing) {
		return model.ClonePalettes(existing), nil
	}

	result := make([]model.Palette, 0, len(existing)-1)
	for i, p := range existing {
		if i == index {
			continue
		}
		result = append(result, p.Clone())
	}

	if err := s.persist(result); err != nil {
		return result, err
	}
	return result, nil
}

func (s *KVPaletteStore) persist(palettes []model.Palette) error {
	data, err := json.MarshalIndent(palettes, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal saved palettes: %w", err)
	}
	if err := s.kv.Set(SavedPalettesKey, string(data)); err != nil {
		return fmt.Errorf("failed to persist saved palettes: %w", err)
	}
	return nil
}

// storedPalette mirrors model.Palette with pointers so absent keys can be told
// apart from zero values.
type storedPalette struct {
	Name   *string       `json:"name"`
	Colors []storedColor `json:"colors"`
}

type storedColor struct {
	Hex    string `json:"hex"`
	Locked *bool  `json:"locked"`
}

// DecodePalettes parses a stored collection, rejecting anything that isn't an
// array of {name, colors: [{hex, locked}]} with a non-empty name and
// well-formed hex values.
func DecodePalettes(raw string) ([]model.Palette, error) {
	var stored []storedPalette
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if stored == nil {
		// JSON null
		return nil, fmt.Errorf("expected an array")
	}

	palettes := make([]model.Palette, len(stored))
	for i, sp := range stored {
		if sp.Name == nil || *sp.Name == "" {
			return nil, fmt.Errorf("palette %d has no name", i)
		}
		p := model.Palette{Name: *sp.Name}
		if sp.Colors != nil {
			p.Colors = make([]model.Color, len(sp.Colors))
		}
		for j, c := range sp.Colors {
			if c.Locked == nil {
				return nil, fmt.Errorf("palette %d color %d has no locked flag", i, j)
			}
			p.Colors[j] = model.Color{Hex: c.Hex, Locked: *c.Locked}
		}
		if !p.Valid() {
			return nil, fmt.Errorf("palette %d has missing or malformed colors", i)
		}
		palettes[i] = p
	}
	return palettes, nil
}
