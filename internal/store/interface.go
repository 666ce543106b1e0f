package store

import "github.com/amterp/swatch/internal/model"

// PaletteStore handles the saved-palette collection.
type PaletteStore interface {
	Load() []model.Palette
	Save(name string, currentColors []model.Color, existing []model.Palette) ([]model.Palette, error)
	Delete(index int, existing []model.Palette) ([]model.Palette, error)
}

// SessionStore handles the current-palette session record.
type SessionStore interface {
	LoadSession() (*model.Session, bool)
	SaveSession(session *model.Session) error
}

// GlobalStore handles global config persistence.
type GlobalStore interface {
	Load() (*model.GlobalConfig, error)
	Save(config *model.GlobalConfig) error
	EnsureExists() error
}
