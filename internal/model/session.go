package model

// Session is the persisted form of the current palette.
// Stored under its own key so the saved-palette document stays a plain array.
type Session struct {
	ID              string  `json:"id"`
	Colors          []Color `json:"colors"`
	UpdatedAtMillis int64   `json:"updated_at_millis"`
}

// Palette returns the session's current palette. The current palette is unnamed.
func (s *Session) Palette() Palette {
	return Palette{Colors: CloneColors(s.Colors)}
}
