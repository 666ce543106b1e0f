package model

import (
	"regexp"
	"strings"
)

// DefaultPaletteName is used when a palette is saved without a name.
const DefaultPaletteName = "Untitled"

// PaletteSize is the number of colors in a freshly created palette.
const PaletteSize = 5

var hexPattern = regexp.MustCompile(`^#[0-9a-f]{6}$`)

// Color is a single palette slot.
type Color struct {
	Hex    string `json:"hex"`
	Locked bool   `json:"locked"`
}

// Palette is a named, ordered set of colors.
// Slot order is meaningful: locking and regeneration address colors by position.
type Palette struct {
	Name   string  `json:"name"`
	Colors []Color `json:"colors"`
}

// IsValidHex reports whether s is '#' followed by exactly six lowercase hex digits.
func IsValidHex(s string) bool {
	return hexPattern.MatchString(s)
}

// CloneColors returns a copy of colors that shares no backing array with the input.
// A nil input yields an empty, non-nil slice.
func CloneColors(colors []Color) []Color {
	out := make([]Color, len(colors))
	copy(out, colors)
	return out
}

// Clone returns a deep copy of the palette.
func (p Palette) Clone() Palette {
	return Palette{Name: p.Name, Colors: CloneColors(p.Colors)}
}

// Valid reports whether the palette has a colors list and every hex is well formed.
func (p Palette) Valid() bool {
	if p.Colors == nil {
		return false
	}
	for _, c := range p.Colors {
		if !IsValidHex(c.Hex) {
			return false
		}
	}
	return true
}

// LockedCount returns how many slots are locked.
func (p Palette) LockedCount() int {
	n := 0
	for _, c := range p.Colors {
		if c.Locked {
			n++
		}
	}
	return n
}

// Hexes returns the hex values in slot order.
func (p Palette) Hexes() []string {
	out := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		out[i] = c.Hex
	}
	return out
}

// NameOrDefault returns the trimmed name, or DefaultPaletteName if it is blank.
func NameOrDefault(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultPaletteName
	}
	return name
}

// ClonePalettes returns a deep copy of a palette collection.
// A nil input yields an empty, non-nil slice.
func ClonePalettes(palettes []Palette) []Palette {
	out := make([]Palette, len(palettes))
	for i, p := range palettes {
		out[i] = p.Clone()
	}
	return out
}
