// Package engine generates palettes and applies the per-slot lock state machine.
//
// Every operation is pure over its arguments: callers own the current palette
// and replace it with the returned value.
package engine

import (
	"fmt"
	"math/rand/v2"

	"github.com/amterp/swatch/internal/model"
)

// MaxColorValue is the largest 24-bit RGB value (#ffffff).
const MaxColorValue = 0xFFFFFF

// RandomSource returns a value in [0, MaxColorValue].
// Values outside that range are reduced modulo MaxColorValue+1.
type RandomSource func() int

// DefaultSource draws uniformly from [0, MaxColorValue].
func DefaultSource() int {
	return rand.IntN(MaxColorValue + 1)
}

// Engine creates and regenerates palettes.
type Engine struct {
	random RandomSource
}

// New creates an engine drawing colors from src.
// A nil src falls back to DefaultSource.
func New(src RandomSource) *Engine {
	if src == nil {
		src = DefaultSource
	}
	return &Engine{random: src}
}

// NewDefault creates an engine backed by math/rand/v2.
func NewDefault() *Engine {
	return New(DefaultSource)
}

// RandomHex returns a random color as '#' plus six lowercase, zero-padded hex digits.
func (e *Engine) RandomHex() string {
	v := e.random() % (MaxColorValue + 1)
	if v < 0 {
		v += MaxColorValue + 1
	}
	return fmt.Sprintf("#%06x", v)
}

// CreateInitialPalette returns an unnamed palette of PaletteSize unlocked random colors.
func (e *Engine) CreateInitialPalette() model.Palette {
	colors := make([]model.Color, model.PaletteSize)
	for i := range colors {
		colors[i] = model.Color{Hex: e.RandomHex()}
	}
	return model.Palette{Colors: colors}
}

// Regenerate returns a new slice where every unlocked slot has a fresh random
// color and every locked slot is unchanged. Unlocked slots always come back
// with Locked=false. Length and order match the input.
func (e *Engine) Regenerate(colors []model.Color) []model.Color {
	out := make([]model.Color, len(colors))
	for i, c := range colors {
		if c.Locked {
			out[i] = c
			continue
		}
		out[i] = model.Color{Hex: e.RandomHex(), Locked: false}
	}
	return out
}

// ToggleLock returns a copy of colors with the lock at index flipped.
// An out-of-range index returns an unchanged copy.
func ToggleLock(colors []model.Color, index int) []model.Color {
	out := model.CloneColors(colors)
	if !InRange(colors, index) {
		return out
	}
	out[index].Locked = !out[index].Locked
	return out
}

// InRange reports whether index addresses a slot in colors.
func InRange(colors []model.Color, index int) bool {
	return index >= 0 && index < len(colors)
}
