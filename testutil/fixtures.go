package testutil

import (
	"os"
	"testing"

	"github.com/amterp/swatch/internal/config"
	"github.com/amterp/swatch/internal/engine"
	"github.com/amterp/swatch/internal/model"
)

// TestColors returns five well-formed colors with slot 1 locked.
func TestColors() []model.Color {
	return []model.Color{
		{Hex: "#0a1f33"},
		{Hex: "#ff8800", Locked: true},
		{Hex: "#00ccaa"},
		{Hex: "#123456"},
		{Hex: "#fedcba"},
	}
}

// TestPalette returns a named palette built from TestColors.
func TestPalette(name string) model.Palette {
	return model.Palette{Name: name, Colors: TestColors()}
}

// Counter returns a RandomSource yielding 1, 2, 3, ... so generated hexes are predictable.
func Counter() engine.RandomSource {
	n := 0
	return func() int {
		n++
		return n
	}
}

// TempDataDir creates a temporary data directory for testing.
// Returns the dir path and a cleanup function.
func TempDataDir(t *testing.T) (string, func()) {
	t.Helper()

	dir, err := os.MkdirTemp("", "swatch-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	cleanup := func() {
		os.RemoveAll(dir)
	}

	return dir, cleanup
}

// NewTestPaths creates a Paths for testing with the given temp directory.
func NewTestPaths(baseDir string) *config.Paths {
	return config.NewPaths(baseDir, "")
}
