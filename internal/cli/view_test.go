package cli

import (
	"strings"
	"testing"

	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/prompt"
)

func TestRenderSlots_OneLinePerSlot(t *testing.T) {
	p := model.Palette{Colors: []model.Color{
		{Hex: "#112233"},
		{Hex: "#445566", Locked: true},
		{Hex: "#778899"},
	}}

	out := renderSlots(p)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d: %q", len(lines), out)
	}
	if !strings.Contains(lines[1], "#445566") || !strings.Contains(lines[1], IconLocked) {
		t.Errorf("Expected locked slot line, got %q", lines[1])
	}
	if strings.Contains(lines[0], IconLocked) {
		t.Errorf("Unlocked slot rendered as locked: %q", lines[0])
	}
}

func TestPaletteLines(t *testing.T) {
	palettes := make([]model.Palette, 11)
	for i := range palettes {
		palettes[i] = model.Palette{Name: "p", Colors: []model.Color{{Hex: "#000000"}}}
	}
	palettes[10].Name = "last"

	lines := paletteLines(palettes)
	if len(lines) != 11 {
		t.Fatalf("Expected 11 lines, got %d", len(lines))
	}
	if !strings.HasSuffix(lines[10], "last") {
		t.Errorf("Expected name at end of line, got %q", lines[10])
	}
}

func TestPaletteOptions(t *testing.T) {
	opts := paletteOptions([]model.Palette{{Name: "Sunset"}, {Name: "Ocean"}})
	if len(opts) != 2 {
		t.Fatalf("Expected 2 options, got %d", len(opts))
	}
	if !strings.HasPrefix(opts[1], "1") || !strings.HasSuffix(opts[1], "Ocean") {
		t.Errorf("Unexpected option %q", opts[1])
	}
}

type stubPrompter struct {
	prompt.NoopPrompter
	input string
}

func (p *stubPrompter) Input(title, placeholder string) (string, error) {
	return p.input, nil
}

func TestPromptPaletteName(t *testing.T) {
	got, err := promptPaletteName(&stubPrompter{input: "Dusk"})
	if err != nil || got != "Dusk" {
		t.Errorf("Expected Dusk, got %q (%v)", got, err)
	}

	// Non-interactive prompters yield a blank name, saved as Untitled.
	got, err = promptPaletteName(&prompt.NoopPrompter{})
	if err != nil || got != "" {
		t.Errorf("Expected blank name without error, got %q (%v)", got, err)
	}
}

type selectPrompter struct {
	prompt.NoopPrompter
	choice   int
	selected bool
}

func (p *selectPrompter) Select(title string, options []string) (int, error) {
	p.selected = true
	return p.choice, nil
}

func TestResolveDeleteIndex_ExplicitNegativeIsNotPrompted(t *testing.T) {
	saved := []model.Palette{{Name: "a"}, {Name: "b"}}
	p := &selectPrompter{choice: 1}

	index, ok, err := resolveDeleteIndex(-1, true, false, saved, p)
	if err != nil || !ok {
		t.Fatalf("Expected explicit index to be used, got ok=%v err=%v", ok, err)
	}
	if index != -1 {
		t.Errorf("Expected -1 to pass through for the out-of-range no-op, got %d", index)
	}
	if p.selected {
		t.Error("Explicit index should not open the selection prompt")
	}
}

func TestResolveDeleteIndex_OmittedPrompts(t *testing.T) {
	saved := []model.Palette{{Name: "a"}, {Name: "b"}}
	p := &selectPrompter{choice: 1}

	index, ok, err := resolveDeleteIndex(0, false, false, saved, p)
	if err != nil || !ok || index != 1 || !p.selected {
		t.Errorf("Expected prompted index 1, got %d ok=%v err=%v selected=%v", index, ok, err, p.selected)
	}
}

func TestResolveDeleteIndex_OmittedNonInteractive(t *testing.T) {
	_, _, err := resolveDeleteIndex(0, false, true, []model.Palette{{Name: "a"}}, &selectPrompter{})
	if err == nil {
		t.Error("Expected error when index is omitted in non-interactive mode")
	}
}

func TestResolveDeleteIndex_NothingSaved(t *testing.T) {
	p := &selectPrompter{}
	_, ok, err := resolveDeleteIndex(0, false, false, nil, p)
	if err != nil || ok || p.selected {
		t.Errorf("Expected nothing to choose, got ok=%v err=%v selected=%v", ok, err, p.selected)
	}
}
