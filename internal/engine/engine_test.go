package engine

import (
	"reflect"
	"testing"

	"github.com/amterp/swatch/internal/model"
)

// sequence returns a RandomSource that yields vals in order, then repeats the last one.
func sequence(vals ...int) RandomSource {
	i := 0
	return func() int {
		v := vals[i]
		if i < len(vals)-1 {
			i++
		}
		return v
	}
}

func TestRandomHex_Formatting(t *testing.T) {
	tests := []struct {
		name string
		val  int
		want string
	}{
		{"zero is fully padded", 0, "#000000"},
		{"small value is zero padded", 0x0a1f33, "#0a1f33"},
		{"single digit", 0xf, "#00000f"},
		{"max value", MaxColorValue, "#ffffff"},
		{"lowercase letters", 0xABCDEF, "#abcdef"},
		{"overflow wraps", MaxColorValue + 1, "#000000"},
		{"negative wraps", -1, "#ffffff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(sequence(tt.val))
			if got := e.RandomHex(); got != tt.want {
				t.Errorf("RandomHex() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRandomHex_DefaultSourceAlwaysWellFormed(t *testing.T) {
	e := NewDefault()
	for i := 0; i < 1000; i++ {
		hex := e.RandomHex()
		if !model.IsValidHex(hex) {
			t.Fatalf("RandomHex() produced malformed %q", hex)
		}
	}
}

func TestDefaultSource_InRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		v := DefaultSource()
		if v < 0 || v > MaxColorValue {
			t.Fatalf("DefaultSource() = %d, out of [0, %d]", v, MaxColorValue)
		}
	}
}

func TestNew_NilSourceFallsBack(t *testing.T) {
	e := New(nil)
	if !model.IsValidHex(e.RandomHex()) {
		t.Error("Expected well-formed hex from fallback source")
	}
}

func TestCreateInitialPalette(t *testing.T) {
	e := New(sequence(1, 2, 3, 4, 5))
	p := e.CreateInitialPalette()

	if p.Name != "" {
		t.Errorf("Expected empty name, got %q", p.Name)
	}
	if len(p.Colors) != model.PaletteSize {
		t.Fatalf("Expected %d colors, got %d", model.PaletteSize, len(p.Colors))
	}

	want := []string{"#000001", "#000002", "#000003", "#000004", "#000005"}
	for i, c := range p.Colors {
		if c.Locked {
			t.Errorf("Slot %d should start unlocked", i)
		}
		if c.Hex != want[i] {
			t.Errorf("Slot %d hex = %q, want %q", i, c.Hex, want[i])
		}
	}
}

func TestCreateInitialPalette_DefaultSourceFormat(t *testing.T) {
	e := NewDefault()
	for i := 0; i < 50; i++ {
		p := e.CreateInitialPalette()
		if len(p.Colors) != 5 {
			t.Fatalf("Expected 5 colors, got %d", len(p.Colors))
		}
		if !p.Valid() {
			t.Fatalf("Palette has malformed hex: %+v", p.Colors)
		}
	}
}

func TestRegenerate_KeepsLockedSlots(t *testing.T) {
	e := New(sequence(0x111111, 0x222222, 0x333333))
	in := []model.Color{
		{Hex: "#aaaaaa", Locked: true},
		{Hex: "#bbbbbb"},
		{Hex: "#cccccc", Locked: true},
		{Hex: "#dddddd"},
	}

	out := e.Regenerate(in)

	want := []model.Color{
		{Hex: "#aaaaaa", Locked: true},
		{Hex: "#111111"},
		{Hex: "#cccccc", Locked: true},
		{Hex: "#222222"},
	}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("Regenerate mismatch:\n got: %+v\nwant: %+v", out, want)
	}
}

func TestRegenerate_DoesNotMutateInput(t *testing.T) {
	e := New(sequence(0x123456))
	in := []model.Color{{Hex: "#aaaaaa"}, {Hex: "#bbbbbb", Locked: true}}
	orig := model.CloneColors(in)

	_ = e.Regenerate(in)

	if !reflect.DeepEqual(in, orig) {
		t.Errorf("Regenerate mutated input: %+v", in)
	}
}

func TestRegenerate_PreservesLengthAndFormat(t *testing.T) {
	e := NewDefault()
	in := []model.Color{{Hex: "#000000"}, {Hex: "#ffffff", Locked: true}, {Hex: "#0a0a0a"}}

	for i := 0; i < 100; i++ {
		out := e.Regenerate(in)
		if len(out) != len(in) {
			t.Fatalf("Length changed: got %d, want %d", len(out), len(in))
		}
		for j, c := range out {
			if in[j].Locked {
				if c != in[j] {
					t.Fatalf("Locked slot %d changed: %+v -> %+v", j, in[j], c)
				}
				continue
			}
			if c.Locked {
				t.Fatalf("Unlocked slot %d came back locked", j)
			}
			if !model.IsValidHex(c.Hex) {
				t.Fatalf("Slot %d has malformed hex %q", j, c.Hex)
			}
		}
	}
}

func TestRegenerate_Empty(t *testing.T) {
	out := NewDefault().Regenerate(nil)
	if out == nil || len(out) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", out)
	}
}

func TestToggleLock_FlipsOneSlot(t *testing.T) {
	in := []model.Color{{Hex: "#000000"}, {Hex: "#111111"}, {Hex: "#222222", Locked: true}}

	out := ToggleLock(in, 1)

	want := []model.Color{{Hex: "#000000"}, {Hex: "#111111", Locked: true}, {Hex: "#222222", Locked: true}}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("ToggleLock mismatch:\n got: %+v\nwant: %+v", out, want)
	}
	if in[1].Locked {
		t.Error("ToggleLock mutated input")
	}

	out = ToggleLock(out, 2)
	if out[2].Locked {
		t.Error("Expected slot 2 to unlock")
	}
	if out[2].Hex != "#222222" {
		t.Errorf("Toggle changed hex: %q", out[2].Hex)
	}
}

func TestToggleLock_SelfInverse(t *testing.T) {
	in := []model.Color{{Hex: "#0a1f33"}, {Hex: "#ffeedd", Locked: true}}
	for i := range in {
		if got := ToggleLock(ToggleLock(in, i), i); !reflect.DeepEqual(got, in) {
			t.Errorf("Double toggle at %d: got %+v, want %+v", i, got, in)
		}
	}
}

func TestToggleLock_OutOfRangeIsNoop(t *testing.T) {
	in := []model.Color{{Hex: "#000000"}, {Hex: "#111111", Locked: true}}

	for _, idx := range []int{-1, 2, 100} {
		out := ToggleLock(in, idx)
		if !reflect.DeepEqual(out, in) {
			t.Errorf("ToggleLock(%d) changed colors: %+v", idx, out)
		}
	}

	if out := ToggleLock(nil, 0); len(out) != 0 {
		t.Errorf("ToggleLock(nil, 0) = %+v, want empty", out)
	}
}
