package cli

import (
	"fmt"
	"strings"

	"github.com/amterp/ra"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/util"
)

func registerShow(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("show")
	cmd.SetDescription("Display the current palette")

	ctx.ShowUsed, _ = parent.RegisterCmd(cmd)
}

func runShow(jsonOutput bool) {
	app, err := NewApp(false)
	if err != nil {
		Fatal(err)
	}
	defer app.Close()

	svc := app.PaletteService
	if jsonOutput {
		if err := printJson(NewCurrentOutput(svc.SessionID(), svc.Current(), svc.UpdatedAtMillis())); err != nil {
			Fatal(err)
		}
		return
	}

	printCurrent(svc.SessionID(), svc.Current(), svc.UpdatedAtMillis())
}

// printCurrent renders the current palette in a box with one row per slot.
func printCurrent(sessionID string, p model.Palette, updatedAt int64) {
	const labelWidth = 8

	fmt.Println(Box(renderSlots(p)))
	fmt.Println(LabelValue("Locked", fmt.Sprintf("%d/%d", p.LockedCount(), len(p.Colors)), labelWidth))
	fmt.Println(LabelValue("Session", RenderID(sessionID), labelWidth))
	fmt.Println(LabelValue("Updated", RenderMuted(util.FormatMillis(updatedAt)), labelWidth))
}

// renderSlots returns one line per slot: index, swatch, hex, lock icon.
func renderSlots(p model.Palette) string {
	lines := make([]string, 0, len(p.Colors))
	for i, c := range p.Colors {
		lines = append(lines, fmt.Sprintf("%s  %s  %s  %s", RenderIndex(i), WideSwatch(c.Hex), RenderHex(c.Hex, c.Hex), LockIcon(c.Locked)))
	}
	return strings.Join(lines, "\n")
}

// renderStrip renders a palette as a compact row of swatches.
func renderStrip(colors []model.Color) string {
	parts := make([]string, len(colors))
	for i, c := range colors {
		parts[i] = ColorSwatch(c.Hex)
	}
	return strings.Join(parts, "")
}
