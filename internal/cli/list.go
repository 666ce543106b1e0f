package cli

import (
	"fmt"

	"github.com/amterp/ra"
	"github.com/amterp/swatch/internal/model"
)

func registerList(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("list")
	cmd.SetDescription("List saved palettes")

	ctx.ListUsed, _ = parent.RegisterCmd(cmd)
}

func runList(jsonOutput bool) {
	app, err := NewApp(false)
	if err != nil {
		Fatal(err)
	}
	defer app.Close()

	palettes := app.PaletteService.Saved()

	if jsonOutput {
		if err := printJson(NewPalettesOutput(palettes)); err != nil {
			Fatal(err)
		}
		return
	}

	if len(palettes) == 0 {
		PrintInfo("No saved palettes. Use 'swatch save' to keep the current one.")
		return
	}

	printPalettes(palettes)
}

func printPalettes(palettes []model.Palette) {
	fmt.Println(TitleBox(fmt.Sprintf("Saved palettes (%d)", len(palettes))))
	for _, line := range paletteLines(palettes) {
		fmt.Println(line)
	}
}

// paletteLines renders "index  swatches  name" for each saved palette.
func paletteLines(palettes []model.Palette) []string {
	width := len(fmt.Sprintf("%d", len(palettes)-1))
	lines := make([]string, len(palettes))
	for i, p := range palettes {
		idx := fmt.Sprintf("%*d", width, i)
		lines[i] = fmt.Sprintf("%s  %s  %s", StyleID.Render(idx), renderStrip(p.Colors), p.Name)
	}
	return lines
}

// paletteOptions returns the labels shown when picking a palette interactively.
func paletteOptions(palettes []model.Palette) []string {
	options := make([]string, len(palettes))
	for i, p := range palettes {
		options[i] = fmt.Sprintf("%d  %s  %s", i, renderStrip(p.Colors), p.Name)
	}
	return options
}
