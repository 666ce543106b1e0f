package cli

import (
	"github.com/amterp/ra"
)

func registerExport(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("export")
	cmd.SetDescription("Write a saved palette to a file")

	ctx.ExportIndex, _ = ra.NewInt("index").
		SetUsage("Saved palette index").
		SetCompletionFunc(completeSavedPalettes).
		Register(cmd)

	ctx.ExportFormat, _ = ra.NewString("format").
		SetShort("f").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Output format (defaults to export_format in config, then css)").
		SetCompletionFunc(completeExportFormats).
		Register(cmd)

	ctx.ExportOutput, _ = ra.NewString("output").
		SetShort("o").
		SetOptional(true).
		SetDefault(".").
		SetFlagOnly(true).
		SetUsage("Directory to write into").
		Register(cmd)

	ctx.ExportUsed, _ = parent.RegisterCmd(cmd)
}

func runExport(index int, format, dir string, jsonOutput bool) {
	app, err := NewApp(false)
	if err != nil {
		Fatal(err)
	}
	defer app.Close()

	if format == "" {
		format = app.Config.ExportFormatOrDefault()
	}

	path, err := app.ExportService.Export(index, format, dir)
	if err != nil {
		Fatal(err)
	}

	if jsonOutput {
		if err := printJson(ExportOutput{Index: index, Format: format, Path: path}); err != nil {
			Fatal(err)
		}
		return
	}

	PrintSuccess("Exported palette %d to %s", index, path)
}
