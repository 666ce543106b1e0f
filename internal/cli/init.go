package cli

import (
	"fmt"

	"github.com/amterp/ra"
	"github.com/amterp/swatch/internal/config"
	"github.com/amterp/swatch/internal/service"
	"github.com/amterp/swatch/internal/store"
)

func registerInit(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("init")
	cmd.SetDescription("Write ~/.config/swatch/config.toml and create the data directory")

	ctx.InitStorage, _ = ra.NewString("storage").
		SetShort("s").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Storage backend: file or sqlite").
		Register(cmd)

	ctx.InitDataDir, _ = ra.NewString("data-dir").
		SetShort("d").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Data directory (relative paths resolve against the config directory)").
		Register(cmd)

	ctx.InitExportFormat, _ = ra.NewString("export-format").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Default export format: css, json or txt").
		SetCompletionFunc(completeExportFormats).
		Register(cmd)

	ctx.InitUsed, _ = parent.RegisterCmd(cmd)
}

func runInit(storage, dataDir, exportFormat string) {
	paths := config.DefaultPaths()
	initService := service.NewInitService(store.NewGlobalStore(paths.ConfigPath()), paths)

	cfg, err := initService.Initialize(service.InitOptions{
		Storage:      storage,
		DataDir:      dataDir,
		ExportFormat: exportFormat,
	})
	if err != nil {
		Fatal(err)
	}

	const labelWidth = 14
	PrintSuccess("Wrote %s", paths.ConfigPath())
	fmt.Println(LabelValue("Storage", cfg.StorageOrDefault(), labelWidth))
	fmt.Println(LabelValue("Data dir", paths.WithDataDir(cfg.DataDir).DataDir(), labelWidth))
	fmt.Println(LabelValue("Export format", cfg.ExportFormatOrDefault(), labelWidth))
}
