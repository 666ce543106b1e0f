package cli

import (
	"os"

	"github.com/amterp/ra"
)

// CommandContext holds parsed values and used flags for all commands.
type CommandContext struct {
	// Global flags
	NonInteractive *bool
	Json           *bool

	// init command
	InitUsed         *bool
	InitStorage      *string
	InitDataDir      *string
	InitExportFormat *string

	// show command
	ShowUsed *bool

	// generate command
	GenerateUsed *bool

	// new command
	NewUsed *bool

	// lock command
	LockUsed *bool
	LockSlot *int

	// save command
	SaveUsed *bool
	SaveName *string

	// list command
	ListUsed *bool

	// delete command
	DeleteUsed  *bool
	DeleteIndex *int
	DeleteForce *bool

	// export command
	ExportUsed   *bool
	ExportIndex  *int
	ExportFormat *string
	ExportOutput *string

	// doctor command
	DoctorUsed *bool
	DoctorFix  *bool

	// migrate command
	MigrateUsed   *bool
	MigrateTo     *string
	MigrateDryRun *bool
	MigrateForce  *bool

	// serve command
	ServeUsed   *bool
	ServePort   *int
	ServeNoOpen *bool

	// completion command
	CompletionUsed  *bool
	CompletionShell *string
}

// Run is the main entry point for the CLI.
func Run() {
	ctx := &CommandContext{}

	cmd := ra.NewCmd("swatch")
	cmd.SetDescription("Generate, lock and save color palettes")

	// Global flag for non-interactive mode
	ctx.NonInteractive, _ = ra.NewBool("non-interactive").
		SetShort("I").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Fail instead of prompting for missing input").
		Register(cmd, ra.WithGlobal(true))

	ctx.Json, _ = ra.NewBool("json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Print machine-readable JSON").
		Register(cmd, ra.WithGlobal(true))

	// Register all subcommands
	registerInit(cmd, ctx)
	registerShow(cmd, ctx)
	registerGenerate(cmd, ctx)
	registerNew(cmd, ctx)
	registerLock(cmd, ctx)
	registerSave(cmd, ctx)
	registerList(cmd, ctx)
	registerDelete(cmd, ctx)
	registerExport(cmd, ctx)
	registerDoctor(cmd, ctx)
	registerMigrate(cmd, ctx)
	registerServe(cmd, ctx)
	registerCompletion(cmd, ctx)

	// Parse command line
	cmd.ParseOrExit(os.Args[1:])

	// Execute the appropriate command
	executeCommand(ctx, cmd)
}

func executeCommand(ctx *CommandContext, rootCmd *ra.Cmd) {
	switch {
	case *ctx.InitUsed:
		runInit(*ctx.InitStorage, *ctx.InitDataDir, *ctx.InitExportFormat)

	case *ctx.ShowUsed:
		runShow(*ctx.Json)

	case *ctx.GenerateUsed:
		runGenerate(*ctx.Json)

	case *ctx.NewUsed:
		runNew(*ctx.Json)

	case *ctx.LockUsed:
		runLock(*ctx.LockSlot, *ctx.Json)

	case *ctx.SaveUsed:
		runSave(*ctx.SaveName, *ctx.NonInteractive, *ctx.Json)

	case *ctx.ListUsed:
		runList(*ctx.Json)

	case *ctx.DeleteUsed:
		runDelete(*ctx.DeleteIndex, rootCmd.Configured("index"), *ctx.DeleteForce, *ctx.NonInteractive, *ctx.Json)

	case *ctx.ExportUsed:
		runExport(*ctx.ExportIndex, *ctx.ExportFormat, *ctx.ExportOutput, *ctx.Json)

	case *ctx.DoctorUsed:
		runDoctor(*ctx.DoctorFix, *ctx.Json)

	case *ctx.MigrateUsed:
		runMigrate(*ctx.MigrateTo, *ctx.MigrateDryRun, *ctx.MigrateForce, *ctx.Json)

	case *ctx.ServeUsed:
		if *ctx.Json {
			warnJsonNotSupported("serve")
		}
		runServe(*ctx.ServePort, *ctx.ServeNoOpen)

	case *ctx.CompletionUsed:
		runCompletion(*ctx.CompletionShell, rootCmd)

	default:
		// Bare "swatch" shows the current palette.
		runShow(*ctx.Json)
	}
}
