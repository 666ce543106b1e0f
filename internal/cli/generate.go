package cli

import (
	"github.com/amterp/ra"
)

func registerGenerate(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("generate")
	cmd.SetDescription("Regenerate every unlocked color")

	ctx.GenerateUsed, _ = parent.RegisterCmd(cmd)
}

func runGenerate(jsonOutput bool) {
	app, err := NewApp(false)
	if err != nil {
		Fatal(err)
	}
	defer app.Close()

	svc := app.PaletteService
	p, err := svc.Regenerate()
	if err := notPersisted("regenerated palette", err); err != nil {
		Fatal(err)
	}

	if jsonOutput {
		if err := printJson(NewCurrentOutput(svc.SessionID(), p, svc.UpdatedAtMillis())); err != nil {
			Fatal(err)
		}
		return
	}

	printCurrent(svc.SessionID(), p, svc.UpdatedAtMillis())
}

func registerNew(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("new")
	cmd.SetDescription("Start a fresh palette, dropping all locks")

	ctx.NewUsed, _ = parent.RegisterCmd(cmd)
}

func runNew(jsonOutput bool) {
	app, err := NewApp(false)
	if err != nil {
		Fatal(err)
	}
	defer app.Close()

	svc := app.PaletteService
	p, err := svc.NewPalette()
	if err := notPersisted("created palette", err); err != nil {
		Fatal(err)
	}

	if jsonOutput {
		if err := printJson(NewCurrentOutput(svc.SessionID(), p, svc.UpdatedAtMillis())); err != nil {
			Fatal(err)
		}
		return
	}

	printCurrent(svc.SessionID(), p, svc.UpdatedAtMillis())
}
