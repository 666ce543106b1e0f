package cli

import (
	"errors"
	"fmt"

	"github.com/amterp/ra"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/prompt"
	"github.com/amterp/swatch/internal/service"
)

func registerSave(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("save")
	cmd.SetDescription("Save the current palette under a name")

	ctx.SaveName, _ = ra.NewString("name").
		SetOptional(true).
		SetUsage("Palette name (prompted for if omitted; blank saves as \"Untitled\")").
		Register(cmd)

	ctx.SaveUsed, _ = parent.RegisterCmd(cmd)
}

func runSave(name string, nonInteractive, jsonOutput bool) {
	app, err := NewApp(!nonInteractive)
	if err != nil {
		Fatal(err)
	}
	defer app.Close()

	if name == "" && !nonInteractive && !jsonOutput {
		name, err = promptPaletteName(app.Prompter)
		if err != nil {
			Fatal(err)
		}
	}

	p, index, err := app.PaletteService.Save(name)
	if err := notPersisted(fmt.Sprintf("saved %q", p.Name), err); err != nil {
		Fatal(err)
	}

	hookResults := service.NewHookService(app.Paths.DataDir()).RunSaveHooks(app.Config.SaveHooks, p)

	if jsonOutput {
		if err := printJson(NewSavedOutput(index, p, hookResults)); err != nil {
			Fatal(err)
		}
		return
	}

	PrintSuccess("Saved %q as %s %s", p.Name, RenderIndex(index), renderStrip(p.Colors))
	printHookResults(hookResults)
}

func printHookResults(results []*service.HookResult) {
	for _, r := range results {
		if !r.Success {
			detail := r.Stderr
			if detail == "" && r.Error != nil {
				detail = r.Error.Error()
			}
			PrintWarning("Hook %q failed (exit %d): %s", r.HookName, r.ExitCode, detail)
			continue
		}
		if r.Stdout != "" {
			fmt.Println(RenderMuted(fmt.Sprintf("  %s: %s", r.HookName, r.Stdout)))
		}
	}
}

// promptPaletteName asks for a name. Declining the prompt counts as a blank name.
func promptPaletteName(p prompt.Prompter) (string, error) {
	name, err := p.Input("Palette name", model.DefaultPaletteName)
	if errors.Is(err, prompt.ErrNonInteractive) {
		return "", nil
	}
	return name, err
}
