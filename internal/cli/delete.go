package cli

import (
	"fmt"

	"github.com/amterp/ra"
	kanerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/prompt"
)

func registerDelete(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("delete")
	cmd.SetDescription("Delete a saved palette")

	ctx.DeleteIndex, _ = ra.NewInt("index").
		SetOptional(true).
		SetUsage("Saved palette index (select interactively if omitted)").
		SetCompletionFunc(completeSavedPalettes).
		Register(cmd)

	ctx.DeleteForce, _ = ra.NewBool("force").
		SetShort("f").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Skip confirmation (required in non-interactive mode)").
		Register(cmd)

	ctx.DeleteUsed, _ = parent.RegisterCmd(cmd)
}

// runDelete removes a saved palette. indexGiven distinguishes an omitted index
// from any explicit value, including negative ones.
func runDelete(index int, indexGiven, force, nonInteractive, jsonOutput bool) {
	app, err := NewApp(!nonInteractive)
	if err != nil {
		Fatal(err)
	}
	defer app.Close()

	svc := app.PaletteService
	saved := svc.Saved()

	index, ok, err := resolveDeleteIndex(index, indexGiven, nonInteractive, saved, app.Prompter)
	if err != nil {
		Fatal(err)
	}
	if !ok {
		PrintInfo("No saved palettes to delete")
		return
	}

	p, err := svc.Get(index)
	if err != nil {
		// Out-of-range deletes change nothing.
		if jsonOutput {
			if err := printJson(NewDeleteOutput(false, saved)); err != nil {
				Fatal(err)
			}
			return
		}
		PrintWarning("No saved palette at index %d; nothing deleted", index)
		return
	}

	if !force {
		if nonInteractive {
			Fatal(fmt.Errorf("deleting palette %q (%d) requires --force in non-interactive mode", p.Name, index))
		}

		confirmed, err := app.Prompter.Confirm(fmt.Sprintf("Delete palette %q (%d)?", p.Name, index), false)
		if err != nil {
			Fatal(err)
		}
		if !confirmed {
			PrintInfo("Cancelled")
			return
		}
	}

	deleted, err := svc.Delete(index)
	if err := notPersisted(fmt.Sprintf("deleted palette %q", p.Name), err); err != nil {
		Fatal(err)
	}

	if jsonOutput {
		if err := printJson(NewDeleteOutput(deleted, svc.Saved())); err != nil {
			Fatal(err)
		}
		return
	}

	PrintSuccess("Deleted palette %q (%d)", p.Name, index)
}

// resolveDeleteIndex returns the index to delete, prompting only when none was given.
// ok is false when there is nothing to choose from.
func resolveDeleteIndex(index int, indexGiven, nonInteractive bool, saved []model.Palette, p prompt.Prompter) (int, bool, error) {
	if indexGiven {
		return index, true, nil
	}
	if nonInteractive {
		return 0, false, kanerr.InvalidField("index", "required in non-interactive mode")
	}
	if len(saved) == 0 {
		return 0, false, nil
	}
	index, err := p.Select("Delete which palette?", paletteOptions(saved))
	if err != nil {
		return 0, false, err
	}
	return index, true, nil
}
