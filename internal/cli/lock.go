package cli

import (
	"fmt"

	"github.com/amterp/ra"
)

func registerLock(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("lock")
	cmd.SetDescription("Toggle the lock on one slot of the current palette")

	ctx.LockSlot, _ = ra.NewInt("slot").
		SetUsage("Slot index, starting at 0").
		Register(cmd)

	ctx.LockUsed, _ = parent.RegisterCmd(cmd)
}

func runLock(slot int, jsonOutput bool) {
	app, err := NewApp(false)
	if err != nil {
		Fatal(err)
	}
	defer app.Close()

	svc := app.PaletteService
	changed, err := svc.ToggleLock(slot)
	if err := notPersisted(fmt.Sprintf("toggled slot %d", slot), err); err != nil {
		Fatal(err)
	}
	p := svc.Current()

	if jsonOutput {
		if err := printJson(NewLockOutput(changed, svc.SessionID(), p, svc.UpdatedAtMillis())); err != nil {
			Fatal(err)
		}
		return
	}

	if !changed {
		PrintWarning("No slot %d (palette has %d slots); nothing changed", slot, len(p.Colors))
		return
	}

	c := p.Colors[slot]
	if c.Locked {
		PrintSuccess("Locked slot %s (%s)", RenderIndex(slot), RenderHex(c.Hex, c.Hex))
	} else {
		PrintSuccess("Unlocked slot %s (%s)", RenderIndex(slot), RenderHex(c.Hex, c.Hex))
	}
	fmt.Println(renderSlots(p))
}
