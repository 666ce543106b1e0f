package cli

import (
	"fmt"

	"github.com/amterp/ra"
	"github.com/amterp/swatch/internal/config"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/service"
)

func registerMigrate(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("migrate")
	cmd.SetDescription("Copy stored palettes to another storage backend and switch to it")

	ctx.MigrateTo, _ = ra.NewString("to").
		SetUsage("Target backend: file or sqlite").
		SetCompletionFunc(completeStorageBackends).
		Register(cmd)

	ctx.MigrateDryRun, _ = ra.NewBool("dry-run").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Show what would be copied without writing anything").
		Register(cmd)

	ctx.MigrateForce, _ = ra.NewBool("force").
		SetShort("f").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Overwrite data already in the target backend").
		Register(cmd)

	ctx.MigrateUsed, _ = parent.RegisterCmd(cmd)
}

func runMigrate(to string, dryRun, force, jsonOutput bool) {
	app, err := NewAppWithoutSession(config.DefaultPaths(), false)
	if err != nil {
		Fatal(err)
	}
	defer app.Close()

	from := app.Config.StorageOrDefault()
	migrateService := service.NewMigrateService(app.GlobalStore, app.Paths.DataDir())

	plan, err := migrateService.Plan(from, to)
	if err != nil {
		Fatal(err)
	}

	if jsonOutput {
		if !dryRun {
			if err := migrateService.Execute(plan, force); err != nil {
				Fatal(err)
			}
		}
		if err := printJson(plan); err != nil {
			Fatal(err)
		}
		return
	}

	if dryRun {
		fmt.Println(RenderBold("Migration plan (dry run):"))
	}
	printMigrationPlan(plan)

	if dryRun {
		return
	}

	if err := migrateService.Execute(plan, force); err != nil {
		Fatal(err)
	}

	fmt.Println()
	PrintSuccess("Now using %s storage.", plan.To)
	if overrides, err := config.ParseEnv(); err == nil && overrides.Storage != "" && overrides.Storage != plan.To {
		PrintWarning("SWATCH_STORAGE=%s still overrides the config file", overrides.Storage)
	}
}

func printMigrationPlan(plan *service.MigrationPlan) {
	fmt.Printf("%s -> %s in %s\n", plan.From, plan.To, RenderMuted(plan.DataDir))
	if !plan.HasChanges() {
		fmt.Println(RenderMuted("  Nothing stored yet; only the config will change."))
		return
	}
	for _, k := range plan.Keys {
		line := fmt.Sprintf("  %s (%d bytes)", k.Key, k.Bytes)
		if k.Overwrites {
			line += " " + RenderMuted("overwrites existing data")
		}
		fmt.Println(line)
	}
}

func completeStorageBackends(toComplete string) ([]string, ra.CompletionDirective) {
	return matchPrefix([]string{model.StorageFile, model.StorageSQLite}, toComplete), ra.CompletionDirectiveNoFileComp
}
