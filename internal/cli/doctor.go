package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/amterp/ra"
	"github.com/amterp/swatch/internal/config"
	"github.com/amterp/swatch/internal/service"
)

func registerDoctor(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("doctor")
	cmd.SetDescription("Check stored palettes for data that would be ignored. Exit 0 if healthy, 1 if errors found.")

	ctx.DoctorFix, _ = ra.NewBool("fix").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Back up malformed data and reset it").
		Register(cmd)

	ctx.DoctorUsed, _ = parent.RegisterCmd(cmd)
}

func runDoctor(fix bool, jsonOutput bool) {
	app, err := NewAppWithoutSession(config.DefaultPaths(), false)
	if err != nil {
		Fatal(err)
	}
	defer app.Close()

	doctorService := service.NewDoctorService(app.KV, app.Engine, app.Config.StorageOrDefault(), app.Paths.DataDir(), app.ConfigErr).
		WithSaveHooks(app.Config.SaveHooks)

	report := doctorService.Diagnose()
	if fix && len(report.Issues) > 0 {
		report = doctorService.Fix(report)
	}

	if jsonOutput {
		if err := printJson(report); err != nil {
			Fatal(err)
		}
	} else {
		printDoctorReport(report, fix)
	}

	if report.HasErrors() {
		app.Close()
		os.Exit(1)
	}
}

func printDoctorReport(report *service.DiagnosticReport, didFix bool) {
	fmt.Printf("Checking %s store in %s...\n", RenderBold(report.Store.Backend), RenderMuted(report.Store.DataDir))
	fmt.Printf("  Saved palettes: %d\n", report.Store.SavedPalettes)
	fmt.Printf("  Current palette: %v\n", report.Store.SessionPresent)
	fmt.Println()

	if didFix && report.Summary.Fixed > 0 {
		PrintSuccess("Fixed %d issue(s)", report.Summary.Fixed)
		fmt.Println()
	}

	if len(report.Issues) == 0 {
		PrintSuccess("No issues found")
		return
	}

	// Errors first, then warnings
	for _, severity := range []service.IssueSeverity{service.SeverityError, service.SeverityWarning} {
		for _, issue := range report.Issues {
			if issue.Severity == severity {
				printIssue(issue)
			}
		}
	}

	fmt.Println()
	var parts []string
	if report.Summary.Errors > 0 {
		parts = append(parts, StyleError.Render(fmt.Sprintf("%d error(s)", report.Summary.Errors)))
	}
	if report.Summary.Warnings > 0 {
		parts = append(parts, StyleWarning.Render(fmt.Sprintf("%d warning(s)", report.Summary.Warnings)))
	}
	if report.Summary.FixFailed > 0 {
		parts = append(parts, StyleError.Render(fmt.Sprintf("%d fix failed", report.Summary.FixFailed)))
	}
	fmt.Printf("Summary: %s\n", strings.Join(parts, ", "))

	if !didFix {
		for _, issue := range report.Issues {
			if issue.Fixable {
				fmt.Println()
				PrintInfo("Run 'swatch doctor --fix' to apply automatic fixes")
				break
			}
		}
	}
}

func printIssue(issue service.Issue) {
	var icon, code string
	if issue.Severity == service.SeverityError {
		icon = StyleError.Render(IconError)
		code = StyleError.Render(fmt.Sprintf("[%s]", issue.Code))
	} else {
		icon = StyleWarning.Render(IconWarning)
		code = StyleWarning.Render(fmt.Sprintf("[%s]", issue.Code))
	}

	location := ""
	if issue.Key != "" {
		location = " " + RenderMuted(issue.Key)
		if issue.Index != nil {
			location += "/" + RenderIndex(*issue.Index)
		}
	}

	fmt.Printf("%s %s%s %s\n", icon, code, location, issue.Message)

	if issue.FixError != "" {
		fmt.Printf("  %s Fix failed: %s\n", StyleError.Render(IconInfo), issue.FixError)
	} else if issue.Fixable {
		fmt.Printf("  %s Fix: %s\n", RenderMuted(IconInfo), issue.FixAction)
	}
}
