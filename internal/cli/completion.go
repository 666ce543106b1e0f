package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/amterp/ra"
	"github.com/amterp/swatch/internal/config"
	"github.com/amterp/swatch/internal/kv"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/store"
)

// completionCtx provides lightweight store access for shell completion.
// Completion functions run during ParseOrExit, before NewApp() is called,
// so we can't use the full App. This opens just enough to list saved palettes.
type completionCtx struct {
	once     sync.Once
	palettes []model.Palette
	err      error
}

var compCtx completionCtx

func initCompletionCtx() {
	compCtx.once.Do(func() {
		paths := config.DefaultPaths()
		globalCfg, err := store.NewGlobalStore(paths.ConfigPath()).Load()
		if err != nil {
			// Graceful degradation: no completions if global config is broken
			globalCfg = nil
		}
		overrides, err := config.ParseEnv()
		if err != nil {
			compCtx.err = err
			return
		}
		cfg := overrides.Apply(globalCfg)

		kvStore, err := kv.Open(cfg.StorageOrDefault(), paths.WithDataDir(cfg.DataDir).DataDir())
		if err != nil {
			compCtx.err = err
			return
		}
		defer kvStore.Close()

		compCtx.palettes = store.NewPaletteStore(kvStore).Load()
	})
}

// completeSavedPalettes returns saved palette indices matching the given prefix.
func completeSavedPalettes(toComplete string) ([]string, ra.CompletionDirective) {
	initCompletionCtx()
	if compCtx.err != nil {
		return nil, ra.CompletionDirectiveNoFileComp
	}
	return matchIndices(len(compCtx.palettes), toComplete), ra.CompletionDirectiveNoFileComp
}

// completeExportFormats returns the supported export formats matching the given prefix.
func completeExportFormats(toComplete string) ([]string, ra.CompletionDirective) {
	return matchPrefix([]string{model.ExportCSS, model.ExportJSON, model.ExportText}, toComplete), ra.CompletionDirectiveNoFileComp
}

// matchIndices returns "0".."n-1" filtered by prefix.
func matchIndices(n int, prefix string) []string {
	var result []string
	for i := 0; i < n; i++ {
		s := strconv.Itoa(i)
		if strings.HasPrefix(s, prefix) {
			result = append(result, s)
		}
	}
	return result
}

func matchPrefix(options []string, prefix string) []string {
	var result []string
	for _, o := range options {
		if strings.HasPrefix(o, prefix) {
			result = append(result, o)
		}
	}
	return result
}

// registerCompletion adds the "swatch completion <shell>" command.
func registerCompletion(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("completion")
	cmd.SetDescription("Output shell completion script")

	ctx.CompletionShell, _ = ra.NewString("shell").
		SetUsage("Shell type").
		SetEnumConstraint([]string{"bash", "zsh"}).
		Register(cmd)

	ctx.CompletionUsed, _ = parent.RegisterCmd(cmd)
}

// runCompletion outputs the shell completion script to stdout.
func runCompletion(shell string, rootCmd *ra.Cmd) {
	var err error
	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletion(os.Stdout)
	case "zsh":
		err = rootCmd.GenZshCompletion(os.Stdout)
	default:
		Fatal(fmt.Errorf("unsupported shell: %s (supported: bash, zsh)", shell))
	}
	if err != nil {
		Fatal(fmt.Errorf("failed to generate completion script: %w", err))
	}
}
