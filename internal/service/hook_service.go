package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/amterp/swatch/internal/model"
)

// DefaultHookTimeout is the default timeout for hook execution in seconds.
const DefaultHookTimeout = 30

// HookResult contains the result of executing a hook.
type HookResult struct {
	HookName string
	Success  bool
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
	Error    error
}

// HookService runs save hooks.
type HookService struct {
	workDir string
}

// NewHookService creates a hook service that runs commands from workDir.
func NewHookService(workDir string) *HookService {
	return &HookService{
		workDir: workDir,
	}
}

// ValidateHook reports why a hook can never run, or nil.
func ValidateHook(hook model.SaveHook) error {
	if strings.TrimSpace(hook.Command) == "" {
		return fmt.Errorf("hook %q has no command", hook.Name)
	}
	if hook.PatternName != "" {
		if _, err := regexp.Compile(hook.PatternName); err != nil {
			return fmt.Errorf("hook %q has invalid pattern_name: %w", hook.Name, err)
		}
	}
	if hook.Timeout < 0 {
		return fmt.Errorf("hook %q has negative timeout", hook.Name)
	}
	return nil
}

// FindMatchingHooks returns all valid hooks whose pattern matches the palette name.
func (s *HookService) FindMatchingHooks(hooks []model.SaveHook, paletteName string) []model.SaveHook {
	var matching []model.SaveHook
	for _, hook := range hooks {
		if ValidateHook(hook) != nil {
			// Reported by doctor
			continue
		}
		if hook.PatternName == "" || regexp.MustCompile(hook.PatternName).MatchString(paletteName) {
			matching = append(matching, hook)
		}
	}
	return matching
}

// ExecuteHook runs a hook command with the palette name and hex values as arguments.
func (s *HookService) ExecuteHook(hook model.SaveHook, palette model.Palette) *HookResult {
	result := &HookResult{
		HookName: hook.Name,
	}

	timeout := hook.Timeout
	if timeout <= 0 {
		timeout = DefaultHookTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	args := make([]string, 0, len(palette.Colors)+1)
	args = append(args, palette.Name)
	for _, c := range palette.Colors {
		args = append(args, c.Hex)
	}

	cmd := exec.CommandContext(ctx, expandTilde(hook.Command), args...)
	cmd.Dir = s.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	result.Duration = time.Since(start)

	result.Stdout = strings.TrimSpace(stdout.String())
	result.Stderr = strings.TrimSpace(stderr.String())

	if err != nil {
		result.Error = err
		result.ExitCode = -1
		if ctx.Err() == context.DeadlineExceeded {
			result.Error = fmt.Errorf("hook timed out after %ds", timeout)
		} else if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
		}
		return result
	}

	result.Success = true
	return result
}

// RunSaveHooks runs every hook matching the palette, sequentially.
func (s *HookService) RunSaveHooks(hooks []model.SaveHook, palette model.Palette) []*HookResult {
	var results []*HookResult
	for _, hook := range s.FindMatchingHooks(hooks, palette.Name) {
		results = append(results, s.ExecuteHook(hook, palette))
	}
	return results
}

// expandTilde expands ~ to the user's home directory.
func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
