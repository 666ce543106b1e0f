package cli

import (
	"encoding/json"
	"fmt"

	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/service"
)

// CurrentOutput wraps the current palette for JSON output.
type CurrentOutput struct {
	SessionID       string        `json:"session_id"`
	Colors          []model.Color `json:"colors"`
	LockedCount     int           `json:"locked_count"`
	UpdatedAtMillis int64         `json:"updated_at_millis"`
}

// NewCurrentOutput creates a CurrentOutput.
// Always returns an empty array (not null) when there are no colors.
func NewCurrentOutput(sessionID string, p model.Palette, updatedAt int64) CurrentOutput {
	return CurrentOutput{
		SessionID:       sessionID,
		Colors:          model.CloneColors(p.Colors),
		LockedCount:     p.LockedCount(),
		UpdatedAtMillis: updatedAt,
	}
}

// LockOutput reports the result of a lock toggle.
type LockOutput struct {
	Changed bool          `json:"changed"`
	Palette CurrentOutput `json:"palette"`
}

// NewLockOutput creates a LockOutput.
func NewLockOutput(changed bool, sessionID string, p model.Palette, updatedAt int64) LockOutput {
	return LockOutput{Changed: changed, Palette: NewCurrentOutput(sessionID, p, updatedAt)}
}

// savedJson is a saved palette with its position in the collection.
type savedJson struct {
	Index  int           `json:"index"`
	Name   string        `json:"name"`
	Colors []model.Color `json:"colors"`
}

func savedToJson(index int, p model.Palette) savedJson {
	return savedJson{Index: index, Name: p.Name, Colors: model.CloneColors(p.Colors)}
}

// SavedOutput wraps a single saved palette for JSON output.
type SavedOutput struct {
	Palette savedJson        `json:"palette"`
	Hooks   []hookResultJson `json:"hooks,omitempty"`
}

// NewSavedOutput creates a SavedOutput from a saved palette and any hook results.
func NewSavedOutput(index int, p model.Palette, hookResults []*service.HookResult) SavedOutput {
	output := SavedOutput{Palette: savedToJson(index, p)}
	if len(hookResults) > 0 {
		output.Hooks = make([]hookResultJson, len(hookResults))
		for i, r := range hookResults {
			output.Hooks[i] = hookResultToJson(r)
		}
	}
	return output
}

// hookResultJson is the JSON shape of a save hook run.
type hookResultJson struct {
	Name       string `json:"name"`
	Success    bool   `json:"success"`
	Stdout     string `json:"stdout,omitempty"`
	Stderr     string `json:"stderr,omitempty"`
	ExitCode   int    `json:"exit_code"`
	DurationMs int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

func hookResultToJson(r *service.HookResult) hookResultJson {
	result := hookResultJson{
		Name:       r.HookName,
		Success:    r.Success,
		Stdout:     r.Stdout,
		Stderr:     r.Stderr,
		ExitCode:   r.ExitCode,
		DurationMs: r.Duration.Milliseconds(),
	}
	if r.Error != nil {
		result.Error = r.Error.Error()
	}
	return result
}

// PalettesOutput wraps the saved collection for JSON output.
type PalettesOutput struct {
	Palettes []savedJson `json:"palettes"`
}

// NewPalettesOutput creates a PalettesOutput.
// Always returns an empty array (not null) when nothing is saved.
func NewPalettesOutput(palettes []model.Palette) PalettesOutput {
	result := make([]savedJson, 0, len(palettes))
	for i, p := range palettes {
		result = append(result, savedToJson(i, p))
	}
	return PalettesOutput{Palettes: result}
}

// DeleteOutput reports the result of a delete and the remaining collection.
type DeleteOutput struct {
	Deleted  bool        `json:"deleted"`
	Palettes []savedJson `json:"palettes"`
}

// NewDeleteOutput creates a DeleteOutput.
func NewDeleteOutput(deleted bool, remaining []model.Palette) DeleteOutput {
	return DeleteOutput{Deleted: deleted, Palettes: NewPalettesOutput(remaining).Palettes}
}

// ExportOutput describes a written export file.
type ExportOutput struct {
	Index  int    `json:"index"`
	Format string `json:"format"`
	Path   string `json:"path"`
}

// printJson marshals the value as indented JSON and prints it to stdout.
func printJson(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}

// warnJsonNotSupported prints a warning to stderr when --json is used on an unsupported command.
func warnJsonNotSupported(command string) {
	PrintWarning("--json is not supported for '%s' (flag ignored)", command)
}
