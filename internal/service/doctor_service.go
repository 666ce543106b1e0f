package service

import (
	"fmt"

	"github.com/amterp/swatch/internal/engine"
	"github.com/amterp/swatch/internal/id"
	"github.com/amterp/swatch/internal/kv"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/store"
	"github.com/amterp/swatch/internal/util"
)

// IssueSeverity indicates how critical an issue is.
type IssueSeverity string

const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
)

// Issue codes for diagnostic results.
const (
	// Stored data that load silently ignores (errors)
	CodeUnreadableStore        = "UNREADABLE_STORE"
	CodeMalformedSavedPalettes = "MALFORMED_SAVED_PALETTES"
	CodeMalformedSession       = "MALFORMED_SESSION"

	// Data that loads but is unusual (warnings)
	CodeEmptyPalette   = "EMPTY_PALETTE"
	CodeUnusualSize    = "UNUSUAL_PALETTE_SIZE"
	CodeMissingSession = "MISSING_SESSION"

	// Global config (warnings)
	CodeMalformedGlobalConfig = "MALFORMED_GLOBAL_CONFIG"
	CodeInvalidSaveHook       = "INVALID_SAVE_HOOK"
)

// BackupKeySuffix is appended to a key when its malformed value is preserved before a fix.
const BackupKeySuffix = "Backup"

// Issue represents a single diagnostic finding.
type Issue struct {
	Severity  IssueSeverity `json:"severity"`
	Code      string        `json:"code"`
	Key       string        `json:"key,omitempty"`
	Index     *int          `json:"index,omitempty"`
	Message   string        `json:"message"`
	Fixable   bool          `json:"fixable"`
	FixAction string        `json:"fix_action,omitempty"`
	FixError  string        `json:"fix_error,omitempty"` // Populated if fix was attempted but failed
}

// StoreDiagnostic summarizes what is in the store.
type StoreDiagnostic struct {
	Backend        string `json:"backend"`
	DataDir        string `json:"data_dir"`
	SavedPalettes  int    `json:"saved_palettes"`
	SessionPresent bool   `json:"session_present"`
}

// ReportSummary summarizes the diagnostic results.
type ReportSummary struct {
	Errors    int `json:"errors"`
	Warnings  int `json:"warnings"`
	Fixed     int `json:"fixed"`
	FixFailed int `json:"fix_failed,omitempty"`
}

// DiagnosticReport contains all diagnostic results.
type DiagnosticReport struct {
	Store   StoreDiagnostic `json:"store"`
	Issues  []Issue         `json:"issues"`
	Summary ReportSummary   `json:"summary"`
}

// HasErrors returns true if there are any error-level issues.
func (r *DiagnosticReport) HasErrors() bool {
	return r.Summary.Errors > 0
}

// DoctorService explains what the fail-closed loaders would throw away.
type DoctorService struct {
	kv        kv.Store
	engine    *engine.Engine
	backend   string
	dataDir   string
	configErr error
	saveHooks []model.SaveHook
}

// NewDoctorService creates a new diagnostic service.
// configErr is the error, if any, from loading the global config.
func NewDoctorService(s kv.Store, eng *engine.Engine, backend, dataDir string, configErr error) *DoctorService {
	return &DoctorService{kv: s, engine: eng, backend: backend, dataDir: dataDir, configErr: configErr}
}

// WithSaveHooks makes Diagnose also check the configured save hooks.
func (s *DoctorService) WithSaveHooks(hooks []model.SaveHook) *DoctorService {
	s.saveHooks = hooks
	return s
}

// Diagnose inspects the raw stored documents.
func (s *DoctorService) Diagnose() *DiagnosticReport {
	report := &DiagnosticReport{
		Store:  StoreDiagnostic{Backend: s.backend, DataDir: s.dataDir},
		Issues: []Issue{},
	}

	if s.configErr != nil {
		report.Issues = append(report.Issues, Issue{
			Severity: SeverityWarning,
			Code:     CodeMalformedGlobalConfig,
			Message:  fmt.Sprintf("global config ignored: %v", s.configErr),
		})
	}

	for i, hook := range s.saveHooks {
		if err := ValidateHook(hook); err != nil {
			index := i
			report.Issues = append(report.Issues, Issue{
				Severity: SeverityWarning,
				Code:     CodeInvalidSaveHook,
				Index:    &index,
				Message:  fmt.Sprintf("save hook skipped: %v", err),
			})
		}
	}

	s.checkSavedPalettes(report)
	s.checkSession(report)

	summarize(report)
	return report
}

func (s *DoctorService) checkSavedPalettes(report *DiagnosticReport) {
	raw, ok, err := s.kv.Get(store.SavedPalettesKey)
	if err != nil {
		report.Issues = append(report.Issues, Issue{
			Severity: SeverityError,
			Code:     CodeUnreadableStore,
			Key:      store.SavedPalettesKey,
			Message:  fmt.Sprintf("cannot read saved palettes: %v", err),
		})
		return
	}
	if !ok {
		return
	}

	palettes, err := store.DecodePalettes(raw)
	if err != nil {
		report.Issues = append(report.Issues, Issue{
			Severity:  SeverityError,
			Code:      CodeMalformedSavedPalettes,
			Key:       store.SavedPalettesKey,
			Message:   fmt.Sprintf("saved palettes are ignored on load: %v", err),
			Fixable:   true,
			FixAction: fmt.Sprintf("back up to %q and reset to an empty list", store.SavedPalettesKey+BackupKeySuffix),
		})
		return
	}

	report.Store.SavedPalettes = len(palettes)
	for i, p := range palettes {
		idx := i
		switch {
		case len(p.Colors) == 0:
			report.Issues = append(report.Issues, Issue{
				Severity: SeverityWarning,
				Code:     CodeEmptyPalette,
				Key:      store.SavedPalettesKey,
				Index:    &idx,
				Message:  fmt.Sprintf("palette %d (%q) has no colors", i, p.Name),
			})
		case len(p.Colors) != model.PaletteSize:
			report.Issues = append(report.Issues, Issue{
				Severity: SeverityWarning,
				Code:     CodeUnusualSize,
				Key:      store.SavedPalettesKey,
				Index:    &idx,
				Message:  fmt.Sprintf("palette %d (%q) has %d colors, expected %d", i, p.Name, len(p.Colors), model.PaletteSize),
			})
		}
	}
}

func (s *DoctorService) checkSession(report *DiagnosticReport) {
	raw, ok, err := s.kv.Get(store.CurrentPaletteKey)
	if err != nil {
		report.Issues = append(report.Issues, Issue{
			Severity: SeverityError,
			Code:     CodeUnreadableStore,
			Key:      store.CurrentPaletteKey,
			Message:  fmt.Sprintf("cannot read current palette: %v", err),
		})
		return
	}
	if !ok {
		report.Issues = append(report.Issues, Issue{
			Severity: SeverityWarning,
			Code:     CodeMissingSession,
			Key:      store.CurrentPaletteKey,
			Message:  "no current palette stored; a fresh one is generated on next run",
		})
		return
	}

	if _, err := store.DecodeSession(raw); err != nil {
		report.Issues = append(report.Issues, Issue{
			Severity:  SeverityError,
			Code:      CodeMalformedSession,
			Key:       store.CurrentPaletteKey,
			Message:   fmt.Sprintf("current palette is ignored on load: %v", err),
			Fixable:   true,
			FixAction: fmt.Sprintf("back up to %q and start a fresh palette", store.CurrentPaletteKey+BackupKeySuffix),
		})
		return
	}
	report.Store.SessionPresent = true
}

// Fix applies the fixable actions and returns a fresh report with fix counts.
// Malformed values are copied to a backup key before being replaced.
func (s *DoctorService) Fix(report *DiagnosticReport) *DiagnosticReport {
	fixed, failed := 0, 0
	fixErrors := make(map[string]string)

	for _, issue := range report.Issues {
		if !issue.Fixable {
			continue
		}
		if err := s.applyFix(issue); err != nil {
			fixErrors[issue.Code+"/"+issue.Key] = err.Error()
			failed++
			continue
		}
		fixed++
	}

	// Issues whose fix failed are still detected; annotate them
	after := s.Diagnose()
	for i := range after.Issues {
		if msg, ok := fixErrors[after.Issues[i].Code+"/"+after.Issues[i].Key]; ok {
			after.Issues[i].FixError = msg
		}
	}
	after.Summary.Fixed = fixed
	after.Summary.FixFailed = failed
	return after
}

func (s *DoctorService) applyFix(issue Issue) error {
	raw, _, err := s.kv.Get(issue.Key)
	if err != nil {
		return err
	}
	if err := s.kv.Set(issue.Key+BackupKeySuffix, raw); err != nil {
		return fmt.Errorf("failed to back up %s: %w", issue.Key, err)
	}

	switch issue.Code {
	case CodeMalformedSavedPalettes:
		return s.kv.Set(store.SavedPalettesKey, "[]")
	case CodeMalformedSession:
		sessions := store.NewSessionStore(s.kv)
		p := s.engine.CreateInitialPalette()
		return sessions.SaveSession(&model.Session{
			ID:              id.NewSessionID(),
			Colors:          p.Colors,
			UpdatedAtMillis: util.NowMillis(),
		})
	default:
		return fmt.Errorf("no fix for %s", issue.Code)
	}
}

func summarize(report *DiagnosticReport) {
	report.Summary.Errors = 0
	report.Summary.Warnings = 0
	for _, issue := range report.Issues {
		if issue.Severity == SeverityError {
			report.Summary.Errors++
		} else {
			report.Summary.Warnings++
		}
	}
}
