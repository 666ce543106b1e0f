package model

// Storage backends for the key-value layer.
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

// Export formats.
const (
	ExportCSS  = "css"
	ExportJSON = "json"
	ExportText = "txt"
)

// GlobalConfig represents the user's swatch configuration.
// Stored at ~/.config/swatch/config.toml
// Schema changes require a version bump; see internal/version/version.go.
type GlobalConfig struct {
	SwatchSchema string     `toml:"swatch_schema"`
	DataDir      string     `toml:"data_dir,omitempty"`      // Empty means the config directory
	Storage      string     `toml:"storage,omitempty"`       // "file" or "sqlite"
	ExportFormat string     `toml:"export_format,omitempty"` // Default for `swatch export`
	SaveHooks    []SaveHook `toml:"save_hooks,omitempty"`
}

// SaveHook is a command run after a palette is saved from the CLI.
// The command receives the palette name followed by each hex value.
type SaveHook struct {
	Name        string `toml:"name" json:"name"`
	PatternName string `toml:"pattern_name,omitempty" json:"pattern_name,omitempty"` // Regex on the palette name; empty matches all
	Command     string `toml:"command" json:"command"`
	Timeout     int    `toml:"timeout,omitempty" json:"timeout,omitempty"` // Seconds; 0 uses the default
}

// StorageOrDefault returns the configured backend, defaulting to file storage.
func (g *GlobalConfig) StorageOrDefault() string {
	if g == nil || g.Storage == "" {
		return StorageFile
	}
	return g.Storage
}

// ExportFormatOrDefault returns the configured export format, defaulting to CSS.
func (g *GlobalConfig) ExportFormatOrDefault() string {
	if g == nil || g.ExportFormat == "" {
		return ExportCSS
	}
	return g.ExportFormat
}

// ValidStorage reports whether s names a supported storage backend.
func ValidStorage(s string) bool {
	return s == StorageFile || s == StorageSQLite
}

// ValidExportFormat reports whether s names a supported export format.
func ValidExportFormat(s string) bool {
	switch s {
	case ExportCSS, ExportJSON, ExportText:
		return true
	}
	return false
}
