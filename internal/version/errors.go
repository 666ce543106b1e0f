package version

import (
	"fmt"
)

// SchemaVersionError indicates a schema version problem while reading config.
type SchemaVersionError struct {
	FilePath    string // Path to the problematic file
	Found       string // What was found (e.g., "missing", "global/2")
	Expected    string // What was expected (e.g., "global/1")
	MinRequired string // Minimum swatch version required (if upgrade needed)
}

func (e *SchemaVersionError) Error() string {
	if e.MinRequired != "" {
		return fmt.Sprintf(
			"global config schema %s requires swatch >= %s (file: %s, supports up to: %s)",
			e.Found, e.MinRequired, e.FilePath, e.Expected,
		)
	}
	if e.Found == "missing" {
		return fmt.Sprintf(
			"global config has no schema version (file: %s). Add swatch_schema = %q.",
			e.FilePath, e.Expected,
		)
	}
	return fmt.Sprintf(
		"global config has invalid schema version: found %s, expected %s (file: %s)",
		e.Found, e.Expected, e.FilePath,
	)
}

// MissingGlobalSchema creates an error for a global config missing swatch_schema.
func MissingGlobalSchema(path string) error {
	return &SchemaVersionError{
		FilePath: path,
		Found:    "missing",
		Expected: CurrentGlobalSchema(),
	}
}

// InvalidGlobalSchema creates an error for a global config with unsupported schema.
func InvalidGlobalSchema(path, found string) error {
	e := &SchemaVersionError{
		FilePath: path,
		Found:    found,
		Expected: CurrentGlobalSchema(),
	}
	// Check if it's a future version
	if v, err := ParseGlobalVersion(found); err == nil && v > CurrentGlobalVersion {
		if minVersion, ok := MinSwatchVersion[found]; ok {
			e.MinRequired = minVersion
		} else {
			e.MinRequired = "a newer version"
		}
	}
	return e
}
