package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Current schema versions - bump these when making breaking changes.
//
// CHECKLIST when bumping a version:
//  1. Update the constant below
//  2. Add entry to MinSwatchVersion map (tested by TestMinSwatchVersionCompleteness)
//  3. Teach the global store to read the previous version
const (
	CurrentGlobalVersion = 1
)

// GlobalSchemaPrefix prefixes the schema stamp in config.toml.
const GlobalSchemaPrefix = "global/"

// MinSwatchVersion maps schema identifiers to the minimum swatch version required.
// Used to provide helpful upgrade messages when encountering newer schemas.
var MinSwatchVersion = map[string]string{
	"global/1": "0.1.0",
}

// FormatGlobalSchema creates a global schema string from a version number.
// Example: FormatGlobalSchema(1) returns "global/1"
func FormatGlobalSchema(v int) string {
	return fmt.Sprintf("%s%d", GlobalSchemaPrefix, v)
}

// ParseGlobalVersion extracts the version number from a global schema string.
// Returns an error if the format is invalid.
func ParseGlobalVersion(schema string) (int, error) {
	if !strings.HasPrefix(schema, GlobalSchemaPrefix) {
		return 0, fmt.Errorf("invalid global schema format: %q (expected %sN)", schema, GlobalSchemaPrefix)
	}
	versionStr := strings.TrimPrefix(schema, GlobalSchemaPrefix)
	v, err := strconv.Atoi(versionStr)
	if err != nil {
		return 0, fmt.Errorf("invalid global schema version: %q", versionStr)
	}
	if v < 1 {
		return 0, fmt.Errorf("invalid global schema version: %d (must be >= 1)", v)
	}
	return v, nil
}

// CurrentGlobalSchema returns the current global schema string.
func CurrentGlobalSchema() string {
	return FormatGlobalSchema(CurrentGlobalVersion)
}
