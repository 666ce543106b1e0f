package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kanerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/util"
)

// ExportService renders saved palettes to files.
type ExportService struct {
	palettes *PaletteService
}

// NewExportService creates an export service reading from the given palette service.
func NewExportService(palettes *PaletteService) *ExportService {
	return &ExportService{palettes: palettes}
}

// Export writes the saved palette at index into dir and returns the written path.
func (s *ExportService) Export(index int, format, dir string) (string, error) {
	if !model.ValidExportFormat(format) {
		return "", kanerr.UnknownExportFormat(format)
	}

	p, err := s.palettes.Get(index)
	if err != nil {
		return "", err
	}

	content, err := Render(p, format)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, ExportFileName(p, index, format))
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}

// ExportFileName derives a file name from the palette name, falling back to
// palette-<index> when the name has no usable characters.
func ExportFileName(p model.Palette, index int, format string) string {
	base := util.Slugify(p.Name)
	if base == "" {
		base = fmt.Sprintf("palette-%d", index)
	}
	return base + "." + format
}

// Render formats a palette as css, json or txt.
func Render(p model.Palette, format string) (string, error) {
	switch format {
	case model.ExportCSS:
		return renderCSS(p), nil
	case model.ExportJSON:
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal palette: %w", err)
		}
		return string(data) + "\n", nil
	case model.ExportText:
		return strings.Join(p.Hexes(), "\n") + "\n", nil
	default:
		return "", kanerr.UnknownExportFormat(format)
	}
}

// renderCSS emits one custom property per slot, numbered from 1.
func renderCSS(p model.Palette) string {
	prefix := util.Slugify(p.Name)
	if prefix == "" {
		prefix = "palette"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "/* %s */\n:root {\n", strings.ReplaceAll(p.Name, "*/", "* /"))
	for i, c := range p.Colors {
		fmt.Fprintf(&b, "  --%s-%d: %s;\n", prefix, i+1, c.Hex)
	}
	b.WriteString("}\n")
	return b.String()
}
