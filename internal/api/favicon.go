package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/amterp/swatch/internal/model"
)

// GenerateFaviconSVG draws the colors as equal vertical stripes in a rounded square.
func GenerateFaviconSVG(colors []model.Color) string {
	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 32 32">`)
	b.WriteString(`<clipPath id="r"><rect width="32" height="32" rx="6"/></clipPath><g clip-path="url(#r)">`)

	if len(colors) == 0 {
		b.WriteString(`<rect width="32" height="32" fill="#6b7280"/>`)
	}
	for i, c := range colors {
		hex := c.Hex
		if !model.IsValidHex(hex) {
			hex = "#6b7280"
		}
		x0 := 32 * i / len(colors)
		x1 := 32 * (i + 1) / len(colors)
		fmt.Fprintf(&b, `<rect x="%d" width="%d" height="32" fill="%s"/>`, x0, x1-x0, hex)
	}

	b.WriteString(`</g></svg>`)
	return b.String()
}

// GetFavicon serves a favicon built from the current palette.
func (h *Handler) GetFavicon(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	colors := h.palettes.Current().Colors
	h.mu.Unlock()

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write([]byte(GenerateFaviconSVG(colors)))
}
