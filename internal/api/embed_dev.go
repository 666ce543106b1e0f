//go:build dev

package api

import (
	"net/http"
)

// StaticHandler serves the frontend straight from disk so edits show up on reload.
func (h *Handler) StaticHandler() http.Handler {
	return http.FileServer(http.Dir("internal/api/dist"))
}
