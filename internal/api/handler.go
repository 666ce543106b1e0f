package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/service"
)

// Broadcaster pushes palette state to connected clients.
type Broadcaster interface {
	Publish(event LiveEvent)
}

// Handler serves the palette API. All access to the palette service goes
// through mu, since the service itself is single-threaded.
type Handler struct {
	mu          sync.Mutex
	palettes    *service.PaletteService
	broadcaster Broadcaster
}

// NewHandler creates a new API handler.
func NewHandler(palettes *service.PaletteService) *Handler {
	return &Handler{palettes: palettes}
}

// SetBroadcaster sets where live events go after a mutation or reload.
func (h *Handler) SetBroadcaster(b Broadcaster) {
	h.mu.Lock()
	h.broadcaster = b
	h.mu.Unlock()
}

// OnFileChange implements FileWatcherSubscriber by re-reading state written
// by another process (e.g. the CLI) and pushing the result to clients.
func (h *Handler) OnFileChange(change FileChange) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.palettes.Reload()
	if h.broadcaster != nil {
		event := h.liveEvent(EventStoreChange)
		event.Change = &change
		h.broadcaster.Publish(event)
	}
}

// RegisterRoutes sets up all API routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /favicon.svg", h.GetFavicon)

	// Current palette routes
	mux.HandleFunc("GET /api/v1/palette", h.GetPalette)
	mux.HandleFunc("POST /api/v1/palette/regenerate", h.RegeneratePalette)
	mux.HandleFunc("POST /api/v1/palette/new", h.NewPalette)
	mux.HandleFunc("POST /api/v1/palette/slots/{index}/lock", h.ToggleLock)

	// Saved palette routes
	mux.HandleFunc("GET /api/v1/palettes", h.ListPalettes)
	mux.HandleFunc("POST /api/v1/palettes", h.SavePalette)
	mux.HandleFunc("GET /api/v1/palettes/{index}", h.GetSavedPalette)
	mux.HandleFunc("DELETE /api/v1/palettes/{index}", h.DeletePalette)

	// Static files (frontend)
	mux.Handle("/", h.StaticHandler())
}

// --- Response types ---

// CurrentResponse is the JSON form of the current palette.
type CurrentResponse struct {
	SessionID       string        `json:"session_id"`
	Colors          []model.Color `json:"colors"`
	LockedCount     int           `json:"locked_count"`
	UpdatedAtMillis int64         `json:"updated_at_millis"`
}

// SavedResponse is a saved palette with its index in the collection.
type SavedResponse struct {
	Index  int           `json:"index"`
	Name   string        `json:"name"`
	Colors []model.Color `json:"colors"`
}

// LockResponse reports whether a toggle changed anything.
type LockResponse struct {
	Changed bool            `json:"changed"`
	Palette CurrentResponse `json:"palette"`
}

// DeleteResponse reports whether a delete removed anything, plus what remains.
type DeleteResponse struct {
	Deleted  bool            `json:"deleted"`
	Palettes []SavedResponse `json:"palettes"`
}

func (h *Handler) currentResponse() CurrentResponse {
	p := h.palettes.Current()
	return CurrentResponse{
		SessionID:       h.palettes.SessionID(),
		Colors:          model.CloneColors(p.Colors),
		LockedCount:     p.LockedCount(),
		UpdatedAtMillis: h.palettes.UpdatedAtMillis(),
	}
}

func (h *Handler) savedResponses() []SavedResponse {
	saved := h.palettes.Saved()
	result := make([]SavedResponse, len(saved))
	for i, p := range saved {
		result[i] = toSavedResponse(i, p)
	}
	return result
}

func toSavedResponse(index int, p model.Palette) SavedResponse {
	return SavedResponse{Index: index, Name: p.Name, Colors: model.CloneColors(p.Colors)}
}

// --- Current palette handlers ---

// GetPalette returns the current palette.
func (h *Handler) GetPalette(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	JSON(w, http.StatusOK, h.currentResponse())
}

// RegeneratePalette replaces every unlocked color.
func (h *Handler) RegeneratePalette(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, err := h.palettes.Regenerate(); err != nil {
		Error(w, err)
		return
	}
	resp := h.currentResponse()
	h.notify()
	JSON(w, http.StatusOK, resp)
}

// NewPalette discards the current palette, locks included.
func (h *Handler) NewPalette(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, err := h.palettes.NewPalette(); err != nil {
		Error(w, err)
		return
	}
	resp := h.currentResponse()
	h.notify()
	JSON(w, http.StatusOK, resp)
}

// ToggleLock flips the lock on one slot. Out-of-range slots change nothing.
func (h *Handler) ToggleLock(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	changed, err := h.palettes.ToggleLock(index)
	if err != nil {
		Error(w, err)
		return
	}
	resp := h.currentResponse()
	if changed {
		h.notify()
	}
	JSON(w, http.StatusOK, LockResponse{Changed: changed, Palette: resp})
}

// --- Saved palette handlers ---

// ListPalettes returns the saved collection.
func (h *Handler) ListPalettes(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	JSON(w, http.StatusOK, map[string][]SavedResponse{"palettes": h.savedResponses()})
}

// SavePaletteRequest is the JSON body for saving the current palette.
type SavePaletteRequest struct {
	Name string `json:"name"`
}

// SavePalette snapshots the current palette. A missing body or blank name saves as "Untitled".
func (h *Handler) SavePalette(w http.ResponseWriter, r *http.Request) {
	var req SavePaletteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		BadRequest(w, "invalid JSON body")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	p, index, err := h.palettes.Save(req.Name)
	if err != nil {
		Error(w, err)
		return
	}
	h.notify()
	JSON(w, http.StatusCreated, map[string]SavedResponse{"palette": toSavedResponse(index, p)})
}

// GetSavedPalette returns one saved palette.
func (h *Handler) GetSavedPalette(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	p, err := h.palettes.Get(index)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]SavedResponse{"palette": toSavedResponse(index, p)})
}

// DeletePalette removes a saved palette. Out-of-range indices change nothing.
func (h *Handler) DeletePalette(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	deleted, err := h.palettes.Delete(index)
	if err != nil {
		Error(w, err)
		return
	}
	resp := DeleteResponse{Deleted: deleted, Palettes: h.savedResponses()}
	if deleted {
		h.notify()
	}
	JSON(w, http.StatusOK, resp)
}

// notify must be called with mu held.
func (h *Handler) notify() {
	if h.broadcaster != nil {
		h.broadcaster.Publish(h.liveEvent(EventPaletteChange))
	}
}

// liveEvent snapshots the current and saved palettes. Must be called with mu held.
func (h *Handler) liveEvent(eventType string) LiveEvent {
	current := h.currentResponse()
	return LiveEvent{
		Type:    eventType,
		Current: &current,
		Saved:   h.savedResponses(),
	}
}

// Hello returns the event a newly connected client starts from.
func (h *Handler) Hello() LiveEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.liveEvent(EventHello)
}

// pathIndex parses the {index} path value, writing a 400 if it isn't an integer.
func pathIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.PathValue("index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		BadRequest(w, "index must be an integer: "+raw)
		return 0, false
	}
	return index, true
}
