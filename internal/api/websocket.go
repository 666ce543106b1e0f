package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Live event types.
const (
	EventHello         = "hello"          // sent once on connect
	EventPaletteChange = "palette_change" // an API request changed the palette or the collection
	EventStoreChange   = "store_change"   // another process wrote to the data directory
)

// writeWait bounds a single frame write so one stalled tab can't hold up the API.
const writeWait = 2 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Served on localhost only
	},
}

// LiveEvent is one frame pushed to browser tabs. Every event carries the full
// palette state, so clients render it directly instead of refetching.
type LiveEvent struct {
	Type    string           `json:"type"`
	Current *CurrentResponse `json:"current,omitempty"`
	Saved   []SavedResponse  `json:"saved"`
	Change  *FileChange      `json:"change,omitempty"` // store_change only
}

// LiveHub fans live events out to every connected tab.
type LiveHub struct {
	mu    sync.Mutex
	conns map[*liveConn]struct{}
	hello func() LiveEvent
}

// liveConn serialises writes to one socket; gorilla allows one writer at a time.
type liveConn struct {
	mu sync.Mutex
	ws *websocket.Conn
}

// NewLiveHub creates a hub. hello builds the first event each new client receives.
func NewLiveHub(hello func() LiveEvent) *LiveHub {
	return &LiveHub{
		conns: make(map[*liveConn]struct{}),
		hello: hello,
	}
}

// Publish implements Broadcaster. Clients whose write fails are dropped.
func (h *LiveHub) Publish(event LiveEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event.Type, err)
		return
	}

	h.mu.Lock()
	conns := make([]*liveConn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		if err := c.write(data); err != nil {
			h.drop(c)
		}
	}
}

// ServeWS upgrades the request, sends the hello event, then blocks reading
// until the client goes away. Inbound frames are ignored.
func (h *LiveHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	c := &liveConn{ws: ws}
	defer h.drop(c)

	var hello []byte
	if h.hello != nil {
		if hello, err = json.Marshal(h.hello()); err != nil {
			log.Printf("Failed to marshal hello event: %v", err)
			return
		}
	}

	// Hold the write lock across registration so a concurrent Publish
	// can't reach this client before the hello frame.
	c.mu.Lock()
	h.mu.Lock()
	h.conns[c] = struct{}{}
	h.mu.Unlock()
	if hello != nil {
		ws.SetWriteDeadline(time.Now().Add(writeWait))
		err = ws.WriteMessage(websocket.TextMessage, hello)
	}
	c.mu.Unlock()
	if err != nil {
		return
	}

	ws.SetReadLimit(512)
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *LiveHub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *LiveHub) drop(c *liveConn) {
	h.mu.Lock()
	delete(h.conns, c)
	h.mu.Unlock()
	c.ws.Close()
}

func (c *liveConn) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(websocket.TextMessage, data)
}
