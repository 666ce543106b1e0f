package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/amterp/swatch/internal/model"
	"github.com/gorilla/websocket"
)

func newTestHub(t *testing.T, hello func() LiveEvent) (*LiveHub, string) {
	t.Helper()
	hub := NewLiveHub(hello)
	ts := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(ts.Close)
	return hub, "ws" + strings.TrimPrefix(ts.URL, "http")
}

func dialHub(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) LiveEvent {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read event: %v", err)
	}
	var event LiveEvent
	if err := json.Unmarshal(data, &event); err != nil {
		t.Fatalf("Failed to unmarshal event: %v", err)
	}
	return event
}

func waitForClients(t *testing.T, hub *LiveHub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("Expected %d clients, got %d", want, hub.ClientCount())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestLiveHub_HelloCarriesState(t *testing.T) {
	current := CurrentResponse{SessionID: "s1", Colors: []model.Color{{Hex: "#0a1f33", Locked: true}}, LockedCount: 1}
	_, url := newTestHub(t, func() LiveEvent {
		return LiveEvent{Type: EventHello, Current: &current, Saved: []SavedResponse{{Index: 0, Name: "Dusk"}}}
	})

	event := readEvent(t, dialHub(t, url))

	if event.Type != EventHello {
		t.Fatalf("Type = %q, want %q", event.Type, EventHello)
	}
	if event.Current == nil || event.Current.SessionID != "s1" || event.Current.LockedCount != 1 {
		t.Errorf("Unexpected current palette: %+v", event.Current)
	}
	if len(event.Saved) != 1 || event.Saved[0].Name != "Dusk" {
		t.Errorf("Unexpected saved palettes: %+v", event.Saved)
	}
}

func TestLiveHub_PublishReachesEveryClient(t *testing.T) {
	hub, url := newTestHub(t, nil)

	a := dialHub(t, url)
	b := dialHub(t, url)
	waitForClients(t, hub, 2)

	hub.Publish(LiveEvent{Type: EventPaletteChange, Saved: []SavedResponse{}})

	for name, conn := range map[string]*websocket.Conn{"a": a, "b": b} {
		if event := readEvent(t, conn); event.Type != EventPaletteChange {
			t.Errorf("Client %s got %q, want %q", name, event.Type, EventPaletteChange)
		}
	}
}

func TestLiveHub_StoreChangeIncludesFile(t *testing.T) {
	hub, url := newTestHub(t, nil)
	conn := dialHub(t, url)
	waitForClients(t, hub, 1)

	change := FileChange{Type: FileChangeModified, Kind: FileChangeKindSaved, Path: "savedPalettes.json"}
	hub.Publish(LiveEvent{Type: EventStoreChange, Saved: []SavedResponse{}, Change: &change})

	event := readEvent(t, conn)
	if event.Type != EventStoreChange {
		t.Fatalf("Type = %q, want %q", event.Type, EventStoreChange)
	}
	if event.Change == nil || *event.Change != change {
		t.Errorf("Change = %+v, want %+v", event.Change, change)
	}
}

func TestLiveHub_SavedIsNeverNull(t *testing.T) {
	data, err := json.Marshal(LiveEvent{Type: EventPaletteChange, Saved: []SavedResponse{}})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"saved":[]`) {
		t.Errorf("Expected empty saved array, got %s", data)
	}
	if strings.Contains(string(data), `"change"`) {
		t.Errorf("palette_change should omit change, got %s", data)
	}
}

func TestLiveHub_DisconnectRemovesClient(t *testing.T) {
	hub, url := newTestHub(t, nil)

	conn := dialHub(t, url)
	waitForClients(t, hub, 1)

	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()
	waitForClients(t, hub, 0)

	// Publishing with nobody connected is a no-op.
	hub.Publish(LiveEvent{Type: EventPaletteChange})
}
