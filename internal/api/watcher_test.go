package api

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/amterp/swatch/internal/kv"
	"github.com/amterp/swatch/internal/store"
	"github.com/fsnotify/fsnotify"
)

func TestClassifyChange_Known(t *testing.T) {
	fw := &FileWatcher{dataDir: "/data"}

	tests := []struct {
		name     string
		path     string
		op       fsnotify.Op
		wantKind FileChangeKind
		wantType FileChangeType
	}{
		{
			name:     "saved palettes rewritten",
			path:     "/data/savedPalettes.json",
			op:       fsnotify.Create,
			wantKind: FileChangeKindSaved,
			wantType: FileChangeCreated,
		},
		{
			name:     "saved palettes modified",
			path:     "/data/savedPalettes.json",
			op:       fsnotify.Write,
			wantKind: FileChangeKindSaved,
			wantType: FileChangeModified,
		},
		{
			name:     "current palette removed",
			path:     "/data/currentPalette.json",
			op:       fsnotify.Remove,
			wantKind: FileChangeKindCurrent,
			wantType: FileChangeDeleted,
		},
		{
			name:     "current palette renamed (treated as deleted)",
			path:     "/data/currentPalette.json",
			op:       fsnotify.Rename,
			wantKind: FileChangeKindCurrent,
			wantType: FileChangeDeleted,
		},
		{
			name:     "database written",
			path:     "/data/swatch.db",
			op:       fsnotify.Write,
			wantKind: FileChangeKindDatabase,
			wantType: FileChangeModified,
		},
		{
			name:     "database wal written",
			path:     "/data/swatch.db-wal",
			op:       fsnotify.Write,
			wantKind: FileChangeKindDatabase,
			wantType: FileChangeModified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := fsnotify.Event{Name: tt.path, Op: tt.op}
			change := fw.classifyChange(event)

			if change.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", change.Kind, tt.wantKind)
			}
			if change.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", change.Type, tt.wantType)
			}
			if change.Path != filepath.Base(tt.path) {
				t.Errorf("Path = %q, want %q", change.Path, filepath.Base(tt.path))
			}
		})
	}
}

func TestClassifyChange_Unknown(t *testing.T) {
	fw := &FileWatcher{dataDir: "/data"}

	tests := []struct {
		name string
		path string
		op   fsnotify.Op
	}{
		{"random file", "/data/random.txt", fsnotify.Write},
		{"config file", "/data/config.toml", fsnotify.Write},
		{"nested", "/data/sub/savedPalettes.json", fsnotify.Write},
		{"outside data dir", "/elsewhere/savedPalettes.json", fsnotify.Write},
		{"chmod only", "/data/savedPalettes.json", fsnotify.Chmod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := fsnotify.Event{Name: tt.path, Op: tt.op}
			change := fw.classifyChange(event)

			if change.Kind != FileChangeKindUnknown {
				t.Errorf("Kind = %q, want %q", change.Kind, FileChangeKindUnknown)
			}
		})
	}
}

func TestClassifyChange_CrossPlatform(t *testing.T) {
	dataDir := filepath.Join("/home", "me", ".config", "swatch")
	fw := &FileWatcher{dataDir: dataDir}

	event := fsnotify.Event{Name: filepath.Join(dataDir, store.SavedPalettesKey+".json"), Op: fsnotify.Create}
	if change := fw.classifyChange(event); change.Kind != FileChangeKindSaved {
		t.Errorf("Kind = %q, want %q", change.Kind, FileChangeKindSaved)
	}
}

// syncSubscriber collects changes from the watcher goroutine.
type syncSubscriber struct {
	mu      sync.Mutex
	changes []FileChange
}

func (s *syncSubscriber) OnFileChange(change FileChange) {
	s.mu.Lock()
	s.changes = append(s.changes, change)
	s.mu.Unlock()
}

func (s *syncSubscriber) snapshot() []FileChange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]FileChange(nil), s.changes...)
}

func TestFileWatcher_EmitsForFileStoreWrites(t *testing.T) {
	dir := t.TempDir()

	fw, err := NewFileWatcher(dir)
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	sub := &syncSubscriber{}
	fw.Subscribe(sub)
	if err := fw.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer fw.Stop()

	// Several quick writes should be coalesced; the hidden temp file is ignored.
	s := kv.NewFileStore(dir)
	for i := 0; i < 3; i++ {
		if err := s.Set(store.SavedPalettesKey, "[]"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if changes := sub.snapshot(); len(changes) > 0 {
			for _, c := range changes {
				if c.Kind != FileChangeKindSaved {
					t.Errorf("Unexpected change %+v", c)
				}
			}
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("No change emitted for savedPalettes.json")
}

// mockSubscriber implements FileWatcherSubscriber for testing
type mockSubscriber struct {
	changes []FileChange
}

func (m *mockSubscriber) OnFileChange(change FileChange) {
	m.changes = append(m.changes, change)
}

func TestFileWatcher_Subscribe(t *testing.T) {
	fw := &FileWatcher{
		subscribers: []FileWatcherSubscriber{},
	}

	sub1 := &mockSubscriber{}
	sub2 := &mockSubscriber{}

	fw.Subscribe(sub1)
	fw.Subscribe(sub2)

	if len(fw.subscribers) != 2 {
		t.Errorf("Expected 2 subscribers, got %d", len(fw.subscribers))
	}
}

func TestFileWatcher_Unsubscribe(t *testing.T) {
	sub1 := &mockSubscriber{}
	sub2 := &mockSubscriber{}

	fw := &FileWatcher{
		subscribers: []FileWatcherSubscriber{sub1, sub2},
	}

	fw.Unsubscribe(sub1)

	if len(fw.subscribers) != 1 {
		t.Errorf("Expected 1 subscriber, got %d", len(fw.subscribers))
	}
	if fw.subscribers[0] != sub2 {
		t.Error("Wrong subscriber remained")
	}
}

func TestFileWatcher_StoppedPreventsRestart(t *testing.T) {
	fw := &FileWatcher{
		stopped: true,
	}

	err := fw.Start()
	if err == nil {
		t.Error("Expected error when starting stopped watcher")
	}
}
