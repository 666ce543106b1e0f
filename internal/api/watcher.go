package api

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/amterp/swatch/internal/kv"
	"github.com/amterp/swatch/internal/store"
	"github.com/fsnotify/fsnotify"
)

// DebounceInterval coalesces bursts of events on the same file.
const DebounceInterval = 100 * time.Millisecond

// FileChangeType indicates what type of change occurred.
type FileChangeType string

const (
	FileChangeCreated  FileChangeType = "created"
	FileChangeModified FileChangeType = "modified"
	FileChangeDeleted  FileChangeType = "deleted"
)

// FileChangeKind indicates which piece of state changed.
type FileChangeKind string

const (
	FileChangeKindSaved    FileChangeKind = "saved_palettes"
	FileChangeKindCurrent  FileChangeKind = "current_palette"
	FileChangeKindDatabase FileChangeKind = "database"
	FileChangeKindUnknown  FileChangeKind = "unknown"
)

// FileChange represents a file system change notification.
type FileChange struct {
	Type FileChangeType `json:"type"`
	Kind FileChangeKind `json:"kind"`
	Path string         `json:"path"` // Relative to the data directory
}

// FileWatcherSubscriber receives file change notifications.
type FileWatcherSubscriber interface {
	OnFileChange(change FileChange)
}

// FileWatcher watches the data directory for changes and notifies subscribers.
// The directory is flat, so only the top level is watched.
type FileWatcher struct {
	watcher     *fsnotify.Watcher
	dataDir     string
	mu          sync.RWMutex
	subscribers []FileWatcherSubscriber
	debounce    map[string]*time.Timer
	debounceMu  sync.Mutex
	stopCh      chan struct{}
	stopped     bool // Once stopped, cannot restart
	running     bool
}

// NewFileWatcher creates a new file watcher for the data directory.
func NewFileWatcher(dataDir string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &FileWatcher{
		watcher:  watcher,
		dataDir:  dataDir,
		debounce: make(map[string]*time.Timer),
		stopCh:   make(chan struct{}),
	}, nil
}

// Subscribe adds a subscriber to receive file change notifications.
func (fw *FileWatcher) Subscribe(sub FileWatcherSubscriber) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.subscribers = append(fw.subscribers, sub)
}

// Unsubscribe removes a subscriber.
func (fw *FileWatcher) Unsubscribe(sub FileWatcherSubscriber) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	for i, s := range fw.subscribers {
		if s == sub {
			fw.subscribers = append(fw.subscribers[:i], fw.subscribers[i+1:]...)
			return
		}
	}
}

// Start begins watching the data directory.
func (fw *FileWatcher) Start() error {
	fw.mu.Lock()
	if fw.running {
		fw.mu.Unlock()
		return nil
	}
	if fw.stopped {
		fw.mu.Unlock()
		return fmt.Errorf("file watcher cannot be restarted after stop")
	}
	fw.running = true
	fw.mu.Unlock()

	if err := fw.watcher.Add(fw.dataDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", fw.dataDir, err)
	}

	go fw.run()
	return nil
}

// Stop stops watching for changes.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	if !fw.running || fw.stopped {
		fw.mu.Unlock()
		return nil
	}
	fw.running = false
	fw.stopped = true
	fw.mu.Unlock()

	// Cancel pending debounce timers so nothing fires after stop
	fw.debounceMu.Lock()
	for path, timer := range fw.debounce {
		timer.Stop()
		delete(fw.debounce, path)
	}
	fw.debounceMu.Unlock()

	close(fw.stopCh)
	return fw.watcher.Close()
}

func (fw *FileWatcher) run() {
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleEvent(event)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)

		case <-fw.stopCh:
			return
		}
	}
}

func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	// Skip temp files (the file store writes hidden temps) and editor backups
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return
	}

	fw.debounceMu.Lock()
	if timer, exists := fw.debounce[event.Name]; exists {
		timer.Stop()
	}
	fw.debounce[event.Name] = time.AfterFunc(DebounceInterval, func() {
		fw.emitChange(event)
		fw.debounceMu.Lock()
		delete(fw.debounce, event.Name)
		fw.debounceMu.Unlock()
	})
	fw.debounceMu.Unlock()
}

func (fw *FileWatcher) emitChange(event fsnotify.Event) {
	// Debounce timer may fire after Stop
	fw.mu.RLock()
	if fw.stopped {
		fw.mu.RUnlock()
		return
	}
	subs := make([]FileWatcherSubscriber, len(fw.subscribers))
	copy(subs, fw.subscribers)
	fw.mu.RUnlock()

	change := fw.classifyChange(event)
	if change.Kind == FileChangeKindUnknown {
		return
	}

	for _, sub := range subs {
		sub.OnFileChange(change)
	}
}

func (fw *FileWatcher) classifyChange(event fsnotify.Event) FileChange {
	relPath, err := filepath.Rel(fw.dataDir, event.Name)
	if err != nil || strings.Contains(relPath, string(filepath.Separator)) {
		return FileChange{Kind: FileChangeKindUnknown}
	}

	change := FileChange{Path: relPath}

	switch {
	case event.Op&fsnotify.Create != 0:
		change.Type = FileChangeCreated
	case event.Op&fsnotify.Write != 0:
		change.Type = FileChangeModified
	case event.Op&fsnotify.Remove != 0:
		change.Type = FileChangeDeleted
	case event.Op&fsnotify.Rename != 0:
		change.Type = FileChangeDeleted // Rename source is effectively deleted
	default:
		return FileChange{Kind: FileChangeKindUnknown}
	}

	switch relPath {
	case store.SavedPalettesKey + ".json":
		change.Kind = FileChangeKindSaved
	case store.CurrentPaletteKey + ".json":
		change.Kind = FileChangeKindCurrent
	case kv.SQLiteFileName, kv.SQLiteFileName + "-wal":
		change.Kind = FileChangeKindDatabase
	default:
		return FileChange{Kind: FileChangeKindUnknown}
	}
	return change
}
