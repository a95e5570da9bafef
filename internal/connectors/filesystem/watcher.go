package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/acronyms/internal/core/domain"
	"github.com/custodia-labs/acronyms/internal/logger"
)

// debounceInterval collapses the bursts of writes editors and downloads
// produce for one file.
const debounceInterval = 200 * time.Millisecond

// EventType classifies a file change.
type EventType string

// Event types.
const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

// Event is a change to a document file under a watched directory.
type Event struct {
	Type     EventType
	Path     string
	MIMEType string
}

// Watcher reports changes to readable documents under a directory tree.
type Watcher struct {
	root string

	mu      sync.Mutex
	fw      *fsnotify.Watcher
	stopped bool
}

// NewWatcher creates a watcher for root.
func NewWatcher(root string) *Watcher {
	return &Watcher{root: root}
}

// Watch starts monitoring the directory tree. The returned channel is closed
// when ctx is cancelled or Close is called.
func (w *Watcher) Watch(ctx context.Context) (<-chan Event, error) {
	absRoot, err := filepath.Abs(w.root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, domain.ErrInvalidInput
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	err = filepath.WalkDir(absRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != absRoot && isHidden(d.Name()) {
				return filepath.SkipDir
			}
			return fw.Add(path)
		}
		return nil
	})
	if err != nil {
		fw.Close()
		return nil, err
	}

	w.mu.Lock()
	w.root = absRoot
	w.fw = fw
	w.stopped = false
	w.mu.Unlock()

	events := make(chan Event)
	go w.loop(ctx, fw, events)
	return events, nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, out chan<- Event) {
	defer close(out)
	defer w.Close()

	last := make(map[string]time.Time)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !isHidden(info.Name()) {
					if err := fw.Add(event.Name); err != nil {
						logger.Warn("watch %s: %v", event.Name, err)
					}
					continue
				}
			}

			change := w.handleFsEvent(event)
			if change == nil {
				continue
			}

			now := time.Now()
			if prev, seen := last[change.Path]; seen && change.Type != EventDeleted &&
				now.Sub(prev) < debounceInterval {
				continue
			}
			last[change.Path] = now

			select {
			case out <- *change:
			case <-ctx.Done():
				return
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher error: %v", err)
		}
	}
}

// Close stops watching. Safe to call multiple times.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped || w.fw == nil {
		return nil
	}
	w.stopped = true
	return w.fw.Close()
}

// handleFsEvent converts an fsnotify event to a document change.
// Returns nil for events that are not about a supported document file.
func (w *Watcher) handleFsEvent(event fsnotify.Event) *Event {
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		rel = event.Name
	}
	if isHidden(rel) {
		return nil
	}
	mimeType := DetectMIMEType(event.Name)
	if mimeType == "" {
		return nil
	}

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return &Event{Type: EventDeleted, Path: event.Name, MIMEType: mimeType}
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		info, err := os.Stat(event.Name)
		if err != nil || info.IsDir() {
			return nil
		}
		typ := EventUpdated
		if event.Has(fsnotify.Create) {
			typ = EventCreated
		}
		return &Event{Type: typ, Path: event.Name, MIMEType: mimeType}
	default:
		return nil
	}
}

// DetectMIMEType returns the document MIME type for a file name, or an
// empty string if the file is not a supported document.
func DetectMIMEType(name string) string {
	return domain.MIMETypeForExtension(filepath.Ext(name))
}

// isHidden reports whether any element of path starts with a dot.
// "." and ".." are not hidden.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "" || part == "." || part == ".." {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
