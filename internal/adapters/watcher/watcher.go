package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/zerr"

	"github.com/nodalhq/nodal/internal/core/ports"
)

var _ ports.Watcher = (*Watcher)(nil)

const (
	eventChannelBuffer = 100
	debounceWindow     = 100 * time.Millisecond
)

// Watcher implements resource file watching using fsnotify. It watches the
// parent directories of registered files and filters raw events down to the
// registered paths, debounced per path.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	log       ports.Logger
	debouncer *Debouncer

	mu    sync.Mutex
	paths map[string]bool
	dirs  map[string]bool

	events chan ports.WatchEvent
}

// New creates a new resource watcher.
func New(log ports.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create file system watcher")
	}
	w := &Watcher{
		fsWatcher: fsw,
		log:       log,
		paths:     make(map[string]bool),
		dirs:      make(map[string]bool),
		events:    make(chan ports.WatchEvent, eventChannelBuffer),
	}
	w.debouncer = NewDebouncer(debounceWindow, w.emit)
	return w, nil
}

// Add registers a resource file for watching. The file's directory is
// watched so that deletes and re-creates of the file itself are observed.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return zerr.Wrap(err, "failed to resolve watch path")
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.paths[abs] = true
	dir := filepath.Dir(abs)
	if w.dirs[dir] {
		return nil
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to watch directory"), "dir", dir)
	}
	w.dirs[dir] = true
	return nil
}

// Events returns the channel change events are delivered on.
func (w *Watcher) Events() <-chan ports.WatchEvent {
	return w.events
}

// Start begins processing raw events until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	go w.processEvents(ctx)
	return nil
}

// Close releases the underlying watch handles.
func (w *Watcher) Close() error {
	w.debouncer.Flush()
	return w.fsWatcher.Close()
}

// processEvents filters raw fsnotify events to registered paths and feeds
// them through the debouncer.
func (w *Watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !w.registered(event.Name) {
				continue
			}
			w.debouncer.Add(event.Name)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.Error(zerr.Wrap(err, "file system watcher error"))
		}
	}
}

// emit delivers debounced paths as watch events. Events are dropped when
// the consumer falls behind the channel buffer; the next change to the
// same path produces a fresh event.
func (w *Watcher) emit(paths []string) {
	for _, path := range paths {
		select {
		case w.events <- ports.WatchEvent{Path: path}:
		default:
			w.log.Warn("watch event dropped, consumer too slow")
		}
	}
}

func (w *Watcher) registered(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.paths[abs]
}
