package ports

import "context"

// WatchEvent signals that a watched resource changed on disk.
type WatchEvent struct {
	Path string
}

// Watcher observes external resources and emits change events. Events are
// debounced: rapid successive writes to one path collapse into one event.
type Watcher interface {
	// Add registers a resource path for watching.
	Add(path string) error
	// Events returns the channel change events are delivered on.
	Events() <-chan WatchEvent
	// Start begins delivering events until the context is cancelled.
	Start(ctx context.Context) error
	// Close releases the underlying watch handles.
	Close() error
}
