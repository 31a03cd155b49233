package cache

import (
	"sync"

	"github.com/nodalhq/nodal/internal/core/domain"
	"github.com/nodalhq/nodal/internal/core/ports"
)

var _ ports.ResourceStore = (*ResourceStore)(nil)

// ResourceStore caches external-resource loads keyed purely by fingerprint,
// with no owner. It exists to be immune to the unified store's
// invalidation: when a node's ingestion entry is invalidated for an
// unrelated reason, the subsequent recompute finds the load here and no
// resource read occurs. There is deliberately no per-owner removal path;
// only Clear empties it, for explicit user-triggered resets.
type ResourceStore struct {
	mu      sync.RWMutex
	entries map[domain.Fingerprint]domain.Payload
}

// NewResourceStore creates an empty persistent store.
func NewResourceStore() *ResourceStore {
	return &ResourceStore{
		entries: make(map[domain.Fingerprint]domain.Payload),
	}
}

// Get returns the payload loaded under the given fingerprint, if any.
func (s *ResourceStore) Get(fp domain.Fingerprint) (domain.Payload, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.entries[fp]
	return p, ok
}

// Put stores a loaded payload under its fingerprint.
func (s *ResourceStore) Put(fp domain.Fingerprint, payload domain.Payload) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[fp] = payload
}

// Len returns the number of cached loads.
func (s *ResourceStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Clear removes every entry.
func (s *ResourceStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.entries)
}
