// Package cache implements the unified stage cache and the persistent
// external-resource store.
package cache

import (
	"sync"

	"github.com/nodalhq/nodal/internal/core/domain"
	"github.com/nodalhq/nodal/internal/core/ports"
)

var _ ports.StageCache = (*Store)(nil)

type entry struct {
	fp      domain.Fingerprint
	payload domain.Payload
}

// Store is the unified cache: one entry per stage key, holding the most
// recent (fingerprint, payload) pair. It is reached from both the
// evaluation path and the render-preparation path, so every operation
// takes the lock — but only for the duration of the map access. Payloads
// are immutable by contract, which is what makes handing them out without
// deep copies safe.
type Store struct {
	mu      sync.RWMutex
	entries map[domain.StageKey]entry

	hits          int
	misses        int
	invalidations int
}

// NewStore creates an empty unified cache.
func NewStore() *Store {
	return &Store{
		entries: make(map[domain.StageKey]entry),
	}
}

// Get returns the stored payload only if an entry exists for key and its
// stored fingerprint equals fp. Anything else is a miss, not an error.
func (s *Store) Get(key domain.StageKey, fp domain.Fingerprint) (domain.Payload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || e.fp != fp {
		s.misses++
		return nil, false
	}
	s.hits++
	return e.payload, true
}

// Fingerprint returns the fingerprint recorded at key's last write. Used by
// the driver to decide whether an edit actually changed a stage's identity.
func (s *Store) Fingerprint(key domain.StageKey) (domain.Fingerprint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok {
		return "", false
	}
	return e.fp, true
}

// Put unconditionally overwrites any prior entry for key. A recomputation
// that produced an identical payload under a new fingerprint still rewrites
// the entry: future fingerprint comparisons matter more than skipping a
// redundant write.
func (s *Store) Put(key domain.StageKey, fp domain.Fingerprint, payload domain.Payload) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry{fp: fp, payload: payload}
}

// Invalidate removes every entry the pattern matches.
func (s *Store) Invalidate(p domain.Pattern) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.Kind == domain.PatternAll {
		s.invalidations += len(s.entries)
		clear(s.entries)
		return
	}
	for key := range s.entries {
		if p.Matches(key) {
			delete(s.entries, key)
			s.invalidations++
		}
	}
}

// Stats returns a snapshot of the store's counters.
func (s *Store) Stats() ports.CacheStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return ports.CacheStats{
		Entries:       len(s.entries),
		Hits:          s.hits,
		Misses:        s.misses,
		Invalidations: s.invalidations,
	}
}
