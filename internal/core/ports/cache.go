// Package ports defines the core interfaces for the engine.
package ports

import "github.com/nodalhq/nodal/internal/core/domain"

// CacheStats is a snapshot of unified-store counters.
type CacheStats struct {
	Entries       int
	Hits          int
	Misses        int
	Invalidations int
}

// StageCache is the unified cache store: one entry per stage key, holding
// the most recent (fingerprint, payload) pair. It never fails; absence is
// reported through the boolean, not an error.
//
//go:generate go run go.uber.org/mock/mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type StageCache interface {
	// Get returns the stored payload only if an entry exists for key and
	// its stored fingerprint equals fp.
	Get(key domain.StageKey, fp domain.Fingerprint) (domain.Payload, bool)

	// Put unconditionally overwrites any prior entry for key.
	Put(key domain.StageKey, fp domain.Fingerprint, payload domain.Payload)

	// Fingerprint returns the fingerprint recorded at key's last write,
	// regardless of whether it is still current.
	Fingerprint(key domain.StageKey) (domain.Fingerprint, bool)

	// Invalidate removes every entry the pattern matches.
	Invalidate(p domain.Pattern)

	// Stats returns a snapshot of the store's counters.
	Stats() CacheStats
}

// ResourceStore is the persistent external-resource store, keyed purely by
// fingerprint with no owner. It is deliberately immune to StageCache
// invalidation: only Clear empties it.
type ResourceStore interface {
	Get(fp domain.Fingerprint) (domain.Payload, bool)
	Put(fp domain.Fingerprint, payload domain.Payload)
	Clear()
}
