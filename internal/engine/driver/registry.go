package driver

import (
	"github.com/nodalhq/nodal/internal/core/ports"
)

var _ ports.Registry = (*Registry)(nil)

// Registry maps kind names to their stage declarations. Kinds are
// registered at wiring time; lookups during evaluation are read-only, so
// no lock is needed.
type Registry struct {
	kinds map[string]ports.Kind
}

// NewRegistry creates an empty kind registry.
func NewRegistry(kinds ...ports.Kind) *Registry {
	r := &Registry{kinds: make(map[string]ports.Kind, len(kinds))}
	for _, k := range kinds {
		r.Register(k)
	}
	return r
}

// Register adds a kind, replacing any prior registration under the same name.
func (r *Registry) Register(k ports.Kind) {
	r.kinds[k.Name()] = k
}

// Kind resolves a kind name.
func (r *Registry) Kind(name string) (ports.Kind, bool) {
	k, ok := r.kinds[name]
	return k, ok
}
