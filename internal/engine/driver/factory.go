package driver

import (
	"github.com/nodalhq/nodal/internal/core/domain"
	"github.com/nodalhq/nodal/internal/core/ports"
)

// Factory builds drivers over graphs loaded at runtime. All collaborators
// except the graph are wiring-time singletons; the graph arrives with the
// scene, so driver construction is deferred behind this factory.
type Factory struct {
	kinds         ports.Registry
	cache         ports.StageCache
	resources     ports.Resources
	resourceCache ports.ResourceStore
	tracer        ports.Tracer
	log           ports.Logger
}

// NewFactory creates a driver factory.
func NewFactory(
	kinds ports.Registry,
	cache ports.StageCache,
	resources ports.Resources,
	resourceCache ports.ResourceStore,
	tracer ports.Tracer,
	log ports.Logger,
) *Factory {
	return &Factory{
		kinds:         kinds,
		cache:         cache,
		resources:     resources,
		resourceCache: resourceCache,
		tracer:        tracer,
		log:           log,
	}
}

// For creates a driver over the given graph, sharing the factory's caches.
func (f *Factory) For(graph *domain.Graph) *Driver {
	return New(graph, f.kinds, f.cache, f.resources, f.resourceCache, f.tracer, f.log)
}
