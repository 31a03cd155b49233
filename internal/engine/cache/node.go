package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/nodalhq/nodal/internal/core/ports"
)

const (
	// StoreNodeID is the unique identifier for the unified cache Graft node.
	StoreNodeID graft.ID = "engine.cache_store"
	// ResourceStoreNodeID is the unique identifier for the persistent resource store Graft node.
	ResourceStoreNodeID graft.ID = "engine.resource_store"
)

func init() {
	graft.Register(graft.Node[ports.StageCache]{
		ID:        StoreNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.StageCache, error) {
			return NewStore(), nil
		},
	})

	graft.Register(graft.Node[ports.ResourceStore]{
		ID:        ResourceStoreNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ResourceStore, error) {
			return NewResourceStore(), nil
		},
	})
}
