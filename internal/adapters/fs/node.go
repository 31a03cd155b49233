package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/nodalhq/nodal/internal/core/ports"
)

// NodeID is the unique identifier for the resources Graft node.
const NodeID graft.ID = "adapter.resources"

func init() {
	graft.Register(graft.Node[ports.Resources]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Resources, error) {
			return NewResources(), nil
		},
	})
}
