package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/nodalhq/nodal/internal/core/ports"
)

// TracerNodeID is the unique identifier for the tracer Graft node.
const TracerNodeID graft.ID = "adapter.tracer"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Tracer, error) {
			return NewOTelTracer("nodal"), nil
		},
	})
}
