package compose

import (
	"context"

	"github.com/grindlemire/graft"
)

// KindNodeID is the unique identifier for the merge kind Graft node.
const KindNodeID graft.ID = "kind.merge"

func init() {
	graft.Register(graft.Node[*MergeKind]{
		ID:        KindNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*MergeKind, error) {
			return NewMergeKind(), nil
		},
	})
}
