package source

import (
	"context"

	"github.com/grindlemire/graft"
)

// KindNodeID is the unique identifier for the scene-source kind Graft node.
const KindNodeID graft.ID = "kind.scene_source"

func init() {
	graft.Register(graft.Node[*FileKind]{
		ID:        KindNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*FileKind, error) {
			return NewFileKind(), nil
		},
	})
}
