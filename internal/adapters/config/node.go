package config

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/nodalhq/nodal/internal/adapters/logger"
	"github.com/nodalhq/nodal/internal/core/ports"
)

// NodeID is the unique identifier for the scene loader Graft node.
const NodeID graft.ID = "adapter.scene_loader"

func init() {
	graft.Register(graft.Node[ports.SceneLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.SceneLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})
}
