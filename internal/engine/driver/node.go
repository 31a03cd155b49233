package driver

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/nodalhq/nodal/internal/adapters/compose"   //nolint:depguard // Wired in engine wiring
	"github.com/nodalhq/nodal/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"github.com/nodalhq/nodal/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"github.com/nodalhq/nodal/internal/adapters/source"    //nolint:depguard // Wired in engine wiring
	"github.com/nodalhq/nodal/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"github.com/nodalhq/nodal/internal/core/ports"
	"github.com/nodalhq/nodal/internal/engine/cache"
)

const (
	// RegistryNodeID is the unique identifier for the kind registry Graft node.
	RegistryNodeID graft.ID = "engine.kind_registry"
	// FactoryNodeID is the unique identifier for the driver factory Graft node.
	FactoryNodeID graft.ID = "engine.driver_factory"
)

func init() {
	graft.Register(graft.Node[ports.Registry]{
		ID:        RegistryNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			source.KindNodeID,
			compose.KindNodeID,
		},
		Run: func(ctx context.Context) (ports.Registry, error) {
			sceneSource, err := graft.Dep[*source.FileKind](ctx)
			if err != nil {
				return nil, err
			}

			merge, err := graft.Dep[*compose.MergeKind](ctx)
			if err != nil {
				return nil, err
			}

			return NewRegistry(sceneSource, merge), nil
		},
	})

	graft.Register(graft.Node[*Factory]{
		ID:        FactoryNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			RegistryNodeID,
			cache.StoreNodeID,
			cache.ResourceStoreNodeID,
			fs.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Factory, error) {
			kinds, err := graft.Dep[ports.Registry](ctx)
			if err != nil {
				return nil, err
			}

			stageCache, err := graft.Dep[ports.StageCache](ctx)
			if err != nil {
				return nil, err
			}

			resourceCache, err := graft.Dep[ports.ResourceStore](ctx)
			if err != nil {
				return nil, err
			}

			resources, err := graft.Dep[ports.Resources](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewFactory(kinds, stageCache, resources, resourceCache, tracer, log), nil
		},
	})
}
