package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/nodalhq/nodal/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"github.com/nodalhq/nodal/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"github.com/nodalhq/nodal/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"github.com/nodalhq/nodal/internal/adapters/watcher"            //nolint:depguard // Wired in app layer
	"github.com/nodalhq/nodal/internal/core/ports"
	"github.com/nodalhq/nodal/internal/engine/driver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			driver.FactoryNodeID,
			watcher.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.SceneLoader](ctx)
			if err != nil {
				return nil, err
			}

			drivers, err := graft.Dep[*driver.Factory](ctx)
			if err != nil {
				return nil, err
			}

			watch, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, drivers, watch, telemetry, log), nil
		},
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				App:    application,
				Logger: log,
			}, nil
		},
	})
}

// Components contains the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}
