// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/nodalhq/nodal/internal/adapters/compose"
	_ "github.com/nodalhq/nodal/internal/adapters/config"
	_ "github.com/nodalhq/nodal/internal/adapters/fs"
	_ "github.com/nodalhq/nodal/internal/adapters/logger"
	_ "github.com/nodalhq/nodal/internal/adapters/source"
	_ "github.com/nodalhq/nodal/internal/adapters/telemetry"
	_ "github.com/nodalhq/nodal/internal/adapters/telemetry/progrock"
	_ "github.com/nodalhq/nodal/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "github.com/nodalhq/nodal/internal/app"
	_ "github.com/nodalhq/nodal/internal/engine/cache"
	_ "github.com/nodalhq/nodal/internal/engine/driver"
)
