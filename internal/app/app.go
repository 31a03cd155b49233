// Package app implements the application layer for nodal.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"go.trai.ch/zerr"

	"github.com/nodalhq/nodal/internal/core/domain"
	"github.com/nodalhq/nodal/internal/core/ports"
	"github.com/nodalhq/nodal/internal/engine/driver"
)

// App represents the main application logic: load a scene, walk the
// requested targets dependency-first, and pull each one through the driver.
type App struct {
	loader    ports.SceneLoader
	drivers   *driver.Factory
	watcher   ports.Watcher
	telemetry ports.Telemetry
	log       ports.Logger
}

// RunOptions adjusts a single run.
type RunOptions struct {
	// NoCache invalidates the whole unified store before evaluating. The
	// persistent resource store is untouched.
	NoCache bool
}

// New creates a new App instance.
func New(loader ports.SceneLoader, drivers *driver.Factory, watcher ports.Watcher, telemetry ports.Telemetry, log ports.Logger) *App {
	return &App{
		loader:    loader,
		drivers:   drivers,
		watcher:   watcher,
		telemetry: telemetry,
		log:       log,
	}
}

// Run evaluates the given target nodes of the scene at scenePath.
func (a *App) Run(ctx context.Context, scenePath string, targetNames []string, opts RunOptions) error {
	if len(targetNames) == 0 {
		return domain.ErrNoTargetsSpecified
	}
	targets, err := parseTargets(targetNames)
	if err != nil {
		return err
	}

	graph, err := a.loader.Load(scenePath)
	if err != nil {
		return zerr.Wrap(err, "failed to load scene")
	}

	d := a.drivers.For(graph)
	if opts.NoCache {
		d.InvalidateAll()
	}

	order, err := graph.EvalOrder(targets)
	if err != nil {
		return err
	}

	for _, id := range order {
		if err := a.evaluateNode(ctx, d, id); err != nil {
			return err
		}
	}

	stats := d.CacheStats()
	a.log.Info(fmt.Sprintf(
		"evaluated %d nodes (%d hits, %d misses, %d entries)",
		len(order), stats.Hits, stats.Misses, stats.Entries,
	))
	return a.telemetry.Close()
}

// evaluateNode pulls one node under a progress vertex.
func (a *App) evaluateNode(ctx context.Context, d *driver.Driver, id domain.NodeID) error {
	node, err := d.Graph().Node(id)
	if err != nil {
		return err
	}

	ctx, vertex := a.telemetry.Record(ctx, fmt.Sprintf("%s #%d", node.Kind, id))
	if !d.IsDirty(id) {
		vertex.Cached()
	}

	_, err = d.Evaluate(ctx, id)
	vertex.Done(err)
	if err != nil {
		return err
	}
	return nil
}

// pathParam is the conventional parameter under which source kinds expose
// their resource location. Watch mode registers these paths with the
// resource watcher.
const pathParam = "path"

// Watch evaluates the targets once, then re-evaluates whenever a watched
// source file changes on disk, until the context is cancelled. Evaluation
// failures are logged, not fatal; the next file change retries.
func (a *App) Watch(ctx context.Context, scenePath string, targetNames []string, opts RunOptions) error {
	if len(targetNames) == 0 {
		return domain.ErrNoTargetsSpecified
	}
	targets, err := parseTargets(targetNames)
	if err != nil {
		return err
	}

	graph, err := a.loader.Load(scenePath)
	if err != nil {
		return zerr.Wrap(err, "failed to load scene")
	}

	d := a.drivers.For(graph)
	if opts.NoCache {
		d.InvalidateAll()
	}

	order, err := graph.EvalOrder(targets)
	if err != nil {
		return err
	}

	owners, err := a.watchSources(graph)
	if err != nil {
		return err
	}
	if err := a.watcher.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = a.watcher.Close() }()

	evaluate := func() {
		for _, id := range order {
			if err := a.evaluateNode(ctx, d, id); err != nil {
				a.log.Error(err)
				return
			}
		}
	}
	evaluate()

	for {
		select {
		case <-ctx.Done():
			return a.telemetry.Close()
		case ev, ok := <-a.watcher.Events():
			if !ok {
				return a.telemetry.Close()
			}
			a.log.Info("resource changed: " + ev.Path)
			for _, id := range owners[ev.Path] {
				if err := d.OnResourceChanged(id); err != nil {
					a.log.Error(err)
				}
			}
			evaluate()
		}
	}
}

// watchSources registers every node's path parameter with the watcher and
// returns the absolute path to owning nodes mapping.
func (a *App) watchSources(graph *domain.Graph) (map[string][]domain.NodeID, error) {
	owners := make(map[string][]domain.NodeID)
	for n := range graph.Nodes() {
		v, ok := n.Param(pathParam)
		if !ok || v.Kind() != domain.KindString {
			continue
		}
		abs, err := filepath.Abs(v.AsString())
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to resolve source path"), "path", v.AsString())
		}
		if err := a.watcher.Add(abs); err != nil {
			return nil, err
		}
		owners[abs] = append(owners[abs], n.ID)
	}
	return owners, nil
}

func parseTargets(names []string) ([]domain.NodeID, error) {
	targets := make([]domain.NodeID, len(names))
	for i, name := range names {
		id, err := strconv.ParseInt(name, 10, 64)
		if err != nil {
			return nil, zerr.With(zerr.New("target is not a node id"), "target", name)
		}
		targets[i] = domain.NodeID(id)
	}
	return targets, nil
}
