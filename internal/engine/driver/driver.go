// Package driver implements dirty propagation and demand-driven stage
// evaluation over the node graph.
package driver

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"

	"github.com/nodalhq/nodal/internal/core/domain"
	"github.com/nodalhq/nodal/internal/core/ports"
)

// Driver reacts to edits by invalidating exactly the affected stages and
// marking nodes dirty, and drives re-evaluation on demand. It never caches
// a failed computation, so a failed node retries from scratch on the next
// pull.
type Driver struct {
	graph         *domain.Graph
	kinds         ports.Registry
	cache         ports.StageCache
	resources     ports.Resources
	resourceCache ports.ResourceStore
	tracer        ports.Tracer
	log           ports.Logger

	mu    sync.Mutex
	dirty map[domain.NodeID]bool

	// flight collapses concurrent recomputations of the same
	// (stage key, fingerprint) into one execution.
	flight singleflight.Group
}

// New creates a Driver over the given graph and collaborators.
func New(
	graph *domain.Graph,
	kinds ports.Registry,
	cache ports.StageCache,
	resources ports.Resources,
	resourceCache ports.ResourceStore,
	tracer ports.Tracer,
	log ports.Logger,
) *Driver {
	return &Driver{
		graph:         graph,
		kinds:         kinds,
		cache:         cache,
		resources:     resources,
		resourceCache: resourceCache,
		tracer:        tracer,
		log:           log,
		dirty:         make(map[domain.NodeID]bool),
	}
}

// Graph returns the graph the driver operates on.
func (d *Driver) Graph() *domain.Graph {
	return d.graph
}

// IsDirty reports whether the node's cached output is not guaranteed to
// reflect current state. Never-evaluated nodes are dirty.
func (d *Driver) IsDirty(id domain.NodeID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	dirty, seen := d.dirty[id]
	return dirty || !seen
}

// markDirtyDownstream marks the node dirty along with its one-hop
// downstream consumers. Transitive propagation is deliberately left to
// demand: a dirty consumer's own stage fingerprints incorporate upstream
// versions, so its cascade triggers on the next pull.
func (d *Driver) markDirtyDownstream(id domain.NodeID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.dirty[id] = true
	for _, down := range d.graph.DownstreamOf(id) {
		d.dirty[down] = true
	}
}

// OnParameterChanged is the push entry point for a UI parameter edit. Only
// stages whose declared parameter set contains name are re-fingerprinted,
// and only those whose fingerprint actually moved are invalidated; sibling
// stages keep their entries.
func (d *Driver) OnParameterChanged(id domain.NodeID, name string) error {
	node, stages, err := d.lookup(id)
	if err != nil {
		return err
	}

	for idx, stage := range stages {
		if !slices.Contains(stage.DependsOn(), name) {
			continue
		}
		d.invalidateIfMoved(node, stages, idx)
	}

	d.markDirtyDownstream(id)
	return nil
}

// OnResourceChanged re-checks every stage of the node against current
// external state, invalidating the ones whose fingerprint no longer
// matches. Used by the resource watcher; the pull path performs the same
// comparison lazily.
func (d *Driver) OnResourceChanged(id domain.NodeID) error {
	node, stages, err := d.lookup(id)
	if err != nil {
		return err
	}

	for idx := range stages {
		d.invalidateIfMoved(node, stages, idx)
	}

	d.markDirtyDownstream(id)
	return nil
}

// OnConnectionAdded invalidates the input-dependent stages of the node
// whose wiring changed.
func (d *Driver) OnConnectionAdded(id domain.NodeID) error {
	return d.onWiringChanged(id)
}

// OnConnectionRemoved invalidates the input-dependent stages of the node
// whose wiring changed.
func (d *Driver) OnConnectionRemoved(id domain.NodeID) error {
	return d.onWiringChanged(id)
}

func (d *Driver) onWiringChanged(id domain.NodeID) error {
	_, stages, err := d.lookup(id)
	if err != nil {
		return err
	}

	for idx, stage := range stages {
		if !stage.UsesInputs() {
			continue
		}
		d.cache.Invalidate(domain.ExactPattern(domain.StageKey{Node: id, Stage: domain.StageIndex(idx)}))
	}

	d.markDirtyDownstream(id)
	return nil
}

// OnNodeRemoved invalidates every stage owned by the node. The persistent
// resource store is untouched: it holds no owner-keyed entries.
func (d *Driver) OnNodeRemoved(id domain.NodeID) {
	d.cache.Invalidate(domain.NodePattern(id))

	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.dirty, id)
}

// InvalidateAll is the user-facing "clear cache" command. The persistent
// resource store is left alone; ClearResources exists for that.
func (d *Driver) InvalidateAll() {
	d.cache.Invalidate(domain.AllPattern())

	d.mu.Lock()
	defer d.mu.Unlock()
	for id := range d.dirty {
		d.dirty[id] = true
	}
}

// ClearResources empties the persistent external-resource store.
func (d *Driver) ClearResources() {
	d.resourceCache.Clear()
}

// CacheStats returns a snapshot of the unified store's counters.
func (d *Driver) CacheStats() ports.CacheStats {
	return d.cache.Stats()
}

// Evaluate pulls the node's current output, recomputing stages whose
// cached entries no longer match their fingerprints. Stages run strictly
// in declared order, each consuming its predecessor's output. Callers are
// responsible for evaluating the graph upstream-first; Evaluate does not
// recurse into dependencies.
func (d *Driver) Evaluate(ctx context.Context, id domain.NodeID) (domain.Payload, error) {
	node, stages, err := d.lookup(id)
	if err != nil {
		return nil, err
	}

	ctx, span := d.tracer.Start(ctx, "evaluate")
	defer span.End()
	span.SetAttribute("node_id", int64(id))
	span.SetAttribute("kind", node.Kind)

	inputs, versions := d.resolveInputs(id)

	recomputed := 0
	var prev domain.Payload
	var prevFP domain.Fingerprint
	for idx, stage := range stages {
		req := ports.StageRequest{
			Node:          node,
			Prev:          prev,
			PrevVersion:   prevFP,
			Inputs:        inputs,
			InputVersions: versions,
			Resources:     d.resources,
			ResourceCache: d.resourceCache,
		}
		key := domain.StageKey{Node: id, Stage: domain.StageIndex(idx)}

		fp, err := stage.Fingerprint(req)
		if err != nil {
			// A broken fingerprint (missing resource) is a failure, not a
			// miss: nothing is cached and the node stays dirty.
			span.RecordError(err)
			return nil, zerr.With(zerr.With(err, "node_id", fmt.Sprint(id)), "stage", stage.Name())
		}

		req.Fingerprint = fp
		out, hit, err := d.runStage(ctx, key, fp, stage, req)
		if err != nil {
			span.RecordError(err)
			return nil, zerr.With(zerr.With(err, "node_id", fmt.Sprint(id)), "stage", stage.Name())
		}
		if !hit {
			recomputed++
		}
		prev = out
		prevFP = fp
	}

	span.SetAttribute("stages_recomputed", int64(recomputed))

	d.mu.Lock()
	d.dirty[id] = false
	d.mu.Unlock()

	return prev, nil
}

// runStage returns the cached output when the fingerprint still matches,
// otherwise computes, stores, and returns a fresh one. Concurrent misses
// on the same (key, fingerprint) share a single computation; the cache
// lock is never held across the computation itself.
func (d *Driver) runStage(
	ctx context.Context,
	key domain.StageKey,
	fp domain.Fingerprint,
	stage ports.Stage,
	req ports.StageRequest,
) (domain.Payload, bool, error) {
	if out, ok := d.cache.Get(key, fp); ok {
		return out, true, nil
	}

	flightKey := key.String() + "|" + string(fp)
	v, err, _ := d.flight.Do(flightKey, func() (any, error) {
		// A concurrent caller may have finished while we queued.
		if out, ok := d.cache.Get(key, fp); ok {
			return out, nil
		}

		out, err := stage.Run(ctx, req)
		if err != nil {
			if errors.Is(err, domain.ErrResourceUnavailable) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %w", domain.ErrStageFailed, err)
		}

		// Stored even when the payload is identical to what a different
		// fingerprint produced before; the comparison baseline must move.
		d.cache.Put(key, fp, out)
		return out, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(domain.Payload), false, nil
}

// resolveInputs gathers, per input port, the upstream node's final-stage
// output and the fingerprint it was produced under. Ports with no
// connection or no cached upstream output resolve to EmptyPayload with a
// zero version; downstream stages must treat that as valid input.
func (d *Driver) resolveInputs(id domain.NodeID) ([]domain.Payload, []domain.Fingerprint) {
	node, err := d.graph.Node(id)
	if err != nil {
		return nil, nil
	}

	inputs := make([]domain.Payload, node.Inputs)
	versions := make([]domain.Fingerprint, node.Inputs)
	for i := range inputs {
		inputs[i] = domain.EmptyPayload{}
	}

	for _, c := range d.graph.ConnectionsTo(id) {
		if c.ToPort < 0 || c.ToPort >= node.Inputs {
			continue
		}
		key, ok := d.finalStageKey(c.From)
		if !ok {
			continue
		}
		fp, ok := d.cache.Fingerprint(key)
		if !ok {
			continue
		}
		if out, ok := d.cache.Get(key, fp); ok {
			inputs[c.ToPort] = out
			versions[c.ToPort] = fp
		}
	}
	return inputs, versions
}

// finalStageKey returns the cache key of a node's last stage.
func (d *Driver) finalStageKey(id domain.NodeID) (domain.StageKey, bool) {
	node, err := d.graph.Node(id)
	if err != nil {
		return domain.StageKey{}, false
	}
	kind, ok := d.kinds.Kind(node.Kind)
	if !ok {
		return domain.StageKey{}, false
	}
	n := len(kind.Stages())
	if n == 0 {
		return domain.StageKey{}, false
	}
	return domain.StageKey{Node: id, Stage: domain.StageIndex(n - 1)}, true
}

// invalidateIfMoved recomputes the stage's fingerprint against current
// state and invalidates the entry only if it differs from the one recorded
// at the last cache write. An unreadable fingerprint counts as moved.
func (d *Driver) invalidateIfMoved(node *domain.Node, stages []ports.Stage, idx int) {
	key := domain.StageKey{Node: node.ID, Stage: domain.StageIndex(idx)}

	recorded, ok := d.cache.Fingerprint(key)
	if !ok {
		return
	}

	current, err := d.chainFingerprint(node, stages, idx)
	if err == nil && current == recorded {
		return
	}
	if err != nil {
		d.log.Warn("stage fingerprint unreadable, invalidating: " + key.String())
	}
	d.cache.Invalidate(domain.ExactPattern(key))
}

// chainFingerprint recomputes stage fingerprints in order up to and
// including idx. Fingerprints chain (stage k folds in stage k-1's), so the
// prefix must be walked even when only the last stage is of interest.
func (d *Driver) chainFingerprint(node *domain.Node, stages []ports.Stage, idx int) (domain.Fingerprint, error) {
	inputs, versions := d.resolveInputs(node.ID)

	var fp domain.Fingerprint
	for k := 0; k <= idx; k++ {
		req := ports.StageRequest{
			Node:          node,
			PrevVersion:   fp,
			Inputs:        inputs,
			InputVersions: versions,
			Resources:     d.resources,
			ResourceCache: d.resourceCache,
		}
		var err error
		fp, err = stages[k].Fingerprint(req)
		if err != nil {
			return "", err
		}
	}
	return fp, nil
}

func (d *Driver) lookup(id domain.NodeID) (*domain.Node, []ports.Stage, error) {
	node, err := d.graph.Node(id)
	if err != nil {
		return nil, nil, err
	}
	kind, ok := d.kinds.Kind(node.Kind)
	if !ok {
		return nil, nil, zerr.With(zerr.Wrap(domain.ErrKindNotRegistered, "lookup kind"), "kind", node.Kind)
	}
	return node, kind.Stages(), nil
}
