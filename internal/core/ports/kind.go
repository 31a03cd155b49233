package ports

import (
	"context"

	"github.com/nodalhq/nodal/internal/core/domain"
)

// StageRequest carries everything a stage may consult. The driver builds
// one per stage execution.
type StageRequest struct {
	// Node is the node being evaluated.
	Node *domain.Node

	// Prev is the previous stage's output. Nil for the first stage.
	Prev domain.Payload

	// PrevVersion is the fingerprint the previous stage's output was
	// computed under. A transform stage folds it into its own fingerprint
	// so that an upstream re-ingest cascades through the chain.
	PrevVersion domain.Fingerprint

	// Inputs holds the upstream outputs resolved by input port index.
	// Unconnected ports and failed upstreams hold domain.EmptyPayload.
	Inputs []domain.Payload

	// InputVersions holds, per input port, the fingerprint under which the
	// upstream output was produced. Incorporating these into a stage
	// fingerprint is what makes upstream edits cascade on demand.
	InputVersions []domain.Fingerprint

	// Fingerprint is the stage's current fingerprint, already computed by
	// the driver. An ingestion stage uses it as the persistent-store key.
	Fingerprint domain.Fingerprint

	// Resources is available to ingestion stages.
	Resources Resources

	// ResourceCache is the persistent store an ingestion stage consults
	// before touching the resource.
	ResourceCache ResourceStore
}

// Stage is one independently-cacheable phase of a kind's computation.
type Stage interface {
	// Name is the stage's logical name, used in logs and traces.
	Name() string

	// DependsOn lists the parameter names whose edits invalidate this
	// stage. The driver recomputes the stage fingerprint only when one of
	// these is edited.
	DependsOn() []string

	// UsesInputs reports whether the stage's fingerprint incorporates
	// upstream outputs, i.e. whether wiring changes invalidate it.
	UsesInputs() bool

	// Fingerprint digests whatever currently determines the stage's
	// output. It fails only for external-state fingerprints whose resource
	// metadata cannot be read; that failure is distinct from a cache miss.
	Fingerprint(req StageRequest) (domain.Fingerprint, error)

	// Run computes the stage's output. Failures are returned, never
	// cached.
	Run(ctx context.Context, req StageRequest) (domain.Payload, error)
}

// Kind declares a node type's ordered stages.
type Kind interface {
	Name() string
	Stages() []Stage
}

// Registry resolves a node's kind name to its declaration.
type Registry interface {
	Kind(name string) (Kind, bool)
}
