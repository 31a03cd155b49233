// Package compose implements the merge kind: a single-stage node that
// combines the scenes arriving on its input ports.
package compose

import (
	"context"

	"github.com/nodalhq/nodal/internal/core/domain"
	"github.com/nodalhq/nodal/internal/core/ports"
	"github.com/nodalhq/nodal/internal/engine/fingerprint"
)

// KindName is the kind name scene files reference.
const KindName = "merge"

// MergeKind declares the merge node's single stage.
type MergeKind struct {
	stages []ports.Stage
}

var _ ports.Kind = (*MergeKind)(nil)

// NewMergeKind creates the merge kind.
func NewMergeKind() *MergeKind {
	return &MergeKind{stages: []ports.Stage{&mergeStage{}}}
}

// Name returns the kind name.
func (k *MergeKind) Name() string { return KindName }

// Stages returns the ordered stage declarations.
func (k *MergeKind) Stages() []ports.Stage { return k.stages }

// mergeStage concatenates upstream scenes port by port. Its fingerprint is
// derived purely from the upstream output versions: when an upstream
// re-ingests or re-extracts, this stage's fingerprint moves and the merge
// recomputes on the next pull.
type mergeStage struct{}

func (s *mergeStage) Name() string { return "merge" }

func (s *mergeStage) DependsOn() []string { return nil }

func (s *mergeStage) UsesInputs() bool { return true }

func (s *mergeStage) Fingerprint(req ports.StageRequest) (domain.Fingerprint, error) {
	return fingerprint.Derive(nil, req.InputVersions), nil
}

func (s *mergeStage) Run(ctx context.Context, req ports.StageRequest) (domain.Payload, error) {
	out := domain.ScenePayload{}
	sources := 0
	for _, in := range req.Inputs {
		scene, ok := in.(domain.ScenePayload)
		if !ok {
			// Unconnected port or failed upstream; valid, contributes nothing.
			continue
		}
		sources++
		if out.Source == "" {
			out.Source = scene.Source
		} else {
			out.Source += "+" + scene.Source
		}
		out.Meshes = append(out.Meshes, scene.Meshes...)
		out.Materials = append(out.Materials, scene.Materials...)
		out.Lights = append(out.Lights, scene.Lights...)
		out.Cameras = append(out.Cameras, scene.Cameras...)
	}
	if sources == 0 {
		return domain.EmptyPayload{}, nil
	}
	return out, nil
}
