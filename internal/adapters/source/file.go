// Package source implements the external-file scene source kind: an
// expensive ingestion stage that parses a scene file, and a cheap extract
// stage that applies user-editable filters to the ingested data.
package source

import (
	"bufio"
	"bytes"
	"context"
	"strings"

	"go.trai.ch/zerr"

	"github.com/nodalhq/nodal/internal/core/domain"
	"github.com/nodalhq/nodal/internal/core/ports"
	"github.com/nodalhq/nodal/internal/engine/fingerprint"
)

// KindName is the kind name scene files reference.
const KindName = "scene_source"

const (
	// ParamPath is the scene file path parameter. Editing it invalidates
	// everything, including the ingestion stage.
	ParamPath = "path"
	// ParamMeshes toggles mesh extraction. Ingest is untouched by it.
	ParamMeshes = "include_meshes"
	// ParamMaterials toggles material extraction.
	ParamMaterials = "include_materials"
	// ParamLights toggles light extraction.
	ParamLights = "include_lights"
	// ParamCameras toggles camera extraction.
	ParamCameras = "include_cameras"
)

// FileKind declares the two stages of the scene source.
type FileKind struct {
	stages []ports.Stage
}

var _ ports.Kind = (*FileKind)(nil)

// NewFileKind creates the scene-source kind.
func NewFileKind() *FileKind {
	return &FileKind{
		stages: []ports.Stage{
			&ingestStage{},
			&extractStage{},
		},
	}
}

// Name returns the kind name.
func (k *FileKind) Name() string { return KindName }

// Stages returns the ordered stage declarations.
func (k *FileKind) Stages() []ports.Stage { return k.stages }

// ingestStage parses the scene file. Its fingerprint is derived from the
// file's identity and metadata only, so parameter edits elsewhere on the
// node never force a re-parse. Before reading it consults the persistent
// resource store: an invalidated cache entry over an unchanged file
// collapses back to a hit without touching the disk.
type ingestStage struct{}

func (s *ingestStage) Name() string { return "ingest" }

func (s *ingestStage) DependsOn() []string { return []string{ParamPath} }

func (s *ingestStage) UsesInputs() bool { return false }

func (s *ingestStage) Fingerprint(req ports.StageRequest) (domain.Fingerprint, error) {
	path := pathParam(req.Node)
	if path == "" {
		return "", zerr.With(zerr.Wrap(domain.ErrResourceUnavailable, "no path set"), "node_id", req.Node.ID)
	}
	return fingerprint.FromResource(req.Resources, path)
}

func (s *ingestStage) Run(ctx context.Context, req ports.StageRequest) (domain.Payload, error) {
	if cached, ok := req.ResourceCache.Get(req.Fingerprint); ok {
		return cached, nil
	}

	path := pathParam(req.Node)
	data, err := req.Resources.Read(path)
	if err != nil {
		return nil, err
	}

	scene, err := parseScene(path, data)
	if err != nil {
		return nil, err
	}

	req.ResourceCache.Put(req.Fingerprint, scene)
	return scene, nil
}

// extractStage applies the include_* filters to the ingested scene. Its
// fingerprint folds in the ingest fingerprint, so a re-ingested file also
// re-extracts.
type extractStage struct{}

func (s *extractStage) Name() string { return "extract" }

func (s *extractStage) DependsOn() []string {
	return []string{ParamMeshes, ParamMaterials, ParamLights, ParamCameras}
}

func (s *extractStage) UsesInputs() bool { return false }

func (s *extractStage) Fingerprint(req ports.StageRequest) (domain.Fingerprint, error) {
	values := []domain.Value{
		domain.BoolValue(boolParam(req.Node, ParamMeshes, true)),
		domain.BoolValue(boolParam(req.Node, ParamMaterials, true)),
		domain.BoolValue(boolParam(req.Node, ParamLights, true)),
		domain.BoolValue(boolParam(req.Node, ParamCameras, true)),
	}
	return fingerprint.Derive(values, []domain.Fingerprint{req.PrevVersion}), nil
}

func (s *extractStage) Run(ctx context.Context, req ports.StageRequest) (domain.Payload, error) {
	scene, ok := req.Prev.(domain.ScenePayload)
	if !ok {
		// Upstream produced no data; pass the emptiness along.
		return domain.EmptyPayload{}, nil
	}

	out := domain.ScenePayload{Source: scene.Source}
	if boolParam(req.Node, ParamMeshes, true) {
		out.Meshes = append([]string(nil), scene.Meshes...)
	}
	if boolParam(req.Node, ParamMaterials, true) {
		out.Materials = append([]string(nil), scene.Materials...)
	}
	if boolParam(req.Node, ParamLights, true) {
		out.Lights = append([]string(nil), scene.Lights...)
	}
	if boolParam(req.Node, ParamCameras, true) {
		out.Cameras = append([]string(nil), scene.Cameras...)
	}
	return out, nil
}

// parseScene reads the line-oriented scene format: one element per line,
// "<class> <name>", with '#' comments and blank lines ignored.
func parseScene(path string, data []byte) (domain.ScenePayload, error) {
	scene := domain.ScenePayload{Source: path}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		class, name, ok := strings.Cut(text, " ")
		if !ok {
			err := zerr.With(zerr.Wrap(domain.ErrStageFailed, "malformed scene element"), "path", path)
			return domain.ScenePayload{}, zerr.With(err, "line", text)
		}
		name = strings.TrimSpace(name)

		switch class {
		case "mesh":
			scene.Meshes = append(scene.Meshes, name)
		case "material":
			scene.Materials = append(scene.Materials, name)
		case "light":
			scene.Lights = append(scene.Lights, name)
		case "camera":
			scene.Cameras = append(scene.Cameras, name)
		default:
			err := zerr.With(zerr.Wrap(domain.ErrStageFailed, "unknown scene element class"), "path", path)
			return domain.ScenePayload{}, zerr.With(err, "class", class)
		}
	}
	if err := scanner.Err(); err != nil {
		return domain.ScenePayload{}, zerr.Wrap(err, "failed to scan scene file")
	}
	return scene, nil
}

func pathParam(n *domain.Node) string {
	v, ok := n.Param(ParamPath)
	if !ok || v.Kind() != domain.KindString {
		return ""
	}
	return v.AsString()
}

func boolParam(n *domain.Node, name string, def bool) bool {
	v, ok := n.Param(name)
	if !ok || v.Kind() != domain.KindBool {
		return def
	}
	return v.AsBool()
}
