package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodalhq/nodal/internal/adapters/compose"
	"github.com/nodalhq/nodal/internal/adapters/fs"
	"github.com/nodalhq/nodal/internal/adapters/logger"
	"github.com/nodalhq/nodal/internal/adapters/source"
	"github.com/nodalhq/nodal/internal/adapters/telemetry"
	"github.com/nodalhq/nodal/internal/core/domain"
	"github.com/nodalhq/nodal/internal/engine/cache"
	"github.com/nodalhq/nodal/internal/engine/driver"
)

// TestScenario_EditTouchRevert walks a small scene through the edit cycle a
// node editor produces: pull, edit a filter, touch the file, revert the
// touch. Real files, real kinds, real stores.
func TestScenario_EditTouchRevert(t *testing.T) {
	dir := t.TempDir()
	robot := filepath.Join(dir, "robot.usda")
	set := filepath.Join(dir, "set.usda")
	require.NoError(t, os.WriteFile(robot, []byte("mesh body\nmesh arm\nlight rim\n"), 0o600))
	require.NoError(t, os.WriteFile(set, []byte("mesh floor\nmaterial concrete\n"), 0o600))

	t1 := time.Now().Add(-time.Hour).Truncate(time.Second)
	t2 := t1.Add(time.Minute)
	require.NoError(t, os.Chtimes(robot, t1, t1))

	graph := domain.NewGraph()
	robotNode := &domain.Node{ID: 1, Kind: source.KindName, Outputs: 1}
	robotNode.SetParam(source.ParamPath, domain.StringValue(robot))
	require.NoError(t, graph.AddNode(robotNode))

	setNode := &domain.Node{ID: 2, Kind: source.KindName, Outputs: 1}
	setNode.SetParam(source.ParamPath, domain.StringValue(set))
	require.NoError(t, graph.AddNode(setNode))

	require.NoError(t, graph.AddNode(&domain.Node{ID: 3, Kind: compose.KindName, Inputs: 2, Outputs: 1}))
	require.NoError(t, graph.Connect(domain.Connection{From: 1, To: 3, ToPort: 0}))
	require.NoError(t, graph.Connect(domain.Connection{From: 2, To: 3, ToPort: 1}))

	resStore := cache.NewResourceStore()
	d := driver.New(
		graph,
		driver.NewRegistry(source.NewFileKind(), compose.NewMergeKind()),
		cache.NewStore(),
		fs.NewResources(),
		resStore,
		telemetry.NewNoopTracer(),
		logger.New(),
	)

	ctx := context.Background()
	pull := func(t *testing.T) domain.ScenePayload {
		t.Helper()
		order, err := graph.EvalOrder([]domain.NodeID{3})
		require.NoError(t, err)
		var out domain.Payload
		for _, id := range order {
			out, err = d.Evaluate(ctx, id)
			require.NoError(t, err)
		}
		scene, ok := out.(domain.ScenePayload)
		require.True(t, ok)
		return scene
	}

	merged := pull(t)
	assert.ElementsMatch(t, []string{"body", "arm", "floor"}, merged.Meshes)
	assert.Equal(t, []string{"rim"}, merged.Lights)
	require.Equal(t, 2, resStore.Len(), "one ingest per file")

	// A filter edit must not re-ingest either file.
	robotNode.SetParam(source.ParamLights, domain.BoolValue(false))
	require.NoError(t, d.OnParameterChanged(1, source.ParamLights))

	merged = pull(t)
	assert.Empty(t, merged.Lights)
	assert.ElementsMatch(t, []string{"body", "arm", "floor"}, merged.Meshes)
	assert.Equal(t, 2, resStore.Len(), "a filter edit must not reach the disk")

	// Touching the file moves its external fingerprint and re-ingests.
	require.NoError(t, os.Chtimes(robot, t2, t2))
	require.NoError(t, d.OnResourceChanged(1))
	require.True(t, d.IsDirty(3), "the merge consumes the touched source")

	merged = pull(t)
	assert.ElementsMatch(t, []string{"body", "arm", "floor"}, merged.Meshes)
	assert.Equal(t, 3, resStore.Len(), "the touched file ingests under a new fingerprint")

	// Reverting the mtime lands back on a fingerprint the persistent store
	// already holds; the pull succeeds without a fourth ingest.
	require.NoError(t, os.Chtimes(robot, t1, t1))
	require.NoError(t, d.OnResourceChanged(1))

	merged = pull(t)
	assert.ElementsMatch(t, []string{"body", "arm", "floor"}, merged.Meshes)
	assert.Equal(t, 3, resStore.Len(), "the reverted state must be served from the persistent store")
}
