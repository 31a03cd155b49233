package app_test

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
	"github.com/nodalhq/nodal/internal/adapters/watcher"
	"github.com/nodalhq/nodal/internal/app"
	"github.com/nodalhq/nodal/internal/core/domain"
	"github.com/nodalhq/nodal/internal/engine/cache"
	"github.com/nodalhq/nodal/internal/engine/driver"
)

// stubLoader serves a pre-built graph.
type stubLoader struct {
	graph *domain.Graph
	err   error
}

func (l *stubLoader) Load(string) (*domain.Graph, error) {
	return l.graph, l.err
}

func newApp(t *testing.T, loader *stubLoader) (*app.App, *cache.ResourceStore) {
	t.Helper()
	resStore := cache.NewResourceStore()
	factory := driver.NewFactory(
		driver.NewRegistry(source.NewFileKind(), compose.NewMergeKind()),
		cache.NewStore(),
		fs.NewResources(),
		resStore,
		telemetry.NewNoopTracer(),
		logger.New(),
	)

	w, err := watcher.New(logger.New())
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	return app.New(loader, factory, w, telemetry.NewNoopTelemetry(), logger.New()), resStore
}

func sceneGraph(t *testing.T) (*domain.Graph, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "robot.usda")
	require.NoError(t, os.WriteFile(path, []byte("mesh body\n"), 0o600))

	g := domain.NewGraph()
	n := &domain.Node{ID: 1, Kind: source.KindName, Outputs: 1}
	n.SetParam(source.ParamPath, domain.StringValue(path))
	require.NoError(t, g.AddNode(n))
	return g, path
}

func TestRun_Success(t *testing.T) {
	g, _ := sceneGraph(t)
	a, resStore := newApp(t, &stubLoader{graph: g})

	err := a.Run(context.Background(), "scene.yaml", []string{"1"}, app.RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, resStore.Len())
}

func TestRun_NoTargets(t *testing.T) {
	g, _ := sceneGraph(t)
	a, _ := newApp(t, &stubLoader{graph: g})

	err := a.Run(context.Background(), "scene.yaml", nil, app.RunOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoTargetsSpecified)
}

func TestRun_NonNumericTarget(t *testing.T) {
	g, _ := sceneGraph(t)
	a, _ := newApp(t, &stubLoader{graph: g})

	err := a.Run(context.Background(), "scene.yaml", []string{"robot"}, app.RunOptions{})
	require.Error(t, err)
}

func TestRun_UnknownTarget(t *testing.T) {
	g, _ := sceneGraph(t)
	a, _ := newApp(t, &stubLoader{graph: g})

	err := a.Run(context.Background(), "scene.yaml", []string{"42"}, app.RunOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)
}

func TestRun_LoaderFailure(t *testing.T) {
	a, _ := newApp(t, &stubLoader{err: os.ErrNotExist})

	err := a.Run(context.Background(), "scene.yaml", []string{"1"}, app.RunOptions{})
	require.Error(t, err)
}

func TestRun_NoCacheStillServesResources(t *testing.T) {
	g, _ := sceneGraph(t)
	a, resStore := newApp(t, &stubLoader{graph: g})

	ctx := context.Background()
	require.NoError(t, a.Run(ctx, "scene.yaml", []string{"1"}, app.RunOptions{}))
	require.NoError(t, a.Run(ctx, "scene.yaml", []string{"1"}, app.RunOptions{NoCache: true}))
	assert.Equal(t, 1, resStore.Len(), "the persistent store survives a no-cache run")
}

func TestWatch_ReingestsOnFileChange(t *testing.T) {
	g, path := sceneGraph(t)
	a, resStore := newApp(t, &stubLoader{graph: g})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- a.Watch(ctx, "scene.yaml", []string{"1"}, app.RunOptions{})
	}()

	require.Eventually(t, func() bool { return resStore.Len() == 1 },
		5*time.Second, 10*time.Millisecond, "initial evaluation ingests the file")

	// Grow the file so its size-based fingerprint moves.
	require.NoError(t, os.WriteFile(path, []byte("mesh body\nmesh arm\n"), 0o600))

	require.Eventually(t, func() bool { return resStore.Len() == 2 },
		5*time.Second, 10*time.Millisecond, "the change must trigger a re-ingest")

	cancel()
	require.NoError(t, <-done)
}
