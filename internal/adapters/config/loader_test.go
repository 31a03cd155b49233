package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodalhq/nodal/internal/adapters/config"
	"github.com/nodalhq/nodal/internal/core/domain"
)

func writeScene(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Success(t *testing.T) {
	content := `
version: "1"
nodes:
  - id: 1
    kind: scene_source
    params:
      path: ./robot.usda
      include_meshes: true
  - id: 2
    kind: scene_source
    params:
      path: ./set.usda
  - id: 3
    kind: merge
    inputs: 2
connections:
  - from: 1
    from_port: 0
    to: 3
    to_port: 0
  - from: 2
    from_port: 0
    to: 3
    to_port: 1
`
	g, err := config.Load(writeScene(t, content))
	require.NoError(t, err)
	assert.Equal(t, 3, g.NodeCount())

	n, err := g.Node(1)
	require.NoError(t, err)
	assert.Equal(t, "scene_source", n.Kind)
	assert.Equal(t, 1, n.Outputs)

	path, ok := n.Param("path")
	require.True(t, ok)
	assert.Equal(t, domain.StringValue("./robot.usda"), path)

	meshes, ok := n.Param("include_meshes")
	require.True(t, ok)
	assert.Equal(t, domain.BoolValue(true), meshes)

	order, err := g.EvalOrder([]domain.NodeID{3})
	require.NoError(t, err)
	assert.Equal(t, domain.NodeID(3), order[len(order)-1])
	assert.Len(t, order, 3)
}

func TestLoad_ParamTypes(t *testing.T) {
	content := `
version: "1"
nodes:
  - id: 1
    kind: scene_source
    params:
      path: /a
      count: 3
      scale: 1.5
      enabled: false
`
	g, err := config.Load(writeScene(t, content))
	require.NoError(t, err)

	n, err := g.Node(1)
	require.NoError(t, err)

	count, _ := n.Param("count")
	assert.Equal(t, domain.IntValue(3), count)
	scale, _ := n.Param("scale")
	assert.Equal(t, domain.FloatValue(1.5), scale)
	enabled, _ := n.Param("enabled")
	assert.Equal(t, domain.BoolValue(false), enabled)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing kind",
			content: `
nodes:
  - id: 1
`,
		},
		{
			name: "duplicate node id",
			content: `
nodes:
  - id: 1
    kind: merge
  - id: 1
    kind: merge
`,
		},
		{
			name: "connection to unknown node",
			content: `
nodes:
  - id: 1
    kind: merge
    inputs: 1
connections:
  - from: 9
    to: 1
`,
		},
		{
			name: "port out of range",
			content: `
nodes:
  - id: 1
    kind: merge
  - id: 2
    kind: merge
    inputs: 1
connections:
  - from: 1
    from_port: 4
    to: 2
`,
		},
		{
			name: "unsupported param type",
			content: `
nodes:
  - id: 1
    kind: merge
    params:
      bad: [1, 2]
`,
		},
		{
			name:    "not yaml",
			content: `{{{`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeScene(t, tt.content))
			require.Error(t, err)
		})
	}
}

func TestLoad_FileMissing(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
