package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	dir := t.TempDir()
	dataPath := filepath.Join(dir, "robot.usda")
	require.NoError(t, os.WriteFile(dataPath, []byte("mesh body\n"), 0o600))

	scenePath := filepath.Join(dir, "scene.yaml")
	content := `
version: "1"
nodes:
  - id: 1
    kind: scene_source
    params:
      path: ` + dataPath + `
`
	require.NoError(t, os.WriteFile(scenePath, []byte(content), 0o600))

	tests := []struct {
		name         string
		args         []string
		expectedExit int
	}{
		{
			name:         "valid scene",
			args:         []string{"nodal", "run", "--scene", scenePath, "1"},
			expectedExit: 0,
		},
		{
			name:         "missing scene file",
			args:         []string{"nodal", "run", "--scene", filepath.Join(dir, "absent.yaml"), "1"},
			expectedExit: 1,
		},
		{
			name:         "unknown target",
			args:         []string{"nodal", "run", "--scene", scenePath, "42"},
			expectedExit: 1,
		},
		{
			name:         "version",
			args:         []string{"nodal", "version"},
			expectedExit: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			assert.Equal(t, tt.expectedExit, run())
		})
	}
}
