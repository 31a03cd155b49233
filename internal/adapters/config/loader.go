// Package config provides the YAML scene loader for nodal.
package config

import (
	"fmt"
	"os"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"github.com/nodalhq/nodal/internal/core/domain"
	"github.com/nodalhq/nodal/internal/core/ports"
)

// FileSceneLoader implements ports.SceneLoader using a YAML file.
type FileSceneLoader struct {
	log ports.Logger
}

var _ ports.SceneLoader = (*FileSceneLoader)(nil)

// NewLoader creates a scene loader.
func NewLoader(log ports.Logger) *FileSceneLoader {
	return &FileSceneLoader{log: log}
}

// Load reads the scene file at the given path and builds the graph.
func (l *FileSceneLoader) Load(path string) (*domain.Graph, error) {
	g, err := Load(path)
	if err != nil {
		return nil, err
	}
	l.log.Info(fmt.Sprintf("loaded scene %s with %d nodes", path, g.NodeCount()))
	return g, nil
}

// SceneFile represents the structure of a scene YAML file.
type SceneFile struct {
	Version     string          `yaml:"version"`
	Nodes       []NodeDTO       `yaml:"nodes"`
	Connections []ConnectionDTO `yaml:"connections"`
}

// NodeDTO represents a node definition in the scene file.
type NodeDTO struct {
	ID      int64          `yaml:"id"`
	Kind    string         `yaml:"kind"`
	Inputs  int            `yaml:"inputs"`
	Outputs *int           `yaml:"outputs"`
	Params  map[string]any `yaml:"params"`
}

// ConnectionDTO represents an edge definition in the scene file.
type ConnectionDTO struct {
	From     int64 `yaml:"from"`
	FromPort int   `yaml:"from_port"`
	To       int64 `yaml:"to"`
	ToPort   int   `yaml:"to_port"`
}

// Load reads a scene file from the given path and returns a domain.Graph.
func Load(path string) (*domain.Graph, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read scene file")
	}

	var scene SceneFile
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return nil, zerr.Wrap(err, "failed to parse scene file")
	}

	g := domain.NewGraph()
	for _, dto := range scene.Nodes {
		if dto.Kind == "" {
			return nil, zerr.With(zerr.New("node has no kind"), "node_id", fmt.Sprint(dto.ID))
		}

		n := &domain.Node{
			ID:      domain.NodeID(dto.ID),
			Kind:    dto.Kind,
			Inputs:  dto.Inputs,
			Outputs: 1,
		}
		if dto.Outputs != nil {
			n.Outputs = *dto.Outputs
		}
		for name, raw := range dto.Params {
			v, err := paramValue(raw)
			if err != nil {
				return nil, zerr.With(zerr.With(err, "node_id", fmt.Sprint(dto.ID)), "param", name)
			}
			n.SetParam(name, v)
		}

		if err := g.AddNode(n); err != nil {
			return nil, err
		}
	}

	for _, dto := range scene.Connections {
		err := g.Connect(domain.Connection{
			From:     domain.NodeID(dto.From),
			FromPort: dto.FromPort,
			To:       domain.NodeID(dto.To),
			ToPort:   dto.ToPort,
		})
		if err != nil {
			return nil, err
		}
	}

	return g, nil
}

// paramValue converts a YAML scalar to a typed parameter value.
func paramValue(raw any) (domain.Value, error) {
	switch v := raw.(type) {
	case string:
		return domain.StringValue(v), nil
	case int:
		return domain.IntValue(int64(v)), nil
	case int64:
		return domain.IntValue(v), nil
	case float64:
		return domain.FloatValue(v), nil
	case bool:
		return domain.BoolValue(v), nil
	default:
		return domain.Value{}, zerr.With(zerr.New("unsupported parameter type"), "type", fmt.Sprintf("%T", raw))
	}
}
