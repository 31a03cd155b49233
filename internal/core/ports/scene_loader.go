package ports

import "github.com/nodalhq/nodal/internal/core/domain"

// SceneLoader reads a scene description and builds the node graph.
type SceneLoader interface {
	Load(path string) (*domain.Graph, error)
}
