// Package fs implements the resource port over the local filesystem.
package fs

import (
	"os"
	"path/filepath"

	"go.trai.ch/zerr"

	"github.com/nodalhq/nodal/internal/core/domain"
	"github.com/nodalhq/nodal/internal/core/ports"
)

var _ ports.Resources = (*Resources)(nil)

// Resources reads external resources from disk. Only ingestion stages go
// through it; the caches never touch the filesystem.
type Resources struct{}

// NewResources creates a filesystem-backed resource adapter.
func NewResources() *Resources {
	return &Resources{}
}

// Exists reports whether the resource is present.
func (r *Resources) Exists(path string) bool {
	_, err := os.Stat(filepath.Clean(path))
	return err == nil
}

// Stat returns the resource's metadata. Missing or unreadable resources
// surface as domain.ErrResourceUnavailable so callers can keep "resource
// broken" distinct from "cache miss".
func (r *Resources) Stat(path string) (ports.ResourceInfo, error) {
	info, err := os.Stat(filepath.Clean(path))
	if err != nil {
		return ports.ResourceInfo{}, zerr.With(
			zerr.Wrap(domain.ErrResourceUnavailable, err.Error()),
			"path", path,
		)
	}
	return ports.ResourceInfo{
		ModTime: info.ModTime(),
		Size:    info.Size(),
	}, nil
}

// Read returns the resource's content.
func (r *Resources) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Clean(path)) //nolint:gosec // Path is provided by the scene author
	if err != nil {
		return nil, zerr.With(
			zerr.Wrap(domain.ErrResourceUnavailable, err.Error()),
			"path", path,
		)
	}
	return data, nil
}
