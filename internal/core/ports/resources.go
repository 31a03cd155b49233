package ports

import "time"

// ResourceInfo is the metadata an external fingerprint is derived from.
// Content is never part of it: hashing file contents on every edit would
// defeat the ingestion cache.
type ResourceInfo struct {
	ModTime time.Time
	Size    int64
}

// Resources provides access to external resources (files). Used only by
// ingestion stages, never by the caches themselves.
//
//go:generate go run go.uber.org/mock/mockgen -source=resources.go -destination=mocks/mock_resources.go -package=mocks
type Resources interface {
	// Exists reports whether the resource is present.
	Exists(path string) bool

	// Stat returns the resource's metadata. It returns an error wrapping
	// domain.ErrResourceUnavailable if the resource is missing or its
	// metadata cannot be read.
	Stat(path string) (ResourceInfo, error)

	// Read returns the resource's content.
	Read(path string) ([]byte, error)
}
