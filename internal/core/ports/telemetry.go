package ports

import "context"

// Vertex is one unit of progress, typically a node evaluation.
type Vertex interface {
	// Cached marks the vertex as satisfied from cache.
	Cached()
	// Done completes the vertex, recording the error if non-nil.
	Done(err error)
}

// Telemetry records evaluation progress for user-facing output.
type Telemetry interface {
	// Record starts a new vertex with the given display name.
	Record(ctx context.Context, name string) (context.Context, Vertex)
	// Close flushes and closes the recording session.
	Close() error
}

type vertexKey struct{}

// ContextWithVertex returns a context carrying the given vertex.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexKey{}, v)
}

// VertexFromContext returns the vertex carried by the context, if any.
func VertexFromContext(ctx context.Context) (Vertex, bool) {
	v, ok := ctx.Value(vertexKey{}).(Vertex)
	return v, ok
}
