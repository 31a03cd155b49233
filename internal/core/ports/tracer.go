package ports

import "context"

// Span is a single traced operation.
type Span interface {
	End()
	SetAttribute(key string, value any)
	RecordError(err error)
}

// Tracer creates spans around node and stage evaluation.
type Tracer interface {
	Start(ctx context.Context, name string) (context.Context, Span)
}
