package telemetry

import (
	"context"

	"github.com/nodalhq/nodal/internal/core/ports"
)

// NoopTracer discards all spans. Used in tests and when tracing is off.
type NoopTracer struct{}

// NewNoopTracer creates a tracer that records nothing.
func NewNoopTracer() *NoopTracer {
	return &NoopTracer{}
}

// Start returns the context unchanged and a span that does nothing.
func (NoopTracer) Start(ctx context.Context, _ string) (context.Context, ports.Span) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End()                     {}
func (noopSpan) SetAttribute(string, any) {}
func (noopSpan) RecordError(error)        {}

// NoopTelemetry discards all progress vertices.
type NoopTelemetry struct{}

// NewNoopTelemetry creates a telemetry sink that records nothing.
func NewNoopTelemetry() *NoopTelemetry {
	return &NoopTelemetry{}
}

// Record returns the context unchanged and a vertex that does nothing.
func (NoopTelemetry) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, noopVertex{}
}

// Close is a no-op.
func (NoopTelemetry) Close() error { return nil }

type noopVertex struct{}

func (noopVertex) Cached()    {}
func (noopVertex) Done(error) {}
