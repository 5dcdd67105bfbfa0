package telemetry

import (
	"context"

	"go.trai.ch/xlgraph/internal/core/ports"
)

// NoOpTracer discards all spans.
type NoOpTracer struct{}

// NewNoOpTracer returns a tracer that records nothing.
func NewNoOpTracer() NoOpTracer { return NoOpTracer{} }

// Start returns ctx unchanged and a span that ignores every call.
func (NoOpTracer) Start(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End()                            {}
func (noopSpan) RecordError(error)               {}
func (noopSpan) SetAttribute(string, any)        {}
func (noopSpan) AddEvent(string, map[string]any) {}
