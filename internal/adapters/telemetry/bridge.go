package telemetry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/xlgraph/internal/core/ports"
)

// Bridge implements sdktrace.SpanProcessor by writing finished spans to the
// debug log, so `--verbose` shows where build and trace time went.
type Bridge struct {
	logger ports.Logger
}

// NewBridge returns a new Bridge.
func NewBridge(logger ports.Logger) *Bridge {
	return &Bridge{logger: logger}
}

var _ sdktrace.SpanProcessor = (*Bridge)(nil)

// OnStart is called when a span starts.
func (b *Bridge) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd logs the span name, duration and attributes.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil || !s.SpanContext().IsValid() {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "span %s took %s", s.Name(), s.EndTime().Sub(s.StartTime()).Round(time.Microsecond))
	for _, kv := range s.Attributes() {
		fmt.Fprintf(&sb, " %s=%s", kv.Key, kv.Value.Emit())
	}
	if s.Status().Code == codes.Error {
		fmt.Fprintf(&sb, " error=%q", s.Status().Description)
	}

	b.logger.Debug(sb.String())
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(context.Context) error { return nil }

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(context.Context) error { return nil }

// NewProvider returns an SDK provider that reports spans through the bridge.
func NewProvider(logger ports.Logger) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithSpanProcessor(NewBridge(logger)),
	)
}
