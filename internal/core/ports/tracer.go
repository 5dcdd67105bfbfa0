package ports

import (
	"context"

	"go.trai.ch/xlgraph/internal/core/domain"
)

// TraceRequest is a single trace query against a workbook.
type TraceRequest struct {
	Workbook  string
	Cell      domain.CellReference
	Direction domain.Direction
	Depth     int
	Mode      domain.Mode
}

// BuildOptions tune a forced rebuild.
type BuildOptions struct {
	Progress domain.ProgressFunc
}

// DependencyTracer is the analysis surface exposed to the application layer.
//
//go:generate mockgen -source=tracer.go -destination=mocks/mock_tracer.go -package=mocks
type DependencyTracer interface {
	// Trace answers a trace request using the engine selected by req.Mode.
	Trace(ctx context.Context, cfg *domain.Config, req TraceRequest) (*domain.DependencyTree, error)

	// Build rebuilds the full graph for a workbook and stores it.
	Build(ctx context.Context, cfg *domain.Config, workbook string, opts BuildOptions) (*domain.BuildReport, error)

	// Status describes the cache entry for a workbook.
	Status(ctx context.Context, cfg *domain.Config, workbook string) (*domain.CacheStatus, error)

	// Invalidate drops the cached and in-memory graph for a workbook.
	Invalidate(ctx context.Context, cfg *domain.Config, workbook string) error
}
