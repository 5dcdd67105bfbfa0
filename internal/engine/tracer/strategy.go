package tracer

import (
	"context"

	"go.trai.ch/xlgraph/internal/core/domain"
	"go.trai.ch/xlgraph/internal/core/ports"
	"go.trai.ch/xlgraph/internal/engine/traversal"
)

// fullGraph answers traces from a complete, possibly cached, graph.
type fullGraph struct{ s *Service }

// Trace acquires a current snapshot under the workbook lock and walks it
// after the lock is released. A concurrent rebuild swaps in a new snapshot
// without disturbing this walk.
func (f fullGraph) Trace(ctx context.Context, cfg *domain.Config, req ports.TraceRequest) (*domain.DependencyTree, error) {
	snap, err := f.snapshot(ctx, cfg, req.Workbook)
	if err != nil {
		return nil, err
	}
	return traversal.Trace(snap.graph, req.Cell, req.Direction, req.Depth)
}

func (f fullGraph) snapshot(ctx context.Context, cfg *domain.Config, path string) (*snapshot, error) {
	wb, identity, err := f.s.acquire(path)
	if err != nil {
		return nil, err
	}
	defer wb.lock.Unlock()

	conn, err := f.s.opener.Open(ctx, identity)
	if err != nil {
		return nil, err
	}
	defer func() { _ = conn.Close() }()

	return f.s.current(ctx, cfg, wb, conn)
}

// onDemand answers upstream traces by reading only the visited cells.
type onDemand struct{ s *Service }

func (o onDemand) Trace(ctx context.Context, cfg *domain.Config, req ports.TraceRequest) (*domain.DependencyTree, error) {
	if req.Direction != domain.DirectionPrecedents {
		return nil, domain.With(domain.ErrUnsupportedDirection, "direction", string(req.Direction))
	}

	wb, identity, err := o.s.acquire(req.Workbook)
	if err != nil {
		return nil, err
	}
	defer wb.lock.Unlock()

	conn, err := o.s.opener.Open(ctx, identity)
	if err != nil {
		return nil, err
	}
	defer func() { _ = conn.Close() }()

	return o.s.ondemand.Trace(ctx, conn, req.Cell, req.Direction, req.Depth, cfg.Build)
}
