package tracer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/xlgraph/internal/adapters/annotations"
	"go.trai.ch/xlgraph/internal/adapters/excel"
	"go.trai.ch/xlgraph/internal/adapters/logger"
	"go.trai.ch/xlgraph/internal/adapters/metrics"
	"go.trai.ch/xlgraph/internal/adapters/telemetry"
	"go.trai.ch/xlgraph/internal/core/ports"
	"go.trai.ch/xlgraph/internal/engine/builder"
	"go.trai.ch/xlgraph/internal/engine/cachemgr"
	"go.trai.ch/xlgraph/internal/engine/ondemand"
)

// NodeID is the unique identifier for the dependency tracer Graft node.
const NodeID graft.ID = "engine.dependency_tracer"

func init() {
	graft.Register(graft.Node[ports.DependencyTracer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			excel.NodeID,
			builder.NodeID,
			ondemand.NodeID,
			cachemgr.NodeID,
			annotations.NodeID,
			metrics.NodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: runNode,
	})
}

func runNode(ctx context.Context) (ports.DependencyTracer, error) {
	opener, err := graft.Dep[ports.WorkbookOpener](ctx)
	if err != nil {
		return nil, err
	}
	b, err := graft.Dep[*builder.Builder](ctx)
	if err != nil {
		return nil, err
	}
	od, err := graft.Dep[*ondemand.Tracer](ctx)
	if err != nil {
		return nil, err
	}
	cache, err := graft.Dep[*cachemgr.Manager](ctx)
	if err != nil {
		return nil, err
	}
	source, err := graft.Dep[ports.AnnotationSource](ctx)
	if err != nil {
		return nil, err
	}
	m, err := graft.Dep[*metrics.Prometheus](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	spans, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}
	return New(opener, b, od, cache, source, m, log, spans), nil
}
