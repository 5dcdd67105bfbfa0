package ondemand

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/xlgraph/internal/adapters/logger"
	"go.trai.ch/xlgraph/internal/adapters/refparser"
	"go.trai.ch/xlgraph/internal/adapters/telemetry"
	"go.trai.ch/xlgraph/internal/core/ports"
)

// NodeID is the unique identifier for the on-demand tracer Graft node.
const NodeID graft.ID = "engine.ondemand"

func init() {
	graft.Register(graft.Node[*Tracer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{refparser.NodeID, logger.NodeID, telemetry.NodeID},
		Run: func(ctx context.Context) (*Tracer, error) {
			parser, err := graft.Dep[ports.ReferenceParser](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			return New(parser, log, tracer), nil
		},
	})
}
