package scan

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/xlgraph/internal/adapters/logger"
	"go.trai.ch/xlgraph/internal/adapters/telemetry"
	"go.trai.ch/xlgraph/internal/core/ports"
)

// NodeID is the unique identifier for the batch scanner Graft node.
const NodeID graft.ID = "engine.scanner"

func init() {
	graft.Register(graft.Node[*Scanner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, telemetry.NodeID},
		Run: func(ctx context.Context) (*Scanner, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			return New(log, tracer), nil
		},
	})
}
