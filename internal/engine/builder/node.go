package builder

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/xlgraph/internal/adapters/hasher"
	"go.trai.ch/xlgraph/internal/adapters/logger"
	"go.trai.ch/xlgraph/internal/adapters/refparser"
	"go.trai.ch/xlgraph/internal/adapters/telemetry"
	"go.trai.ch/xlgraph/internal/core/ports"
	"go.trai.ch/xlgraph/internal/engine/scan"
)

// NodeID is the unique identifier for the graph builder Graft node.
const NodeID graft.ID = "engine.builder"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{refparser.NodeID, hasher.NodeID, scan.NodeID, logger.NodeID, telemetry.NodeID},
		Run: func(ctx context.Context) (*Builder, error) {
			parser, err := graft.Dep[ports.ReferenceParser](ctx)
			if err != nil {
				return nil, err
			}
			h, err := graft.Dep[ports.FormulaHasher](ctx)
			if err != nil {
				return nil, err
			}
			scanner, err := graft.Dep[*scan.Scanner](ctx)
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
			return New(parser, h, scanner, log, tracer), nil
		},
	})
}
