package graphstore

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/xlgraph/internal/adapters/logger"
	"go.trai.ch/xlgraph/internal/core/ports"
)

// NodeID is the unique identifier for the graph store factory Graft node.
const NodeID graft.ID = "adapter.graph_store_factory"

func init() {
	graft.Register(graft.Node[ports.GraphStoreFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.GraphStoreFactory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(log), nil
		},
	})
}
