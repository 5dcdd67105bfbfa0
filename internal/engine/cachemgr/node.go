package cachemgr

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/xlgraph/internal/adapters/graphstore"
	"go.trai.ch/xlgraph/internal/adapters/hasher"
	"go.trai.ch/xlgraph/internal/adapters/logger"
	"go.trai.ch/xlgraph/internal/core/ports"
	"go.trai.ch/xlgraph/internal/engine/scan"
)

// NodeID is the unique identifier for the cache manager Graft node.
const NodeID graft.ID = "engine.cache_manager"

func init() {
	graft.Register(graft.Node[*Manager]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{graphstore.NodeID, hasher.NodeID, scan.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Manager, error) {
			factory, err := graft.Dep[ports.GraphStoreFactory](ctx)
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
			return New(factory, h, scanner, log), nil
		},
	})
}
