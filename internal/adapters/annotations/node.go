package annotations

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/xlgraph/internal/adapters/logger"
	"go.trai.ch/xlgraph/internal/core/ports"
)

// NodeID is the unique identifier for the annotation source Graft node.
const NodeID graft.ID = "adapter.annotations"

func init() {
	graft.Register(graft.Node[ports.AnnotationSource]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.AnnotationSource, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(log), nil
		},
	})
}
