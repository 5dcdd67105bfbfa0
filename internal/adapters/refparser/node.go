package refparser

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/xlgraph/internal/core/ports"
)

// NodeID is the unique identifier for the reference parser Graft node.
const NodeID graft.ID = "adapter.reference_parser"

func init() {
	graft.Register(graft.Node[ports.ReferenceParser]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ReferenceParser, error) {
			return New(), nil
		},
	})
}
