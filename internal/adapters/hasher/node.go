package hasher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/xlgraph/internal/core/ports"
)

// NodeID is the unique identifier for the formula hasher Graft node.
const NodeID graft.ID = "adapter.formula_hasher"

func init() {
	graft.Register(graft.Node[ports.FormulaHasher]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FormulaHasher, error) {
			return New(), nil
		},
	})
}
