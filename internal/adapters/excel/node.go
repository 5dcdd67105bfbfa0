package excel

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/xlgraph/internal/core/ports"
)

// NodeID is the unique identifier for the workbook opener Graft node.
const NodeID graft.ID = "adapter.workbook_opener"

func init() {
	graft.Register(graft.Node[ports.WorkbookOpener]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.WorkbookOpener, error) {
			return NewOpener(), nil
		},
	})
}
