package ports

import (
	"context"

	"go.trai.ch/xlgraph/internal/core/domain"
)

// GraphStore persists cache entries keyed by workbook identity.
//
//go:generate mockgen -source=graph_store.go -destination=mocks/mock_graph_store.go -package=mocks
type GraphStore interface {
	// Get retrieves the entry for a workbook.
	// Returns nil, nil if not found.
	Get(ctx context.Context, identity string) (*domain.CacheEntry, error)

	// Put stores an entry, replacing any previous one for the same workbook.
	Put(ctx context.Context, entry *domain.CacheEntry) error

	// Delete removes the entry for a workbook. Deleting a missing entry is not an error.
	Delete(ctx context.Context, identity string) error

	// Close releases the store.
	Close() error
}

// GraphStoreFactory opens the store configured for a workbook directory.
type GraphStoreFactory interface {
	// Open returns a store rooted at the given cache location.
	Open(backend, location string) (GraphStore, error)
}
