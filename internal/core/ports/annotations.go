package ports

import (
	"context"

	"go.trai.ch/xlgraph/internal/core/domain"
)

// AnnotationSource provides read-only access to range annotations.
//
//go:generate mockgen -source=annotations.go -destination=mocks/mock_annotations.go -package=mocks
type AnnotationSource interface {
	// Lookup returns the annotations whose range intersects target.
	Lookup(ctx context.Context, path string, target domain.CellRange) ([]domain.Annotation, error)

	// Exists reports whether an annotation store is present at path.
	Exists(path string) bool
}
