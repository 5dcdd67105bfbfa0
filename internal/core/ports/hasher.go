package ports

import "go.trai.ch/xlgraph/internal/core/domain"

// FormulaHasher computes the content half of a workbook fingerprint.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type FormulaHasher interface {
	// HashFormulas returns a stable digest over the given formula cells.
	// The result does not depend on the order of cells.
	HashFormulas(cells []domain.Cell) string
}
