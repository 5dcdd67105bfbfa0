// Package hasher computes content fingerprints over workbook formulas.
package hasher

import (
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/xlgraph/internal/core/domain"
)

// Hasher implements ports.FormulaHasher using xxHash.
type Hasher struct{}

// New creates a new Hasher.
func New() *Hasher {
	return &Hasher{}
}

// HashFormulas digests the (cell, formula) pairs of cells in a canonical order,
// so two scans of the same workbook agree regardless of read order.
// Cells without a formula do not contribute.
func (h *Hasher) HashFormulas(cells []domain.Cell) string {
	entries := make([]string, 0, len(cells))
	for _, c := range cells {
		if !c.HasFormula() {
			continue
		}
		entries = append(entries, c.Reference.Key().String()+"\x00"+domain.NormalizeFormula(c.Formula))
	}
	slices.Sort(entries)

	digest := xxhash.New()
	for _, e := range entries {
		_, _ = digest.WriteString(e)
		_, _ = digest.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", digest.Sum64())
}
