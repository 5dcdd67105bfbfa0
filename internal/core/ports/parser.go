package ports

import (
	"strings"

	"go.trai.ch/xlgraph/internal/core/domain"
)

// SheetBounds returns the used extent of the named sheet. A sheet the
// workbook does not have reports a zero extent and no error.
type SheetBounds func(sheet string) (domain.Sheet, error)

// StaticBounds serves extents from sheets that were already listed.
func StaticBounds(sheets []domain.Sheet) SheetBounds {
	byName := make(map[string]domain.Sheet, len(sheets))
	for _, s := range sheets {
		byName[strings.ToLower(s.Name)] = s
	}
	return func(sheet string) (domain.Sheet, error) {
		return byName[strings.ToLower(sheet)], nil
	}
}

// ParseScope carries the workbook facts reference expansion needs.
type ParseScope struct {
	// Sheet is the sheet holding the formula; unqualified references resolve to it.
	Sheet string
	// Bounds bounds whole-column and whole-row ranges. It is called only when
	// the formula holds one. Nil treats every sheet as empty.
	Bounds SheetBounds
	// MaxRangeCells caps range expansion. Larger ranges are skipped. Zero means no cap.
	MaxRangeCells int
}

// ParseResult is the output of reference extraction for one formula.
type ParseResult struct {
	// References are the distinct cells the formula reads, ranges expanded.
	References []domain.CellReference
	// Skipped holds the reference tokens that could not be resolved to cells.
	Skipped []string
}

// Unparsed returns the number of skipped reference tokens.
func (r ParseResult) Unparsed() int {
	return len(r.Skipped)
}

// ReferenceParser extracts cell references from formula text.
//
//go:generate mockgen -source=parser.go -destination=mocks/mock_parser.go -package=mocks
type ReferenceParser interface {
	// Parse returns the cells formula reads.
	Parse(formula string, scope ParseScope) ParseResult
}
