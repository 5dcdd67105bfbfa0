package domain

import (
	"strings"
	"time"
)

// Sheet describes one worksheet and the extent of its used area.
type Sheet struct {
	Name string
	Rows int
	Cols int
}

// Bounds returns the used area of the sheet as a range, or false when empty.
func (s Sheet) Bounds() (CellRange, bool) {
	if s.Rows == 0 || s.Cols == 0 {
		return CellRange{}, false
	}
	return CellRange{Sheet: s.Name, StartCol: 1, StartRow: 1, EndCol: s.Cols, EndRow: s.Rows}, true
}

// RowRange is an inclusive, 1-based span of rows.
type RowRange struct {
	First int
	Last  int
}

// Len returns the number of rows covered.
func (r RowRange) Len() int {
	if r.Last < r.First {
		return 0
	}
	return r.Last - r.First + 1
}

// Batches splits rows 1..total into contiguous ranges of at most size rows.
func Batches(total, size int) []RowRange {
	if total <= 0 {
		return nil
	}
	if size <= 0 {
		size = total
	}
	out := make([]RowRange, 0, (total+size-1)/size)
	for first := 1; first <= total; first += size {
		out = append(out, RowRange{First: first, Last: min(first+size-1, total)})
	}
	return out
}

// Cell is a cell as read from a workbook. Formula is empty for constants.
type Cell struct {
	Reference CellReference
	Formula   string
	Value     CellValue
}

// HasFormula reports whether the cell holds a formula.
func (c Cell) HasFormula() bool {
	return c.Formula != ""
}

// FileIdentity identifies a workbook on disk.
type FileIdentity struct {
	Path    string
	ModTime time.Time
}

// NormalizeFormula strips surrounding whitespace and one leading "=".
func NormalizeFormula(f string) string {
	f = strings.TrimSpace(f)
	return strings.TrimPrefix(f, "=")
}
