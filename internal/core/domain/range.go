package domain

import (
	"iter"
	"strings"
)

// CellRange is an inclusive rectangular block of cells on one sheet.
type CellRange struct {
	Sheet    string
	StartCol int
	StartRow int
	EndCol   int
	EndRow   int
}

// ParseCellRange parses "Sheet!A1:B10", "A1:B10" or a single cell "Sheet!C3".
// Corners may be given in any order; the result is normalized.
func ParseCellRange(s, defaultSheet string) (CellRange, error) {
	s = strings.TrimSpace(s)
	sheet := defaultSheet
	if i := strings.LastIndex(s, "!"); i >= 0 {
		sheet = unquoteSheet(strings.TrimSpace(s[:i]))
		s = s[i+1:]
	}
	if sheet == "" {
		return CellRange{}, With(ErrInvalidCellReference, "range", s)
	}

	first, last, found := strings.Cut(strings.ReplaceAll(s, "$", ""), ":")
	if !found {
		last = first
	}

	c1, r1, err := SplitAddress(strings.ToUpper(first))
	if err != nil {
		return CellRange{}, err
	}
	c2, r2, err := SplitAddress(strings.ToUpper(last))
	if err != nil {
		return CellRange{}, err
	}

	return CellRange{
		Sheet:    sheet,
		StartCol: min(c1, c2),
		StartRow: min(r1, r2),
		EndCol:   max(c1, c2),
		EndRow:   max(r1, r2),
	}, nil
}

// RangeOf returns the single-cell range covering ref.
func RangeOf(ref CellReference) CellRange {
	col, row := ref.Coordinates()
	return CellRange{Sheet: ref.Sheet, StartCol: col, StartRow: row, EndCol: col, EndRow: row}
}

// Size returns the number of cells in the range.
func (r CellRange) Size() int {
	return (r.EndCol - r.StartCol + 1) * (r.EndRow - r.StartRow + 1)
}

// Contains reports whether ref lies inside the range.
func (r CellRange) Contains(ref CellReference) bool {
	if !strings.EqualFold(r.Sheet, ref.Sheet) {
		return false
	}
	col, row := ref.Coordinates()
	return col >= r.StartCol && col <= r.EndCol && row >= r.StartRow && row <= r.EndRow
}

// Encloses reports whether o lies entirely inside r.
func (r CellRange) Encloses(o CellRange) bool {
	return strings.EqualFold(r.Sheet, o.Sheet) &&
		o.StartCol >= r.StartCol && o.EndCol <= r.EndCol &&
		o.StartRow >= r.StartRow && o.EndRow <= r.EndRow
}

// Overlaps reports whether the two ranges share at least one cell.
func (r CellRange) Overlaps(o CellRange) bool {
	return strings.EqualFold(r.Sheet, o.Sheet) &&
		r.StartCol <= o.EndCol && o.StartCol <= r.EndCol &&
		r.StartRow <= o.EndRow && o.StartRow <= r.EndRow
}

// Cells yields every cell of the range in row-major order.
func (r CellRange) Cells() iter.Seq[CellReference] {
	return func(yield func(CellReference) bool) {
		for row := r.StartRow; row <= r.EndRow; row++ {
			for col := r.StartCol; col <= r.EndCol; col++ {
				if !yield(CellReference{Sheet: r.Sheet, Address: CellAddress(col, row)}) {
					return
				}
			}
		}
	}
}

// String renders the range in workbook notation.
func (r CellRange) String() string {
	start := CellAddress(r.StartCol, r.StartRow)
	end := CellAddress(r.EndCol, r.EndRow)
	if start == end {
		return QuoteSheet(r.Sheet) + "!" + start
	}
	return QuoteSheet(r.Sheet) + "!" + start + ":" + end
}
