// Package refparser extracts cell references from formula text.
package refparser

import (
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/efp"
	"go.trai.ch/xlgraph/internal/core/domain"
	"go.trai.ch/xlgraph/internal/core/ports"
)

// Parser implements ports.ReferenceParser on top of the efp tokenizer.
// It holds no state and is safe for concurrent use.
type Parser struct{}

// New creates a new Parser.
func New() *Parser {
	return &Parser{}
}

// dynamic lists the functions whose target is computed at evaluation time.
var dynamic = map[string]bool{"INDIRECT": true, "OFFSET": true}

// Parse tokenizes formula and resolves every range operand to cells.
// Operands that do not name cells on a sheet of this workbook (defined names,
// external links, 3D references, oversized ranges) are reported in Skipped,
// as are calls to INDIRECT and OFFSET.
func (p *Parser) Parse(formula string, scope ports.ParseScope) ports.ParseResult {
	formula = domain.NormalizeFormula(formula)
	if formula == "" {
		return ports.ParseResult{}
	}

	ps := efp.ExcelParser()
	tokens := ps.Parse(formula)

	var result ports.ParseResult
	seen := make(map[domain.CellKey]struct{})
	for _, token := range tokens {
		switch {
		case token.TType == efp.TokenTypeOperand && token.TSubType == efp.TokenSubTypeRange:
			cells, ok := p.resolve(token.TValue, scope)
			if !ok {
				result.Skipped = append(result.Skipped, token.TValue)
				continue
			}
			for _, ref := range cells {
				if _, dup := seen[ref.Key()]; dup {
					continue
				}
				seen[ref.Key()] = struct{}{}
				result.References = append(result.References, ref)
			}
		case token.TType == efp.TokenTypeFunction && token.TSubType == efp.TokenSubTypeStart:
			if name := strings.ToUpper(token.TValue); dynamic[name] {
				result.Skipped = append(result.Skipped, name)
			}
		case token.TType == efp.TokenTypeUnknown:
			result.Skipped = append(result.Skipped, token.TValue)
		}
	}

	slices.SortFunc(result.References, domain.CellReference.Compare)
	return result
}

// resolve expands one range operand. The tokenizer has already removed sheet
// quoting, so the sheet is everything before the last "!".
func (p *Parser) resolve(text string, scope ports.ParseScope) ([]domain.CellReference, bool) {
	sheet, addr := scope.Sheet, text
	if i := strings.LastIndex(text, "!"); i >= 0 {
		sheet, addr = text[:i], text[i+1:]
	}
	if sheet == "" || strings.ContainsAny(sheet, "[]:") {
		return nil, false
	}

	addr = strings.ToUpper(strings.ReplaceAll(addr, "$", ""))
	first, last, isRange := strings.Cut(addr, ":")
	if !isRange {
		ref, err := domain.NewCellReference(sheet, first)
		if err != nil {
			return nil, false
		}
		return []domain.CellReference{ref}, true
	}

	r, ok := span(sheet, first, last, scope.Bounds)
	if !ok {
		return nil, false
	}
	if r == (domain.CellRange{}) {
		// Whole-column or whole-row range over an empty sheet.
		return nil, true
	}
	if scope.MaxRangeCells > 0 && r.Size() > scope.MaxRangeCells {
		return nil, false
	}

	cells := make([]domain.CellReference, 0, r.Size())
	for ref := range r.Cells() {
		cells = append(cells, ref)
	}
	return cells, true
}

// span builds the rectangle for "A1:B2", "A:C" or "1:3". Whole-column and
// whole-row ranges are clipped to the sheet's used extent, which is looked up
// only for them.
func span(sheet, first, last string, bounds ports.SheetBounds) (domain.CellRange, bool) {
	if r, err := domain.ParseCellRange(first+":"+last, sheet); err == nil {
		return r, true
	}

	if c1, err := domain.ColumnNumber(first); err == nil {
		c2, err := domain.ColumnNumber(last)
		if err != nil {
			return domain.CellRange{}, false
		}
		extent, ok := lookup(bounds, sheet)
		if !ok {
			return domain.CellRange{}, false
		}
		if extent.Rows == 0 {
			return domain.CellRange{}, true
		}
		return domain.CellRange{
			Sheet:    sheet,
			StartCol: min(c1, c2),
			StartRow: 1,
			EndCol:   max(c1, c2),
			EndRow:   extent.Rows,
		}, true
	}

	r1, ok1 := rowNumber(first)
	r2, ok2 := rowNumber(last)
	if !ok1 || !ok2 {
		return domain.CellRange{}, false
	}
	extent, ok := lookup(bounds, sheet)
	if !ok {
		return domain.CellRange{}, false
	}
	if extent.Cols == 0 {
		return domain.CellRange{}, true
	}
	return domain.CellRange{
		Sheet:    sheet,
		StartCol: 1,
		StartRow: min(r1, r2),
		EndCol:   extent.Cols,
		EndRow:   max(r1, r2),
	}, true
}

func lookup(bounds ports.SheetBounds, sheet string) (domain.Sheet, bool) {
	if bounds == nil {
		return domain.Sheet{}, true
	}
	extent, err := bounds(sheet)
	return extent, err == nil
}

func rowNumber(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > domain.MaxRows || strings.ContainsAny(s, "+-") {
		return 0, false
	}
	return n, true
}
