// Package excel connects to .xlsx workbooks through excelize.
package excel

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.trai.ch/xlgraph/internal/core/domain"
	"go.trai.ch/xlgraph/internal/core/ports"
	"go.trai.ch/zerr"
)

// Opener implements ports.WorkbookOpener for files on disk.
type Opener struct{}

// NewOpener creates a new Opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open loads the workbook at path.
func (o *Opener) Open(ctx context.Context, path string) (ports.WorkbookConnection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFailedToResolvePath.Error()), "path", path)
	}

	f, err := excelize.OpenFile(abs)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrWorkbookOpenFailed, err), "path", abs)
	}

	return &Connection{
		path:    abs,
		file:    f,
		extents: make(map[string]domain.Sheet),
		cursors: make(map[string]*cursor),
	}, nil
}

// Connection is an open workbook. It is not safe for concurrent use.
// A sheet's cells are only loaded once something asks for that sheet.
type Connection struct {
	path   string
	file   *excelize.File
	closed bool

	// extents and cursors are keyed by lower-cased sheet name.
	extents map[string]domain.Sheet
	cursors map[string]*cursor
}

// cursor streams the rows of one sheet so consecutive batches do not rescan it.
type cursor struct {
	rows *excelize.Rows
	// next is the 1-based row the following Next call yields.
	next int
	done bool
}

// ListSheets returns every worksheet in workbook order with its used extent.
func (c *Connection) ListSheets(ctx context.Context) ([]domain.Sheet, error) {
	if err := c.check(ctx); err != nil {
		return nil, err
	}

	names := c.file.GetSheetList()
	sheets := make([]domain.Sheet, 0, len(names))
	for _, name := range names {
		sheet, err := c.SheetExtent(ctx, name)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

// SheetExtent returns the used extent of one sheet. The extent comes from the
// sheet's stored dimension when it has one, otherwise from streaming its rows.
func (c *Connection) SheetExtent(ctx context.Context, sheet string) (domain.Sheet, error) {
	if err := c.check(ctx); err != nil {
		return domain.Sheet{}, err
	}

	key := strings.ToLower(sheet)
	if extent, ok := c.extents[key]; ok {
		return extent, nil
	}

	name, ok := c.sheetName(sheet)
	if !ok {
		return domain.Sheet{Name: sheet}, nil
	}
	ref, err := c.file.GetSheetDimension(name)
	if err != nil {
		return domain.Sheet{}, zerr.With(errors.Join(domain.ErrSheetReadFailed, err), "sheet", name)
	}
	extent, ok := parseDimension(name, ref)
	if !ok {
		if extent, err = c.countRows(name); err != nil {
			return domain.Sheet{}, err
		}
	}
	c.extents[key] = extent
	return extent, nil
}

// ReadFormulaCells returns the formula cells of sheet within rows, in row-major order.
// Rows are streamed and reading stops at rows.Last.
func (c *Connection) ReadFormulaCells(ctx context.Context, sheet string, rows domain.RowRange) ([]domain.Cell, error) {
	if err := c.check(ctx); err != nil {
		return nil, err
	}

	cur, err := c.rowCursor(sheet, rows.First)
	if err != nil {
		return nil, err
	}

	var cells []domain.Cell
	for !cur.done && cur.next <= rows.Last {
		if !cur.rows.Next() {
			cur.done = true
			break
		}
		row := cur.next
		cur.next++
		if row < rows.First {
			continue
		}

		values, err := cur.rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			c.dropCursor(sheet)
			return nil, c.readError(sheet, domain.CellAddress(1, row), err)
		}
		for col := 1; col <= len(values); col++ {
			addr := domain.CellAddress(col, row)
			formula, err := c.file.GetCellFormula(sheet, addr)
			if err != nil {
				return nil, c.readError(sheet, addr, err)
			}
			if formula == "" {
				continue
			}
			value, err := c.value(sheet, addr)
			if err != nil {
				return nil, err
			}
			cells = append(cells, domain.Cell{
				Reference: domain.CellReference{Sheet: sheet, Address: addr},
				Formula:   domain.NormalizeFormula(formula),
				Value:     value,
			})
		}
	}
	if err := cur.rows.Error(); err != nil {
		c.dropCursor(sheet)
		return nil, zerr.With(errors.Join(domain.ErrSheetReadFailed, err), "sheet", sheet)
	}
	return cells, nil
}

// ReadCell returns one cell, formula or constant.
func (c *Connection) ReadCell(ctx context.Context, ref domain.CellReference) (domain.Cell, error) {
	if err := c.check(ctx); err != nil {
		return domain.Cell{}, err
	}

	formula, err := c.file.GetCellFormula(ref.Sheet, ref.Address)
	if err != nil {
		return domain.Cell{}, c.readError(ref.Sheet, ref.Address, err)
	}
	value, err := c.value(ref.Sheet, ref.Address)
	if err != nil {
		return domain.Cell{}, err
	}
	return domain.Cell{Reference: ref, Formula: domain.NormalizeFormula(formula), Value: value}, nil
}

// FileIdentity returns the absolute path and modification time of the workbook file.
func (c *Connection) FileIdentity(ctx context.Context) (domain.FileIdentity, error) {
	if err := ctx.Err(); err != nil {
		return domain.FileIdentity{}, err
	}
	if c.closed {
		return domain.FileIdentity{}, domain.With(domain.ErrConnectionLost, "path", c.path)
	}

	info, err := os.Stat(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.FileIdentity{}, zerr.With(errors.Join(domain.ErrConnectionLost, err), "path", c.path)
		}
		return domain.FileIdentity{}, zerr.With(errors.Join(domain.ErrPathStatFailed, err), "path", c.path)
	}
	return domain.FileIdentity{Path: c.path, ModTime: info.ModTime()}, nil
}

// Close releases the workbook. Reads after Close report a lost connection.
func (c *Connection) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	for key := range c.cursors {
		c.dropCursor(key)
	}
	return c.file.Close()
}

// check fails when the context is done or the workbook has gone away.
func (c *Connection) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.closed {
		return domain.With(domain.ErrConnectionLost, "path", c.path)
	}
	if _, err := os.Stat(c.path); errors.Is(err, fs.ErrNotExist) {
		return zerr.With(errors.Join(domain.ErrConnectionLost, err), "path", c.path)
	}
	return nil
}

// rowCursor returns a row stream of sheet positioned at or before first.
func (c *Connection) rowCursor(sheet string, first int) (*cursor, error) {
	key := strings.ToLower(sheet)
	if cur, ok := c.cursors[key]; ok && cur.next <= first {
		return cur, nil
	}
	c.dropCursor(sheet)

	rows, err := c.file.Rows(sheet)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrSheetReadFailed, err), "sheet", sheet)
	}
	cur := &cursor{rows: rows, next: 1}
	c.cursors[key] = cur
	return cur, nil
}

func (c *Connection) dropCursor(sheet string) {
	key := strings.ToLower(sheet)
	if cur, ok := c.cursors[key]; ok {
		_ = cur.rows.Close()
		delete(c.cursors, key)
	}
}

// sheetName resolves sheet case-insensitively against the workbook's sheets.
func (c *Connection) sheetName(sheet string) (string, bool) {
	for _, name := range c.file.GetSheetList() {
		if strings.EqualFold(name, sheet) {
			return name, true
		}
	}
	return "", false
}

// countRows measures a sheet without a usable dimension by streaming its rows.
func (c *Connection) countRows(sheet string) (domain.Sheet, error) {
	rows, err := c.file.Rows(sheet)
	if err != nil {
		return domain.Sheet{}, zerr.With(errors.Join(domain.ErrSheetReadFailed, err), "sheet", sheet)
	}
	defer func() { _ = rows.Close() }()

	extent := domain.Sheet{Name: sheet}
	for row := 1; rows.Next(); row++ {
		values, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return domain.Sheet{}, zerr.With(errors.Join(domain.ErrSheetReadFailed, err), "sheet", sheet)
		}
		if len(values) > 0 {
			extent.Rows = row
			extent.Cols = max(extent.Cols, len(values))
		}
	}
	if err := rows.Error(); err != nil {
		return domain.Sheet{}, zerr.With(errors.Join(domain.ErrSheetReadFailed, err), "sheet", sheet)
	}
	return extent, nil
}

// parseDimension reads a stored dimension such as "A1:C500". A single cell
// is what writers store for empty sheets too, so it is not trusted.
func parseDimension(sheet, ref string) (domain.Sheet, bool) {
	_, last, ok := strings.Cut(ref, ":")
	if !ok {
		return domain.Sheet{}, false
	}
	col, row, err := excelize.CellNameToCoordinates(strings.ReplaceAll(last, "$", ""))
	if err != nil {
		return domain.Sheet{}, false
	}
	return domain.Sheet{Name: sheet, Rows: row, Cols: col}, true
}

func (c *Connection) value(sheet, addr string) (domain.CellValue, error) {
	typ, err := c.file.GetCellType(sheet, addr)
	if err != nil {
		return domain.CellValue{}, c.readError(sheet, addr, err)
	}
	raw, err := c.file.GetCellValue(sheet, addr, excelize.Options{RawCellValue: true})
	if err != nil {
		return domain.CellValue{}, c.readError(sheet, addr, err)
	}
	return decodeValue(typ, raw), nil
}

func (c *Connection) readError(sheet, addr string, err error) error {
	return zerr.With(zerr.With(errors.Join(domain.ErrSheetReadFailed, err), "sheet", sheet), "cell", addr)
}

// decodeValue maps a stored cell to the closed value variant.
func decodeValue(typ excelize.CellType, raw string) domain.CellValue {
	switch typ {
	case excelize.CellTypeBool:
		return domain.BoolValue(raw == "1" || strings.EqualFold(raw, "true"))
	case excelize.CellTypeError:
		return domain.ErrorValue(raw)
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula, excelize.CellTypeDate:
		return domain.TextValue(raw)
	default:
		if raw == "" {
			return domain.EmptyValue()
		}
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return domain.NumberValue(n)
		}
		return domain.ClassifyValue(raw)
	}
}
