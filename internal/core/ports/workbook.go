package ports

import (
	"context"

	"go.trai.ch/xlgraph/internal/core/domain"
)

//go:generate mockgen -source=workbook.go -destination=mocks/mock_workbook.go -package=mocks

// WorkbookConnection reads cells from one open workbook.
// Implementations are not safe for concurrent use; callers issue reads one at a time.
type WorkbookConnection interface {
	// ListSheets returns every worksheet with its used extent.
	ListSheets(ctx context.Context) ([]domain.Sheet, error)

	// SheetExtent returns the used extent of one sheet without reading any other.
	// A sheet the workbook does not have reports a zero extent.
	SheetExtent(ctx context.Context, sheet string) (domain.Sheet, error)

	// ReadFormulaCells returns the formula-bearing cells of a sheet within rows.
	// It returns an error wrapping domain.ErrConnectionLost when the source is gone.
	ReadFormulaCells(ctx context.Context, sheet string, rows domain.RowRange) ([]domain.Cell, error)

	// ReadCell returns a single cell, formula or constant.
	ReadCell(ctx context.Context, ref domain.CellReference) (domain.Cell, error)

	// FileIdentity returns the resolved path and modification time of the workbook.
	FileIdentity(ctx context.Context) (domain.FileIdentity, error)

	// Close releases the connection.
	Close() error
}

// WorkbookOpener opens workbook connections.
type WorkbookOpener interface {
	// Open connects to the workbook at path.
	Open(ctx context.Context, path string) (WorkbookConnection, error)
}
