// Package scan reads the formula cells of a workbook in bounded row batches.
package scan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.trai.ch/xlgraph/internal/core/domain"
	"go.trai.ch/xlgraph/internal/core/ports"
)

// Options control one pass over a workbook.
type Options struct {
	BatchSize    int
	MaxRetries   int
	RetryBackoff time.Duration
	Progress     domain.ProgressFunc
}

// OptionsFrom derives scan options from the build configuration.
func OptionsFrom(cfg domain.BuildConfig, progress domain.ProgressFunc) Options {
	return Options{
		BatchSize:    cfg.BatchSize,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
		Progress:     progress,
	}
}

// Batch is one successfully read row batch.
type Batch struct {
	Sheet domain.Sheet
	Rows  domain.RowRange
	Cells []domain.Cell
	// Bounds serves the extent of every sheet of the workbook.
	Bounds ports.SheetBounds
}

// Visitor receives the formula cells of one batch.
type Visitor func(batch Batch) error

// Scanner issues batch reads strictly one at a time.
type Scanner struct {
	logger ports.Logger
	tracer ports.Tracer
}

// New creates a Scanner.
func New(logger ports.Logger, tracer ports.Tracer) *Scanner {
	return &Scanner{logger: logger, tracer: tracer}
}

// Result summarizes a completed pass.
type Result struct {
	domain.ScanStats

	// SheetList is every sheet in workbook order, used for range bounds.
	SheetList []domain.Sheet
	// Formulas counts the formula cells handed to the visitor.
	Formulas int
}

// Scan lists the sheets of conn and reads each one in contiguous row batches.
// A batch that keeps failing is retried with exponential backoff and then
// skipped and recorded. A lost connection or a cancelled context ends the
// pass immediately, as does a visitor error.
func (s *Scanner) Scan(ctx context.Context, conn ports.WorkbookConnection, opts Options, visit Visitor) (*Result, error) {
	emit := opts.Progress
	if emit == nil {
		emit = func(domain.BuildProgress) {}
	}

	emit(domain.BuildProgress{Phase: domain.PhaseListing})
	sheets, err := conn.ListSheets(ctx)
	if err != nil {
		return nil, err
	}

	res := &Result{SheetList: sheets}
	res.Sheets = len(sheets)

	bounds := ports.StaticBounds(sheets)

	for i, sheet := range sheets {
		if err := s.scanSheet(ctx, conn, opts, sheet, i+1, res, emit, func(b Batch) error {
			b.Bounds = bounds
			return visit(b)
		}); err != nil {
			return nil, err
		}
	}

	return res, nil
}

func (s *Scanner) scanSheet(
	ctx context.Context,
	conn ports.WorkbookConnection,
	opts Options,
	sheet domain.Sheet,
	index int,
	res *Result,
	emit domain.ProgressFunc,
	visit Visitor,
) error {
	batches := domain.Batches(sheet.Rows, opts.BatchSize)

	ctx, span := s.tracer.Start(ctx, "scan.sheet", ports.WithAttributes(map[string]any{
		"sheet":   sheet.Name,
		"rows":    sheet.Rows,
		"batches": len(batches),
	}))
	defer span.End()

	for _, batch := range batches {
		cells, attempts, err := s.readBatch(ctx, conn, opts, sheet.Name, batch)
		switch {
		case err == nil:
			res.BatchesRead++
			res.CellsRead += len(cells)
			res.Formulas += len(cells)
			if err := visit(Batch{Sheet: sheet, Rows: batch, Cells: cells}); err != nil {
				span.RecordError(err)
				return err
			}
		case fatal(err):
			span.RecordError(err)
			return err
		default:
			failure := domain.BatchFailure{
				Sheet:    sheet.Name,
				FirstRow: batch.First,
				LastRow:  batch.Last,
				Attempts: attempts,
				Cause:    err.Error(),
			}
			res.SkippedBatches = append(res.SkippedBatches, failure)
			span.AddEvent("batch.skipped", map[string]any{"first_row": batch.First, "last_row": batch.Last})
			s.logger.Warn(fmt.Sprintf("skipping %s rows %d-%d after %d attempts: %v",
				sheet.Name, batch.First, batch.Last, attempts, err))
		}

		emit(domain.BuildProgress{
			Phase:      domain.PhaseReading,
			Sheet:      sheet.Name,
			SheetIndex: index,
			SheetCount: res.Sheets,
			Batch:      batch,
			RowsTotal:  sheet.Rows,
			Formulas:   res.Formulas,
			Skipped:    len(res.SkippedBatches),
		})
	}

	span.SetAttribute("formulas", res.Formulas)
	return nil
}

// readBatch reads one batch, retrying transient failures with exponential
// backoff. It returns the number of attempts made.
func (s *Scanner) readBatch(
	ctx context.Context,
	conn ports.WorkbookConnection,
	opts Options,
	sheet string,
	rows domain.RowRange,
) ([]domain.Cell, int, error) {
	attempts := 0
	read := func() ([]domain.Cell, error) {
		attempts++
		cells, err := conn.ReadFormulaCells(ctx, sheet, rows)
		if err != nil && fatal(err) {
			return nil, backoff.Permanent(err)
		}
		return cells, err
	}

	cells, err := backoff.Retry(ctx, read,
		backoff.WithBackOff(newBackOff(opts.RetryBackoff)),
		backoff.WithMaxTries(uint(max(opts.MaxRetries, 0)+1)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, wait time.Duration) {
			s.logger.Debug(fmt.Sprintf("retrying %s rows %d-%d in %s: %v", sheet, rows.First, rows.Last, wait, err))
		}),
	)
	return cells, attempts, err
}

// newBackOff doubles the wait after every attempt, starting at initial.
func newBackOff(initial time.Duration) *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initial
	b.RandomizationFactor = 0
	b.Multiplier = 2
	b.Reset()
	return b
}

// fatal reports whether err must end the pass rather than skip a batch.
func fatal(err error) bool {
	return errors.Is(err, domain.ErrConnectionLost) || domain.IsCancellation(err)
}
