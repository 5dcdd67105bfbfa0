// Package ondemand traces precedents by reading cells lazily from a workbook.
package ondemand

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.trai.ch/xlgraph/internal/core/domain"
	"go.trai.ch/xlgraph/internal/core/ports"
)

// Tracer walks precedents one cell read at a time. It keeps nothing between calls.
type Tracer struct {
	parser ports.ReferenceParser
	logger ports.Logger
	tracer ports.Tracer
}

// New creates a Tracer.
func New(parser ports.ReferenceParser, logger ports.Logger, tracer ports.Tracer) *Tracer {
	return &Tracer{parser: parser, logger: logger, tracer: tracer}
}

// Trace answers a trace request. Only DirectionPrecedents is supported;
// dependents need a global index this engine never builds.
func (t *Tracer) Trace(
	ctx context.Context,
	conn ports.WorkbookConnection,
	start domain.CellReference,
	direction domain.Direction,
	maxDepth int,
	cfg domain.BuildConfig,
) (*domain.DependencyTree, error) {
	if direction != domain.DirectionPrecedents {
		return nil, domain.With(domain.ErrUnsupportedDirection, "direction", string(direction))
	}
	return t.TraceUpstream(ctx, conn, start, maxDepth, cfg)
}

// TraceUpstream reads start, parses its formula and recurses into each
// precedent up to maxDepth levels. Cells are read strictly sequentially.
func (t *Tracer) TraceUpstream(
	ctx context.Context,
	conn ports.WorkbookConnection,
	start domain.CellReference,
	maxDepth int,
	cfg domain.BuildConfig,
) (*domain.DependencyTree, error) {
	if maxDepth < 0 {
		return nil, domain.With(domain.ErrInvalidDepth, "depth", maxDepth)
	}

	ctx, span := t.tracer.Start(ctx, "trace.on_demand", ports.WithAttributes(map[string]any{
		"cell":      start.String(),
		"max_depth": maxDepth,
	}))
	defer span.End()

	w := &walk{
		Tracer:   t,
		conn:     conn,
		maxDepth: maxDepth,
		maxCells: cfg.MaxRangeCells,
		extents:  make(map[string]domain.Sheet),
		path:     make(map[domain.CellKey]*domain.DependencyNode),
	}

	root, precedents, err := w.read(ctx, start, 0)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := w.expand(ctx, root, precedents); err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttribute("reads", w.reads)
	span.SetAttribute("sheet_extents", len(w.extents))
	return &domain.DependencyTree{
		Root:      root,
		Direction: domain.DirectionPrecedents,
		MaxDepth:  maxDepth,
		Mode:      domain.ModeOnDemand,
	}, nil
}

type walk struct {
	*Tracer

	conn     ports.WorkbookConnection
	maxDepth int
	maxCells int
	reads    int

	// extents caches, per lower-cased sheet name, the extents asked for by
	// whole-column and whole-row ranges.
	extents map[string]domain.Sheet
	// lost holds a fatal error met while looking up an extent.
	lost error

	// path holds the ancestors of the node being expanded.
	path map[domain.CellKey]*domain.DependencyNode
}

// read fetches one cell and parses its formula into precedents.
func (w *walk) read(ctx context.Context, ref domain.CellReference, depth int) (*domain.DependencyNode, []domain.CellReference, error) {
	cell, err := w.conn.ReadCell(ctx, ref)
	w.reads++
	if err != nil {
		return nil, nil, err
	}

	n := &domain.DependencyNode{Cell: ref, Formula: cell.Formula, Value: cell.Value, Depth: depth}
	if !cell.HasFormula() {
		return n, nil, nil
	}

	parsed := w.parser.Parse(cell.Formula, ports.ParseScope{
		Sheet:         ref.Sheet,
		Bounds:        func(sheet string) (domain.Sheet, error) { return w.extent(ctx, sheet) },
		MaxRangeCells: w.maxCells,
	})
	if w.lost != nil {
		return nil, nil, w.lost
	}
	for _, token := range parsed.Skipped {
		w.logger.Warn(fmt.Sprintf("%s: %s %q", ref, domain.ErrMalformedReference, token))
	}
	n.Partial = parsed.Unparsed() > 0
	return n, parsed.References, nil
}

// extent returns the used extent of sheet, asking the workbook once per sheet.
func (w *walk) extent(ctx context.Context, sheet string) (domain.Sheet, error) {
	key := strings.ToLower(sheet)
	if s, ok := w.extents[key]; ok {
		return s, nil
	}
	s, err := w.conn.SheetExtent(ctx, sheet)
	if err != nil {
		if fatal(err) {
			w.lost = err
		} else {
			w.logger.Warn(fmt.Sprintf("cannot size sheet %s: %v", sheet, err))
		}
		return domain.Sheet{}, err
	}
	w.extents[key] = s
	return s, nil
}

// expand reads and attaches the precedents of n, depth first.
func (w *walk) expand(ctx context.Context, n *domain.DependencyNode, precedents []domain.CellReference) error {
	if len(precedents) == 0 {
		return nil
	}
	if n.Depth >= w.maxDepth {
		n.Truncated = true
		return nil
	}

	key := n.Cell.Key()
	w.path[key] = n
	defer delete(w.path, key)

	for _, ref := range precedents {
		if ancestor, onPath := w.path[ref.Key()]; onPath {
			n.Precedents = append(n.Precedents, &domain.DependencyNode{
				Cell:         ancestor.Cell,
				Formula:      ancestor.Formula,
				Value:        ancestor.Value,
				Depth:        n.Depth + 1,
				CycleClosure: true,
			})
			continue
		}

		child, grand, err := w.read(ctx, ref, n.Depth+1)
		if err != nil {
			if fatal(err) {
				return err
			}
			w.logger.Warn(fmt.Sprintf("%s: cannot read precedent %s: %v", n.Cell, ref, err))
			child = &domain.DependencyNode{Cell: ref, Depth: n.Depth + 1, Partial: true}
		}
		if err := w.expand(ctx, child, grand); err != nil {
			return err
		}
		n.Precedents = append(n.Precedents, child)
	}
	return nil
}

func fatal(err error) bool {
	return errors.Is(err, domain.ErrConnectionLost) || domain.IsCancellation(err)
}
