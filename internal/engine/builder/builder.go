// Package builder materializes the full dependency graph of a workbook.
package builder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/xlgraph/internal/core/domain"
	"go.trai.ch/xlgraph/internal/core/ports"
	"go.trai.ch/xlgraph/internal/engine/scan"
)

// Options tune one build.
type Options struct {
	Build    domain.BuildConfig
	Progress domain.ProgressFunc
}

// Builder reads every formula of a workbook and produces a sealed graph.
type Builder struct {
	parser  ports.ReferenceParser
	hasher  ports.FormulaHasher
	scanner *scan.Scanner
	logger  ports.Logger
	tracer  ports.Tracer

	newID func() string
	now   func() time.Time
}

// New creates a Builder.
func New(
	parser ports.ReferenceParser,
	hasher ports.FormulaHasher,
	scanner *scan.Scanner,
	logger ports.Logger,
	tracer ports.Tracer,
) *Builder {
	return &Builder{
		parser:  parser,
		hasher:  hasher,
		scanner: scanner,
		logger:  logger,
		tracer:  tracer,
		newID:   uuid.NewString,
		now:     time.Now,
	}
}

// Build reads conn sheet by sheet and returns the sealed graph with its report.
// Skipped batches are recorded in the report and do not fail the build.
// On a lost connection or a cancelled context no graph is returned.
func (b *Builder) Build(ctx context.Context, conn ports.WorkbookConnection, opts Options) (*domain.DependencyGraph, *domain.BuildReport, error) {
	start := b.now()
	report := &domain.BuildReport{BuildID: b.newID()}

	ctx, span := b.tracer.Start(ctx, "build", ports.WithAttributes(map[string]any{
		"build.id":   report.BuildID,
		"batch_size": opts.Build.BatchSize,
	}))
	defer span.End()

	graph, err := b.build(ctx, conn, opts, report)
	if err != nil {
		span.RecordError(err)
		return nil, nil, err
	}

	report.Duration = b.now().Sub(start)
	span.SetAttribute("nodes", report.Nodes)
	span.SetAttribute("edges", report.Edges)
	span.SetAttribute("batches.skipped", len(report.SkippedBatches))

	b.logger.Debug(fmt.Sprintf("built graph %s: %d nodes, %d edges in %s",
		report.BuildID, report.Nodes, report.Edges, report.Duration))

	if opts.Progress != nil {
		opts.Progress(domain.BuildProgress{Phase: domain.PhaseComplete, Formulas: report.FormulasProcessed})
	}
	return graph, report, nil
}

func (b *Builder) build(ctx context.Context, conn ports.WorkbookConnection, opts Options, report *domain.BuildReport) (*domain.DependencyGraph, error) {
	identity, err := conn.FileIdentity(ctx)
	if err != nil {
		return nil, err
	}
	report.Workbook = identity.Path

	graph := domain.NewDependencyGraph()
	var formulas []domain.Cell

	res, err := b.scanner.Scan(ctx, conn, scan.OptionsFrom(opts.Build, opts.Progress), func(batch scan.Batch) error {
		scope := ports.ParseScope{
			Sheet:         batch.Sheet.Name,
			Bounds:        batch.Bounds,
			MaxRangeCells: opts.Build.MaxRangeCells,
		}
		for _, cell := range batch.Cells {
			if !cell.HasFormula() {
				continue
			}
			node := b.node(cell, scope)
			report.UnparsedReferences += node.Unparsed
			if err := graph.AddNode(node); err != nil {
				return err
			}
			formulas = append(formulas, cell)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if opts.Progress != nil {
		opts.Progress(domain.BuildProgress{
			Phase:    domain.PhaseIndexing,
			Formulas: len(formulas),
			Skipped:  len(res.SkippedBatches),
		})
	}
	graph.Seal()

	cycles := graph.Cycles()
	for _, cycle := range cycles {
		b.logger.Debug("circular reference: " + formatCycle(cycle))
	}

	report.ScanStats = res.ScanStats
	report.FormulasProcessed = len(formulas)
	report.Nodes = graph.NodeCount()
	report.Edges = graph.EdgeCount()
	report.Cycles = len(cycles)
	report.Fingerprint = domain.Fingerprint{
		ModTime:      identity.ModTime,
		FormulaHash:  b.hasher.HashFormulas(formulas),
		FormulaCount: len(formulas),
	}
	return graph, nil
}

// node parses one formula cell. Unresolvable reference tokens are logged and
// counted on the node.
func (b *Builder) node(cell domain.Cell, scope ports.ParseScope) domain.FormulaNode {
	parsed := b.parser.Parse(cell.Formula, scope)
	for _, token := range parsed.Skipped {
		b.logger.Warn(fmt.Sprintf("%s: %s %q", cell.Reference, domain.ErrMalformedReference, token))
	}

	return domain.FormulaNode{
		Reference:  cell.Reference,
		Formula:    domain.NormalizeFormula(cell.Formula),
		Value:      cell.Value,
		Precedents: parsed.References,
		Unparsed:   parsed.Unparsed(),
	}
}

func formatCycle(cycle []domain.CellReference) string {
	parts := make([]string, len(cycle))
	for i, ref := range cycle {
		parts[i] = ref.String()
	}
	return strings.Join(parts, " -> ")
}
