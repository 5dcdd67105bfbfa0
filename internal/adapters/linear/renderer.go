// Package linear provides a synchronous, line-based progress renderer for
// CI environments and redirected output.
package linear

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/xlgraph/internal/core/domain"
	"go.trai.ch/xlgraph/internal/core/ports"
	"go.trai.ch/xlgraph/internal/ui/output"
	"go.trai.ch/xlgraph/internal/ui/style"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer implements ports.Renderer by printing one line per sheet and
// one per skipped batch.
type Renderer struct {
	w      io.Writer
	output *termenv.Output
	now    func() time.Time

	mu          sync.Mutex
	started     time.Time
	lastSheet   string
	lastSkipped int
}

// NewRenderer creates a renderer writing to w, or stderr when w is nil.
func NewRenderer(w io.Writer) *Renderer {
	if w == nil {
		w = os.Stderr
	}

	return &Renderer{
		w:      w,
		output: output.NewWithProfile(w, output.ColorProfileANSI),
		now:    time.Now,
	}
}

// Start records the start time.
func (r *Renderer) Start(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = r.now()
	return nil
}

// Stop is a no-op for linear renderer (synchronous).
func (r *Renderer) Stop() error {
	return nil
}

// Wait is a no-op for linear renderer (synchronous).
func (r *Renderer) Wait() error {
	return nil
}

// OnProgress prints phase changes, sheet starts and skipped batches.
func (r *Renderer) OnProgress(p domain.BuildProgress) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch p.Phase {
	case domain.PhaseListing:
		r.printf("Listing sheets...\n")
	case domain.PhaseReading:
		if p.Sheet != r.lastSheet {
			r.lastSheet = p.Sheet
			prefix := r.output.String(fmt.Sprintf("[%d/%d]", p.SheetIndex, p.SheetCount)).Faint().String()
			r.printf("%s %s (%d rows)\n", prefix, p.Sheet, p.RowsTotal)
		}
		if p.Skipped > r.lastSkipped {
			r.lastSkipped = p.Skipped
			symbol := r.output.String(style.Warning).Foreground(termenv.ANSIYellow).String()
			r.printf("%s skipped %s rows %d-%d after retries\n", symbol, p.Sheet, p.Batch.First, p.Batch.Last)
		}
	case domain.PhaseIndexing:
		r.printf("Indexing %d formulas...\n", p.Formulas)
	case domain.PhaseComplete:
	}
}

// OnComplete prints the build outcome.
func (r *Renderer) OnComplete(report *domain.BuildReport, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	elapsed := r.now().Sub(r.started).Round(time.Millisecond)
	if report != nil {
		elapsed = report.Duration.Round(time.Millisecond)
	}

	if err != nil {
		symbol := r.output.String(style.Cross).Foreground(termenv.ANSIRed).String()
		r.printf("%s Build failed after %v: %v\n", symbol, elapsed, err)
		return
	}

	symbol := r.output.String(style.Check).Foreground(termenv.ANSIGreen).String()
	r.printf("%s Built graph: %d nodes, %d edges from %d formulas in %v\n",
		symbol, report.Nodes, report.Edges, report.FormulasProcessed, elapsed)
	if n := len(report.SkippedBatches); n > 0 {
		r.printf("%s %d batch(es) skipped, graph may be incomplete\n", style.Warning, n)
	}
}

func (r *Renderer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.w, format, args...)
}
