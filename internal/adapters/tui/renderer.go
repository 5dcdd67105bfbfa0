package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/xlgraph/internal/core/domain"
	"go.trai.ch/xlgraph/internal/core/ports"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer wraps the progress model as a ports.Renderer.
type Renderer struct {
	program     *tea.Program
	model       *Model
	onInterrupt func()
	errCh       chan error
	stopOnce    sync.Once
}

// NewRenderer creates a new TUI renderer. onInterrupt runs when the user
// quits before the build completes.
func NewRenderer(model *Model, onInterrupt func(), opts ...tea.ProgramOption) *Renderer {
	return &Renderer{
		program:     tea.NewProgram(model, opts...),
		model:       model,
		onInterrupt: onInterrupt,
		errCh:       make(chan error, 1),
	}
}

// Start launches the TUI in a background goroutine.
func (r *Renderer) Start(_ context.Context) error {
	go func() {
		final, err := r.program.Run()
		if m, ok := final.(*Model); ok && m.Interrupted && !m.Done && r.onInterrupt != nil {
			r.onInterrupt()
		}
		r.errCh <- err
	}()
	return nil
}

// Stop signals the TUI to quit.
func (r *Renderer) Stop() error {
	r.stopOnce.Do(r.program.Quit)
	return nil
}

// Wait blocks until the TUI has terminated.
func (r *Renderer) Wait() error {
	return <-r.errCh
}

// OnProgress forwards a progress event to the TUI.
func (r *Renderer) OnProgress(p domain.BuildProgress) {
	r.program.Send(MsgProgress{Progress: p})
}

// OnComplete forwards the build outcome; the program exits after rendering it.
func (r *Renderer) OnComplete(report *domain.BuildReport, err error) {
	r.program.Send(MsgComplete{Report: report, Err: err})
}

// Program returns the underlying tea.Program for testing.
func (r *Renderer) Program() *tea.Program {
	return r.program
}
