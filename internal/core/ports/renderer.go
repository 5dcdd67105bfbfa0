package ports

import (
	"context"

	"go.trai.ch/xlgraph/internal/core/domain"
)

// Renderer is the abstraction for build progress output.
// The same progress stream drives either a rich TUI or linear CI logs.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer and begins its lifecycle.
	Start(ctx context.Context) error

	// Stop signals the renderer to stop accepting new events and flush.
	Stop() error

	// Wait blocks until the renderer has fully terminated.
	Wait() error

	// OnProgress is called for every progress event of a build.
	OnProgress(p domain.BuildProgress)

	// OnComplete is called once with the build outcome.
	OnComplete(report *domain.BuildReport, err error)
}
