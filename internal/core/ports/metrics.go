package ports

import (
	"time"

	"go.trai.ch/xlgraph/internal/core/domain"
)

// Metrics records operational counters for builds, caches and traces.
//
//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// BuildFinished records a completed or failed build.
	BuildFinished(report *domain.BuildReport, err error)
	// BatchSkipped records a batch dropped after retries.
	BatchSkipped(sheet string)
	// CacheLookup records a cache probe and its outcome ("hit", "miss", "stale").
	CacheLookup(outcome string)
	// TraceServed records a trace request.
	TraceServed(mode domain.Mode, direction domain.Direction, d time.Duration, err error)
}
