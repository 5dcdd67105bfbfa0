// Package tracer answers dependency traces and manages the graphs behind them.
package tracer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"go.trai.ch/xlgraph/internal/core/domain"
	"go.trai.ch/xlgraph/internal/core/ports"
	"go.trai.ch/xlgraph/internal/engine/builder"
	"go.trai.ch/xlgraph/internal/engine/cachemgr"
	"go.trai.ch/xlgraph/internal/engine/ondemand"
	"go.trai.ch/zerr"
)

// Strategy answers a trace request with one traversal engine.
type Strategy interface {
	Trace(ctx context.Context, cfg *domain.Config, req ports.TraceRequest) (*domain.DependencyTree, error)
}

// Service implements ports.DependencyTracer.
type Service struct {
	opener      ports.WorkbookOpener
	builder     *builder.Builder
	ondemand    *ondemand.Tracer
	cache       *cachemgr.Manager
	annotations ports.AnnotationSource
	metrics     ports.Metrics
	logger      ports.Logger
	spans       ports.Tracer

	mu        sync.Mutex
	workbooks map[string]*workbook
}

var _ ports.DependencyTracer = (*Service)(nil)

// workbook is the per-file state. lock is held for every read-issuing
// operation; current is replaced only after a complete build.
type workbook struct {
	lock    sync.Mutex
	current atomic.Pointer[snapshot]
}

// snapshot is an immutable built graph and the fingerprint it was built from.
type snapshot struct {
	graph       *domain.DependencyGraph
	fingerprint domain.Fingerprint
}

// New creates a Service.
func New(
	opener ports.WorkbookOpener,
	b *builder.Builder,
	od *ondemand.Tracer,
	cache *cachemgr.Manager,
	annotations ports.AnnotationSource,
	metrics ports.Metrics,
	logger ports.Logger,
	spans ports.Tracer,
) *Service {
	return &Service{
		opener:      opener,
		builder:     b,
		ondemand:    od,
		cache:       cache,
		annotations: annotations,
		metrics:     metrics,
		logger:      logger,
		spans:       spans,
		workbooks:   make(map[string]*workbook),
	}
}

// StrategyFor returns the engine for mode, falling back to the configured mode.
func (s *Service) StrategyFor(cfg *domain.Config, mode domain.Mode) (Strategy, error) {
	if mode == "" {
		mode = cfg.Mode
	}
	switch mode {
	case domain.ModeFullGraph:
		return fullGraph{s}, nil
	case domain.ModeOnDemand:
		return onDemand{s}, nil
	default:
		return nil, domain.With(domain.ErrInvalidMode, "mode", string(mode))
	}
}

// Trace resolves request defaults, clamps the depth and dispatches to the
// strategy for the requested mode.
func (s *Service) Trace(ctx context.Context, cfg *domain.Config, req ports.TraceRequest) (tree *domain.DependencyTree, err error) {
	if req.Mode == "" {
		req.Mode = cfg.Mode
	}
	if req.Direction == "" {
		req.Direction = cfg.Trace.DefaultDirection
	}
	depth, clamped := cfg.Trace.ClampDepth(req.Depth)
	if clamped {
		s.logger.Warn(fmt.Sprintf("depth %d exceeds the maximum of %d, using %d", req.Depth, cfg.Trace.MaxDepth, depth))
	}
	req.Depth = depth

	strategy, err := s.StrategyFor(cfg, req.Mode)
	if err != nil {
		return nil, err
	}

	ctx, span := s.spans.Start(ctx, "trace", ports.WithAttributes(map[string]any{
		"workbook":  req.Workbook,
		"cell":      req.Cell.String(),
		"direction": string(req.Direction),
		"mode":      string(req.Mode),
		"depth":     req.Depth,
	}))
	start := time.Now()
	defer func() {
		s.metrics.TraceServed(req.Mode, req.Direction, time.Since(start), err)
		if err != nil {
			span.RecordError(err)
		} else {
			span.SetAttribute("nodes", tree.NodeCount())
		}
		span.End()
	}()

	return strategy.Trace(ctx, cfg, req)
}

// Build forces a full rebuild of workbook and stores the result.
func (s *Service) Build(ctx context.Context, cfg *domain.Config, path string, opts ports.BuildOptions) (*domain.BuildReport, error) {
	wb, identity, err := s.acquire(path)
	if err != nil {
		return nil, err
	}
	defer wb.lock.Unlock()

	conn, err := s.opener.Open(ctx, identity)
	if err != nil {
		return nil, err
	}
	defer func() { _ = conn.Close() }()

	_, report, err := s.rebuild(ctx, cfg, wb, conn, opts.Progress)
	return report, err
}

// Status describes the cache entry of workbook against its live state.
func (s *Service) Status(ctx context.Context, cfg *domain.Config, path string) (*domain.CacheStatus, error) {
	wb, identity, err := s.acquire(path)
	if err != nil {
		return nil, err
	}
	defer wb.lock.Unlock()

	status := &domain.CacheStatus{
		Workbook:       identity,
		Backend:        cfg.Cache.Backend,
		Enabled:        cfg.Cache.Enabled,
		HasAnnotations: s.annotations.Exists(cfg.Annotations.Path),
	}
	if !cfg.Cache.Enabled {
		return status, nil
	}

	entry, err := s.cache.Load(ctx, cfg.Cache, identity)
	if err != nil || entry == nil {
		return status, err
	}

	status.Cached = true
	status.BuiltAt = entry.BuiltAt
	status.NodeCount = entry.NodeCount
	status.EdgeCount = entry.EdgeCount
	status.FormulaCount = entry.Fingerprint.FormulaCount
	status.SkippedBatches = entry.SkippedBatches

	if entry.Version != domain.CacheSchemaVersion {
		status.Stale, status.StaleReason = true, domain.StaleSchema
		return status, nil
	}

	conn, err := s.opener.Open(ctx, identity)
	if err != nil {
		return nil, err
	}
	defer func() { _ = conn.Close() }()

	reason, _, err := s.cache.Check(ctx, conn, cfg.Build, entry.Fingerprint)
	if err != nil {
		return nil, err
	}
	status.Stale, status.StaleReason = reason != domain.StaleNone, reason
	return status, nil
}

// Invalidate drops the in-memory snapshot and the cache entry of workbook.
func (s *Service) Invalidate(ctx context.Context, cfg *domain.Config, path string) error {
	wb, identity, err := s.acquire(path)
	if err != nil {
		return err
	}
	defer wb.lock.Unlock()

	wb.current.Store(nil)
	if err := s.cache.Invalidate(ctx, cfg.Cache, identity); err != nil {
		return err
	}
	s.logger.Debug("invalidated graph for " + identity)
	return nil
}

// acquire resolves path and takes its workbook lock without waiting.
func (s *Service) acquire(path string) (*workbook, string, error) {
	identity, err := filepath.Abs(path)
	if err != nil {
		return nil, "", zerr.With(zerr.Wrap(err, domain.ErrFailedToResolvePath.Error()), "path", path)
	}

	wb := s.workbookFor(identity)
	if !wb.lock.TryLock() {
		return nil, "", domain.With(domain.ErrWorkbookBusy, "workbook", identity)
	}
	return wb, identity, nil
}

func (s *Service) workbookFor(identity string) *workbook {
	s.mu.Lock()
	defer s.mu.Unlock()

	wb, ok := s.workbooks[identity]
	if !ok {
		wb = &workbook{}
		s.workbooks[identity] = wb
	}
	return wb
}

// rebuild builds a new graph from conn, persists it and swaps it in.
// The caller holds wb.lock. A failed or cancelled build leaves both the
// snapshot and the cache entry untouched.
func (s *Service) rebuild(
	ctx context.Context,
	cfg *domain.Config,
	wb *workbook,
	conn ports.WorkbookConnection,
	progress domain.ProgressFunc,
) (*snapshot, *domain.BuildReport, error) {
	g, report, err := s.builder.Build(ctx, conn, builder.Options{Build: cfg.Build, Progress: progress})
	s.metrics.BuildFinished(report, err)
	if err != nil {
		return nil, nil, err
	}
	for _, skipped := range report.SkippedBatches {
		s.metrics.BatchSkipped(skipped.Sheet)
	}

	next := &snapshot{graph: g, fingerprint: report.Fingerprint}
	if err := s.cache.Save(ctx, cfg.Cache, report.Workbook, filepath.Base(report.Workbook), g, report.Fingerprint, report); err != nil {
		if domain.IsCancellation(err) {
			return nil, nil, err
		}
		s.logger.Warn(fmt.Sprintf("graph for %s was built but not cached: %v", report.Workbook, err))
	}
	wb.current.Store(next)
	return next, report, nil
}

// current returns a snapshot that matches the live workbook, looking at the
// in-memory snapshot, then the cache, and finally rebuilding.
func (s *Service) current(ctx context.Context, cfg *domain.Config, wb *workbook, conn ports.WorkbookConnection) (*snapshot, error) {
	if snap := wb.current.Load(); snap != nil {
		reason, _, err := s.cache.Check(ctx, conn, cfg.Build, snap.fingerprint)
		if err != nil {
			return nil, err
		}
		if reason == domain.StaleNone {
			s.metrics.CacheLookup("hit")
			return snap, nil
		}
		s.metrics.CacheLookup("stale")
		s.logger.Info(fmt.Sprintf("workbook changed (%s), rebuilding", reason))
		snap, _, err := s.rebuild(ctx, cfg, wb, conn, nil)
		return snap, err
	}

	identity, err := conn.FileIdentity(ctx)
	if err != nil {
		return nil, err
	}
	entry, err := s.cache.Load(ctx, cfg.Cache, identity.Path)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		s.metrics.CacheLookup("miss")
		snap, _, err := s.rebuild(ctx, cfg, wb, conn, nil)
		return snap, err
	}

	reason := domain.StaleSchema
	if entry.Version == domain.CacheSchemaVersion {
		reason, _, err = s.cache.Check(ctx, conn, cfg.Build, entry.Fingerprint)
		if err != nil {
			return nil, err
		}
	}
	if reason == domain.StaleNone {
		g, err := entry.Graph()
		if err == nil {
			s.metrics.CacheLookup("hit")
			snap := &snapshot{graph: g, fingerprint: entry.Fingerprint}
			wb.current.Store(snap)
			return snap, nil
		}
		if !errors.Is(err, domain.ErrCacheCorrupt) {
			return nil, err
		}
		s.logger.Warn(fmt.Sprintf("ignoring cached graph for %s: %v", identity.Path, err))
		reason = domain.StaleSchema
	}

	s.metrics.CacheLookup("stale")
	s.logger.Info(fmt.Sprintf("cached graph is stale (%s), rebuilding", reason))
	snap, _, err := s.rebuild(ctx, cfg, wb, conn, nil)
	return snap, err
}
