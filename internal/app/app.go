// Package app implements the application layer for xlgraph.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/xlgraph/internal/adapters/detector"
	"go.trai.ch/xlgraph/internal/adapters/linear"
	"go.trai.ch/xlgraph/internal/adapters/tui"
	"go.trai.ch/xlgraph/internal/adapters/watcher"
	"go.trai.ch/xlgraph/internal/core/domain"
	"go.trai.ch/xlgraph/internal/core/ports"
	"go.trai.ch/xlgraph/internal/ui/tree"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	tracer       ports.DependencyTracer
	annotations  ports.AnnotationSource
	watchers     ports.WatcherFactory
	metrics      http.Handler
	logger       ports.Logger
	stdout       io.Writer
	stderr       io.Writer
	teaOptions   []tea.ProgramOption
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	tracer ports.DependencyTracer,
	annotations ports.AnnotationSource,
	watchers ports.WatcherFactory,
	metrics http.Handler,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		tracer:       tracer,
		annotations:  annotations,
		watchers:     watchers,
		metrics:      metrics,
		logger:       log,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
	}
}

// WithOutput redirects results to stdout and progress to stderr.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// ConfigureLogging switches the logger to JSON output and/or debug level
// when it supports it.
func (a *App) ConfigureLogging(jsonLogs, verbose bool) {
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(jsonLogs)
	}
	if l, ok := a.logger.(interface{ SetVerbose(bool) }); ok {
		l.SetVerbose(verbose)
	}
}

// TraceOptions configuration for the Trace method.
type TraceOptions struct {
	Workbook string
	Cell     string
	// Direction and Mode fall back to the configuration when empty.
	Direction string
	Mode      string
	// Depth selects the configured default when negative.
	Depth int
	JSON  bool
}

// Trace answers a dependency query and prints the resulting tree.
func (a *App) Trace(ctx context.Context, opts TraceOptions) error {
	cfg, err := a.loadConfig(opts.Workbook)
	if err != nil {
		return err
	}

	cell, err := domain.ParseCellReference(opts.Cell, "")
	if err != nil {
		return err
	}

	req := ports.TraceRequest{Workbook: opts.Workbook, Cell: cell, Depth: opts.Depth}
	if opts.Direction != "" {
		if req.Direction, err = domain.ParseDirection(opts.Direction); err != nil {
			return err
		}
	}
	if opts.Mode != "" {
		if req.Mode, err = domain.ParseMode(opts.Mode); err != nil {
			return err
		}
	}

	result, err := a.tracer.Trace(ctx, cfg, req)
	if err != nil {
		return err
	}
	a.annotate(ctx, cfg.Annotations.Path, result)

	if opts.JSON {
		return tree.RenderJSON(a.stdout, result)
	}
	return tree.Render(a.stdout, result)
}

// annotate attaches annotation labels to every node of t. A store that
// cannot be read is reported and leaves the tree unlabelled.
func (a *App) annotate(ctx context.Context, path string, t *domain.DependencyTree) {
	if !a.annotations.Exists(path) {
		return
	}

	labels := make(map[domain.CellKey][]string)
	for n := range t.Walk() {
		key := n.Cell.Key()
		found, ok := labels[key]
		if !ok {
			matches, err := a.annotations.Lookup(ctx, path, domain.RangeOf(n.Cell))
			if err != nil {
				a.logger.Warn(fmt.Sprintf("annotations unavailable: %v", err))
				return
			}
			for _, m := range matches {
				found = append(found, m.Label)
			}
			labels[key] = found
		}
		n.Annotations = found
	}
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	Workbook   string
	OutputMode string
	JSON       bool
}

// Build rebuilds and caches the full dependency graph of a workbook.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	cfg, err := a.loadConfig(opts.Workbook)
	if err != nil {
		return err
	}

	report, err := a.runBuild(ctx, cfg, opts)
	if err != nil {
		return err
	}
	if opts.JSON {
		return writeJSON(a.stdout, report)
	}
	return nil
}

// runBuild runs a build while the progress renderer consumes its events.
func (a *App) runBuild(ctx context.Context, cfg *domain.Config, opts BuildOptions) (*domain.BuildReport, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	renderer := a.newRenderer(ctx, opts, cancel)

	var report *domain.BuildReport
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := renderer.Start(gctx); err != nil {
			return err
		}
		return renderer.Wait()
	})

	g.Go(func() error {
		defer func() { _ = renderer.Stop() }()

		var err error
		report, err = a.tracer.Build(gctx, cfg, opts.Workbook, ports.BuildOptions{Progress: renderer.OnProgress})
		renderer.OnComplete(report, err)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}

func (a *App) newRenderer(ctx context.Context, opts BuildOptions, cancel func()) ports.Renderer {
	mode := detector.ResolveMode(detector.DetectEnvironment(a.stderr), opts.OutputMode)
	if opts.JSON && mode == detector.ModeTUI {
		mode = detector.ModeLinear
	}

	switch mode {
	case detector.ModeTUI:
		model := tui.NewModel(a.stderr, filepath.Base(opts.Workbook))
		teaOpts := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(a.stderr)}, a.teaOptions...)
		return tui.NewRenderer(model, cancel, teaOpts...)
	case detector.ModeQuiet:
		return linear.NewRenderer(io.Discard)
	default:
		return linear.NewRenderer(a.stderr)
	}
}

// CacheStatus prints the cache entry of a workbook.
func (a *App) CacheStatus(ctx context.Context, workbook string, asJSON bool) error {
	cfg, err := a.loadConfig(workbook)
	if err != nil {
		return err
	}

	status, err := a.tracer.Status(ctx, cfg, workbook)
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(a.stdout, status)
	}
	return printStatus(a.stdout, status)
}

// CacheRebuild drops the cached graph of a workbook and builds it again.
func (a *App) CacheRebuild(ctx context.Context, opts BuildOptions) error {
	cfg, err := a.loadConfig(opts.Workbook)
	if err != nil {
		return err
	}
	if !cfg.Cache.Enabled {
		return domain.With(domain.ErrCacheDisabled, "config", cfg.Source)
	}

	if err := a.tracer.Invalidate(ctx, cfg, opts.Workbook); err != nil {
		return err
	}
	report, err := a.runBuild(ctx, cfg, opts)
	if err != nil {
		return err
	}
	if opts.JSON {
		return writeJSON(a.stdout, report)
	}
	return nil
}

// CacheClear drops the cached graph of a workbook. Annotations are kept.
func (a *App) CacheClear(ctx context.Context, workbook string) error {
	cfg, err := a.loadConfig(workbook)
	if err != nil {
		return err
	}
	if !cfg.Cache.Enabled {
		return domain.With(domain.ErrCacheDisabled, "config", cfg.Source)
	}

	if err := a.tracer.Invalidate(ctx, cfg, workbook); err != nil {
		return err
	}
	a.logger.Info("cleared cached graph for " + workbook)
	return nil
}

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	Workbook string
	// MetricsAddr, when set, serves Prometheus metrics at /metrics.
	MetricsAddr string
}

// Watch keeps the graph of a workbook current until ctx is cancelled.
// Bursts of file events are debounced into one refresh.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	cfg, err := a.loadConfig(opts.Workbook)
	if err != nil {
		return err
	}
	workbook, err := filepath.Abs(opts.Workbook)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFailedToResolvePath.Error()), "path", opts.Workbook)
	}

	w, err := a.watchers()
	if err != nil {
		return errors.Join(domain.ErrWatcherStartFailed, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	if err := w.Start(gctx, workbook); err != nil {
		_ = w.Stop()
		return err
	}

	changes := make(chan struct{}, 1)
	debouncer := watcher.NewDebouncer(cfg.Watch.Debounce, func([]string) {
		select {
		case changes <- struct{}{}:
		default:
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		debouncer.Stop()
		return w.Stop()
	})

	g.Go(func() error {
		for event := range w.Events() {
			a.logger.Debug(fmt.Sprintf("%s %s", event.Operation, event.Path))
			debouncer.Add(event.Path)
		}
		return nil
	})

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-changes:
				a.refresh(gctx, cfg, workbook)
			}
		}
	})

	if opts.MetricsAddr != "" && a.metrics != nil {
		if err := a.serveMetrics(gctx, g, opts.MetricsAddr); err != nil {
			cancel()
			_ = g.Wait()
			return err
		}
	}

	a.logger.Info("watching " + workbook)
	err = g.Wait()
	if err != nil && !domain.IsCancellation(err) {
		return err
	}
	return nil
}

// refresh reacts to a debounced change of workbook.
func (a *App) refresh(ctx context.Context, cfg *domain.Config, workbook string) {
	if !cfg.Watch.AutoRebuild {
		if err := a.tracer.Invalidate(ctx, cfg, workbook); err != nil {
			a.logger.Error(err)
			return
		}
		a.logger.Info("workbook changed, cached graph invalidated")
		return
	}

	report, err := a.tracer.Build(ctx, cfg, workbook, ports.BuildOptions{})
	switch {
	case err == nil:
		a.logger.Info(fmt.Sprintf("workbook changed, rebuilt graph: %d nodes, %d edges in %v",
			report.Nodes, report.Edges, report.Duration.Round(time.Millisecond)))
	case domain.IsCancellation(err):
	case errors.Is(err, domain.ErrWorkbookBusy):
		a.logger.Warn("workbook changed while busy, skipping rebuild")
	default:
		a.logger.Error(err)
	}
}

func (a *App) serveMetrics(ctx context.Context, g *errgroup.Group, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to listen for metrics"), "addr", addr)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", a.metrics)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return zerr.Wrap(err, "metrics server failed")
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return srv.Shutdown(context.WithoutCancel(ctx))
	})

	a.logger.Info("serving metrics on http://" + ln.Addr().String() + "/metrics")
	return nil
}

func (a *App) loadConfig(workbook string) (*domain.Config, error) {
	cfg, err := a.configLoader.Load(filepath.Dir(workbook))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
