// Package metrics exposes analysis counters through a Prometheus registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.trai.ch/xlgraph/internal/core/domain"
	"go.trai.ch/xlgraph/internal/core/ports"
)

const namespace = "xlgraph"

// Outcome labels.
const (
	OutcomeOK        = "ok"
	OutcomeError     = "error"
	OutcomeCancelled = "cancelled"
)

// Prometheus implements ports.Metrics on a private registry.
type Prometheus struct {
	registry *prometheus.Registry

	builds         *prometheus.CounterVec
	buildDuration  prometheus.Histogram
	graphNodes     prometheus.Gauge
	graphEdges     prometheus.Gauge
	unparsed       prometheus.Counter
	batchesSkipped *prometheus.CounterVec
	cacheLookups   *prometheus.CounterVec
	traces         *prometheus.CounterVec
	traceDuration  *prometheus.HistogramVec
}

// New registers the xlgraph collectors plus the Go runtime collectors on a
// fresh registry.
func New() *Prometheus {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Prometheus{
		registry: reg,
		builds: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "builds_total",
			Help:      "Full graph builds by outcome",
		}, []string{"outcome"}),
		buildDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Wall time of successful full graph builds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		graphNodes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_nodes",
			Help:      "Formula nodes in the most recently built graph",
		}),
		graphEdges: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_edges",
			Help:      "Precedent edges in the most recently built graph",
		}),
		unparsed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unparsed_references_total",
			Help:      "References skipped by the formula parser",
		}),
		batchesSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_skipped_total",
			Help:      "Row batches dropped after exhausting retries",
		}, []string{"sheet"}),
		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Graph cache probes by outcome",
		}, []string{"outcome"}),
		traces: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "traces_total",
			Help:      "Trace requests by mode, direction and outcome",
		}, []string{"mode", "direction", "outcome"}),
		traceDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "trace_duration_seconds",
			Help:      "Wall time of trace requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"mode"}),
	}
}

var _ ports.Metrics = (*Prometheus)(nil)

// Registry returns the registry backing the collectors.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

// BuildFinished records a completed or failed build.
func (p *Prometheus) BuildFinished(report *domain.BuildReport, err error) {
	p.builds.WithLabelValues(outcome(err)).Inc()
	if err != nil || report == nil {
		return
	}

	p.buildDuration.Observe(report.Duration.Seconds())
	p.graphNodes.Set(float64(report.Nodes))
	p.graphEdges.Set(float64(report.Edges))
	p.unparsed.Add(float64(report.UnparsedReferences))
}

// BatchSkipped records a batch dropped after retries.
func (p *Prometheus) BatchSkipped(sheet string) {
	p.batchesSkipped.WithLabelValues(sheet).Inc()
}

// CacheLookup records a cache probe and its outcome.
func (p *Prometheus) CacheLookup(outcome string) {
	p.cacheLookups.WithLabelValues(outcome).Inc()
}

// TraceServed records a trace request.
func (p *Prometheus) TraceServed(mode domain.Mode, direction domain.Direction, d time.Duration, err error) {
	p.traces.WithLabelValues(string(mode), string(direction), outcome(err)).Inc()
	p.traceDuration.WithLabelValues(string(mode)).Observe(d.Seconds())
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case domain.IsCancellation(err):
		return OutcomeCancelled
	default:
		return OutcomeError
	}
}
