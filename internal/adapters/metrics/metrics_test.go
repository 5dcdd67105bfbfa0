package metrics_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/xlgraph/internal/adapters/metrics"
	"go.trai.ch/xlgraph/internal/core/domain"
)

func TestPrometheus_BuildFinished(t *testing.T) {
	m := metrics.New()

	m.BuildFinished(&domain.BuildReport{Nodes: 12, Edges: 30, UnparsedReferences: 2, Duration: time.Second}, nil)
	m.BuildFinished(nil, errors.New("workbook connection lost"))
	m.BuildFinished(nil, context.Canceled)

	expected := `
# HELP xlgraph_builds_total Full graph builds by outcome
# TYPE xlgraph_builds_total counter
xlgraph_builds_total{outcome="cancelled"} 1
xlgraph_builds_total{outcome="error"} 1
xlgraph_builds_total{outcome="ok"} 1
# HELP xlgraph_graph_nodes Formula nodes in the most recently built graph
# TYPE xlgraph_graph_nodes gauge
xlgraph_graph_nodes 12
# HELP xlgraph_unparsed_references_total References skipped by the formula parser
# TYPE xlgraph_unparsed_references_total counter
xlgraph_unparsed_references_total 2
`
	err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"xlgraph_builds_total", "xlgraph_graph_nodes", "xlgraph_unparsed_references_total")
	require.NoError(t, err)
}

func TestPrometheus_CountersByLabel(t *testing.T) {
	m := metrics.New()

	m.BatchSkipped("Inputs")
	m.BatchSkipped("Inputs")
	m.CacheLookup("hit")
	m.CacheLookup("stale")
	m.TraceServed(domain.ModeOnDemand, domain.DirectionPrecedents, 5*time.Millisecond, nil)
	m.TraceServed(domain.ModeFullGraph, domain.DirectionBoth, time.Millisecond, errors.New("not found"))

	reg := m.Registry()
	count, err := testutil.GatherAndCount(reg, "xlgraph_cache_lookups_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = testutil.GatherAndCount(reg, "xlgraph_traces_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	expected := `
# HELP xlgraph_batches_skipped_total Row batches dropped after exhausting retries
# TYPE xlgraph_batches_skipped_total counter
xlgraph_batches_skipped_total{sheet="Inputs"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "xlgraph_batches_skipped_total"))
}

func TestPrometheus_Handler(t *testing.T) {
	m := metrics.New()
	m.CacheLookup("miss")

	srv := httptest.NewServer(m.Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `xlgraph_cache_lookups_total{outcome="miss"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
