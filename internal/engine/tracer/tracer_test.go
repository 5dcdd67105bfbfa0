package tracer_test

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/xlgraph/internal/adapters/graphstore"
	"go.trai.ch/xlgraph/internal/adapters/hasher"
	"go.trai.ch/xlgraph/internal/adapters/metrics"
	"go.trai.ch/xlgraph/internal/adapters/refparser"
	"go.trai.ch/xlgraph/internal/adapters/telemetry"
	"go.trai.ch/xlgraph/internal/core/domain"
	"go.trai.ch/xlgraph/internal/core/ports"
	"go.trai.ch/xlgraph/internal/core/ports/mocks"
	"go.trai.ch/xlgraph/internal/engine/builder"
	"go.trai.ch/xlgraph/internal/engine/cachemgr"
	"go.trai.ch/xlgraph/internal/engine/ondemand"
	"go.trai.ch/xlgraph/internal/engine/scan"
	"go.trai.ch/xlgraph/internal/engine/tracer"
	"go.uber.org/mock/gomock"
)

const bookPath = "/books/budget.xlsx"

var modTime = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

// book is an in-memory workbook: Sheet1!A1 = 5, B1 = A1*2, C1 = B1+Sheet2!D1 and Sheet2!D1 = 10.
type book struct {
	mu       sync.Mutex
	modTime  time.Time
	formulas map[string]string
	values   map[string]domain.CellValue
	readErr  error

	// entered, when set, is signalled and release awaited on every ListSheets call.
	entered chan struct{}
	release chan struct{}
}

func newBook() *book {
	return &book{
		modTime: modTime,
		formulas: map[string]string{
			"Sheet1!B1": "A1*2",
			"Sheet1!C1": "B1+Sheet2!D1",
		},
		values: map[string]domain.CellValue{
			"Sheet1!A1": domain.NumberValue(5),
			"Sheet1!B1": domain.NumberValue(10),
			"Sheet1!C1": domain.NumberValue(20),
			"Sheet2!D1": domain.NumberValue(10),
		},
	}
}

func (b *book) edit(cell, formula string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.formulas[cell] = formula
	b.modTime = b.modTime.Add(time.Minute)
}

// rewrite changes a formula and keeps the modification time, as a save
// within the filesystem's timestamp resolution does.
func (b *book) rewrite(cell, formula string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.formulas[cell] = formula
}

func (b *book) cell(key string) domain.Cell {
	return domain.Cell{Reference: domain.MustCellReference(key), Formula: b.formulas[key], Value: b.values[key]}
}

func (b *book) connection(ctrl *gomock.Controller) ports.WorkbookConnection {
	conn := mocks.NewMockWorkbookConnection(ctrl)
	conn.EXPECT().FileIdentity(gomock.Any()).DoAndReturn(func(context.Context) (domain.FileIdentity, error) {
		b.mu.Lock()
		defer b.mu.Unlock()
		return domain.FileIdentity{Path: bookPath, ModTime: b.modTime}, nil
	}).AnyTimes()
	conn.EXPECT().ListSheets(gomock.Any()).DoAndReturn(func(ctx context.Context) ([]domain.Sheet, error) {
		if b.entered != nil {
			b.entered <- struct{}{}
			<-b.release
		}
		return []domain.Sheet{{Name: "Sheet1", Rows: 1, Cols: 3}, {Name: "Sheet2", Rows: 1, Cols: 4}}, ctx.Err()
	}).AnyTimes()
	conn.EXPECT().ReadFormulaCells(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, sheet string, _ domain.RowRange) ([]domain.Cell, error) {
			b.mu.Lock()
			defer b.mu.Unlock()
			if b.readErr != nil {
				return nil, b.readErr
			}
			var cells []domain.Cell
			for _, key := range slices.Sorted(maps.Keys(b.formulas)) {
				if strings.HasPrefix(key, sheet+"!") {
					cells = append(cells, b.cell(key))
				}
			}
			return cells, nil
		}).AnyTimes()
	conn.EXPECT().ReadCell(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ref domain.CellReference) (domain.Cell, error) {
			b.mu.Lock()
			defer b.mu.Unlock()
			return b.cell(ref.String()), nil
		}).AnyTimes()
	conn.EXPECT().Close().Return(nil).AnyTimes()
	return conn
}

type fixture struct {
	service     *tracer.Service
	book        *book
	opener      *mocks.MockWorkbookOpener
	logger      *mocks.MockLogger
	annotations *mocks.MockAnnotationSource
	cfg         *domain.Config
}

func newFixture(t *testing.T, ctrl *gomock.Controller, m ports.Metrics, location string) *fixture {
	t.Helper()

	f := &fixture{
		book:        newBook(),
		opener:      mocks.NewMockWorkbookOpener(ctrl),
		logger:      mocks.NewMockLogger(ctrl),
		annotations: mocks.NewMockAnnotationSource(ctrl),
	}
	f.opener.EXPECT().Open(gomock.Any(), bookPath).DoAndReturn(
		func(context.Context, string) (ports.WorkbookConnection, error) {
			return f.book.connection(ctrl), nil
		}).AnyTimes()
	f.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	cfg := domain.DefaultConfig()
	cfg.Cache.Location = location
	f.cfg = &cfg

	spans := telemetry.NewNoOpTracer()
	parser := refparser.New()
	scanner := scan.New(f.logger, spans)
	f.service = tracer.New(
		f.opener,
		builder.New(parser, hasher.New(), scanner, f.logger, spans),
		ondemand.New(parser, f.logger, spans),
		cachemgr.New(graphstore.NewFactory(f.logger), hasher.New(), scanner, f.logger),
		f.annotations,
		m,
		f.logger,
		spans,
	)
	return f
}

func request(cell string, direction domain.Direction, depth int) ports.TraceRequest {
	return ports.TraceRequest{
		Workbook:  bookPath,
		Cell:      domain.MustCellReference(cell),
		Direction: direction,
		Depth:     depth,
	}
}

func names(nodes []*domain.DependencyNode) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Cell.String()
	}
	return out
}

func TestTrace_FullGraph(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockMetrics(ctrl)
	f := newFixture(t, ctrl, m, t.TempDir())

	gomock.InOrder(
		m.EXPECT().CacheLookup("miss"),
		m.EXPECT().CacheLookup("hit"),
	)
	m.EXPECT().BuildFinished(gomock.Not(gomock.Nil()), nil).Times(1)
	m.EXPECT().TraceServed(domain.ModeFullGraph, gomock.Any(), gomock.Any(), nil).Times(2)

	ctx := context.Background()
	tree, err := f.service.Trace(ctx, f.cfg, request("Sheet1!C1", domain.DirectionPrecedents, 3))
	require.NoError(t, err)

	assert.Equal(t, domain.ModeFullGraph, tree.Mode)
	assert.Equal(t, "Sheet1!C1", tree.Root.Cell.String())
	assert.ElementsMatch(t, []string{"Sheet1!B1", "Sheet2!D1"}, names(tree.Root.Precedents))
	assert.Equal(t, 4, tree.NodeCount())

	tree, err = f.service.Trace(ctx, f.cfg, request("Sheet1!A1", domain.DirectionDependents, 3))
	require.NoError(t, err)
	assert.Equal(t, []string{"Sheet1!B1"}, names(tree.Root.Dependents))
	assert.Equal(t, []string{"Sheet1!C1"}, names(tree.Root.Dependents[0].Dependents))
}

func TestTrace_LoadsFromCache(t *testing.T) {
	location := t.TempDir()

	first := gomock.NewController(t)
	seed := newFixture(t, first, metrics.New(), location)
	_, err := seed.service.Build(context.Background(), seed.cfg, bookPath, ports.BuildOptions{})
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	m := mocks.NewMockMetrics(ctrl)
	f := newFixture(t, ctrl, m, location)
	m.EXPECT().CacheLookup("hit")
	m.EXPECT().TraceServed(gomock.Any(), gomock.Any(), gomock.Any(), nil)

	tree, err := f.service.Trace(context.Background(), f.cfg, request("Sheet1!C1", domain.DirectionBoth, 2))
	require.NoError(t, err)
	assert.Equal(t, 4, tree.NodeCount())
}

func TestTrace_RebuildsAfterEdit(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(t, ctrl, metrics.New(), t.TempDir())
	ctx := context.Background()

	_, err := f.service.Trace(ctx, f.cfg, request("Sheet1!C1", domain.DirectionPrecedents, 3))
	require.NoError(t, err)

	f.book.edit("Sheet1!C1", "B1*3")

	tree, err := f.service.Trace(ctx, f.cfg, request("Sheet1!C1", domain.DirectionPrecedents, 3))
	require.NoError(t, err)
	assert.Equal(t, []string{"Sheet1!B1"}, names(tree.Root.Precedents))
	assert.Equal(t, "B1*3", tree.Root.Formula)
}

func TestTrace_RebuildsAfterEditWithSameTimestamp(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockMetrics(ctrl)
	f := newFixture(t, ctrl, m, t.TempDir())
	ctx := context.Background()

	gomock.InOrder(
		m.EXPECT().CacheLookup("miss"),
		m.EXPECT().CacheLookup("stale"),
		m.EXPECT().CacheLookup("hit"),
	)
	m.EXPECT().BuildFinished(gomock.Not(gomock.Nil()), nil).Times(2)
	m.EXPECT().TraceServed(domain.ModeFullGraph, gomock.Any(), gomock.Any(), nil).Times(3)

	tree, err := f.service.Trace(ctx, f.cfg, request("Sheet1!C1", domain.DirectionPrecedents, 3))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Sheet1!B1", "Sheet2!D1"}, names(tree.Root.Precedents))

	f.book.rewrite("Sheet1!C1", "Sheet2!D1*3")

	tree, err = f.service.Trace(ctx, f.cfg, request("Sheet1!C1", domain.DirectionPrecedents, 3))
	require.NoError(t, err)
	assert.Equal(t, "Sheet2!D1*3", tree.Root.Formula)
	assert.Equal(t, []string{"Sheet2!D1"}, names(tree.Root.Precedents))

	tree, err = f.service.Trace(ctx, f.cfg, request("Sheet1!A1", domain.DirectionDependents, 3))
	require.NoError(t, err)
	assert.Equal(t, []string{"Sheet1!B1"}, names(tree.Root.Dependents))
	assert.Empty(t, tree.Root.Dependents[0].Dependents, "C1 no longer reads B1")
}

func TestTrace_FailedRebuildKeepsSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(t, ctrl, metrics.New(), t.TempDir())
	ctx := context.Background()

	report, err := f.service.Build(ctx, f.cfg, bookPath, ports.BuildOptions{})
	require.NoError(t, err)

	f.book.mu.Lock()
	original := f.book.modTime
	f.book.modTime = original.Add(time.Hour)
	f.book.readErr = errors.Join(domain.ErrConnectionLost, errors.New("file removed"))
	f.book.mu.Unlock()

	_, err = f.service.Trace(ctx, f.cfg, request("Sheet1!C1", domain.DirectionPrecedents, 3))
	require.ErrorIs(t, err, domain.ErrConnectionLost)

	f.book.mu.Lock()
	f.book.modTime = original
	f.book.readErr = nil
	f.book.mu.Unlock()

	tree, err := f.service.Trace(ctx, f.cfg, request("Sheet1!C1", domain.DirectionPrecedents, 3))
	require.NoError(t, err)
	assert.Equal(t, 4, tree.NodeCount())

	f.annotations.EXPECT().Exists(gomock.Any()).Return(false)
	status, err := f.service.Status(ctx, f.cfg, bookPath)
	require.NoError(t, err)
	assert.True(t, status.Cached)
	assert.False(t, status.Stale)
	assert.Equal(t, report.Nodes, status.NodeCount)
}

func TestBuild_CancelledKeepsCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(t, ctrl, metrics.New(), t.TempDir())

	report, err := f.service.Build(context.Background(), f.cfg, bookPath, ports.BuildOptions{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = f.service.Build(ctx, f.cfg, bookPath, ports.BuildOptions{})
	require.ErrorIs(t, err, context.Canceled)

	f.annotations.EXPECT().Exists(gomock.Any()).Return(false)
	status, err := f.service.Status(context.Background(), f.cfg, bookPath)
	require.NoError(t, err)
	assert.True(t, status.Cached)
	assert.Equal(t, report.Nodes, status.NodeCount)
}

func TestTrace_WorkbookBusy(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(t, ctrl, metrics.New(), t.TempDir())
	f.book.entered = make(chan struct{})
	f.book.release = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := f.service.Build(context.Background(), f.cfg, bookPath, ports.BuildOptions{})
		done <- err
	}()
	<-f.book.entered

	_, err := f.service.Trace(context.Background(), f.cfg, request("Sheet1!C1", domain.DirectionPrecedents, 3))
	require.ErrorIs(t, err, domain.ErrWorkbookBusy)
	_, err = f.service.Status(context.Background(), f.cfg, bookPath)
	require.ErrorIs(t, err, domain.ErrWorkbookBusy)
	require.ErrorIs(t, f.service.Invalidate(context.Background(), f.cfg, bookPath), domain.ErrWorkbookBusy)

	f.book.entered = nil
	close(f.book.release)
	require.NoError(t, <-done)

	_, err = f.service.Trace(context.Background(), f.cfg, request("Sheet1!C1", domain.DirectionPrecedents, 3))
	require.NoError(t, err)
}

func TestTrace_OnDemand(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(t, ctrl, metrics.New(), t.TempDir())
	f.cfg.Mode = domain.ModeOnDemand

	tree, err := f.service.Trace(context.Background(), f.cfg, request("Sheet1!C1", domain.DirectionPrecedents, 3))
	require.NoError(t, err)
	assert.Equal(t, domain.ModeOnDemand, tree.Mode)
	assert.ElementsMatch(t, []string{"Sheet1!B1", "Sheet2!D1"}, names(tree.Root.Precedents))

	f.annotations.EXPECT().Exists(gomock.Any()).Return(false)
	status, err := f.service.Status(context.Background(), f.cfg, bookPath)
	require.NoError(t, err)
	assert.False(t, status.Cached, "on-demand traces never build a graph")
}

func TestTrace_OnDemandRejectsDependents(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	opener := mocks.NewMockWorkbookOpener(ctrl)
	spans := telemetry.NewNoOpTracer()
	parser := refparser.New()
	service := tracer.New(opener, nil, ondemand.New(parser, logger, spans), nil, nil, metrics.New(), logger, spans)

	cfg := domain.DefaultConfig()
	for _, direction := range []domain.Direction{domain.DirectionDependents, domain.DirectionBoth} {
		req := request("Sheet1!C1", direction, 3)
		req.Mode = domain.ModeOnDemand
		_, err := service.Trace(context.Background(), &cfg, req)
		require.ErrorIs(t, err, domain.ErrUnsupportedDirection)
	}
}

func TestTrace_RequestDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(t, ctrl, metrics.New(), t.TempDir())
	f.logger.EXPECT().Warn(gomock.Cond(func(msg string) bool {
		return strings.Contains(msg, "depth 50 exceeds the maximum of 10")
	}))

	tree, err := f.service.Trace(context.Background(), f.cfg, request("Sheet1!C1", "", 50))
	require.NoError(t, err)
	assert.Equal(t, 10, tree.MaxDepth)
	assert.Equal(t, domain.DirectionBoth, tree.Direction)

	tree, err = f.service.Trace(context.Background(), f.cfg, request("Sheet1!C1", domain.DirectionPrecedents, -1))
	require.NoError(t, err)
	assert.Equal(t, f.cfg.Trace.DefaultDepth, tree.MaxDepth)
}

func TestTrace_InvalidMode(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(t, ctrl, metrics.New(), t.TempDir())

	req := request("Sheet1!C1", domain.DirectionPrecedents, 3)
	req.Mode = "sideways"
	_, err := f.service.Trace(context.Background(), f.cfg, req)
	require.ErrorIs(t, err, domain.ErrInvalidMode)
}

func TestTrace_UnknownCell(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(t, ctrl, metrics.New(), t.TempDir())

	_, err := f.service.Trace(context.Background(), f.cfg, request("Sheet1!Z99", domain.DirectionPrecedents, 3))
	require.ErrorIs(t, err, domain.ErrNodeNotFound)
}

func TestStatusAndInvalidate(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(t, ctrl, metrics.New(), t.TempDir())
	f.annotations.EXPECT().Exists(f.cfg.Annotations.Path).Return(true).AnyTimes()
	ctx := context.Background()

	status, err := f.service.Status(ctx, f.cfg, bookPath)
	require.NoError(t, err)
	assert.False(t, status.Cached)
	assert.True(t, status.HasAnnotations)
	assert.Equal(t, domain.BackendFile, status.Backend)

	report, err := f.service.Build(ctx, f.cfg, bookPath, ports.BuildOptions{})
	require.NoError(t, err)

	status, err = f.service.Status(ctx, f.cfg, bookPath)
	require.NoError(t, err)
	assert.True(t, status.Cached)
	assert.False(t, status.Stale)
	assert.Equal(t, report.Nodes, status.NodeCount)
	assert.Equal(t, report.Edges, status.EdgeCount)
	assert.Equal(t, 2, status.FormulaCount)

	f.book.edit("Sheet1!B1", "A1*4")
	status, err = f.service.Status(ctx, f.cfg, bookPath)
	require.NoError(t, err)
	assert.True(t, status.Stale)
	assert.Equal(t, domain.StaleModified, status.StaleReason)

	require.NoError(t, f.service.Invalidate(ctx, f.cfg, bookPath))
	status, err = f.service.Status(ctx, f.cfg, bookPath)
	require.NoError(t, err)
	assert.False(t, status.Cached)
}

func TestStrategyFor(t *testing.T) {
	t.Parallel()

	service := tracer.New(nil, nil, nil, nil, nil, nil, nil, nil)
	cfg := domain.DefaultConfig()

	s, err := service.StrategyFor(&cfg, "")
	require.NoError(t, err)
	assert.NotNil(t, s)

	_, err = service.StrategyFor(&cfg, domain.ModeOnDemand)
	require.NoError(t, err)

	_, err = service.StrategyFor(&cfg, "sideways")
	require.ErrorIs(t, err, domain.ErrInvalidMode)
}
