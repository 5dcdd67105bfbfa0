package cachemgr_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/xlgraph/internal/adapters/graphstore"
	"go.trai.ch/xlgraph/internal/adapters/hasher"
	"go.trai.ch/xlgraph/internal/adapters/refparser"
	"go.trai.ch/xlgraph/internal/adapters/telemetry"
	"go.trai.ch/xlgraph/internal/core/domain"
	"go.trai.ch/xlgraph/internal/core/ports/mocks"
	"go.trai.ch/xlgraph/internal/engine/builder"
	"go.trai.ch/xlgraph/internal/engine/cachemgr"
	"go.trai.ch/xlgraph/internal/engine/scan"
	"go.uber.org/mock/gomock"
)

const identity = "/books/budget.xlsx"

var modTime = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

func newManager(ctrl *gomock.Controller, factory *mocks.MockGraphStoreFactory) (*cachemgr.Manager, *mocks.MockLogger) {
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	return cachemgr.New(factory, hasher.New(), scan.New(logger, telemetry.NewNoOpTracer()), logger), logger
}

func sampleGraph(t *testing.T) *domain.DependencyGraph {
	t.Helper()
	g := domain.NewDependencyGraph()
	require.NoError(t, g.AddNode(domain.FormulaNode{
		Reference:  domain.MustCellReference("Sheet1!B1"),
		Formula:    "A1*2",
		Value:      domain.NumberValue(10),
		Precedents: []domain.CellReference{domain.MustCellReference("Sheet1!A1")},
	}))
	require.NoError(t, g.AddNode(domain.FormulaNode{
		Reference:  domain.MustCellReference("Sheet1!C1"),
		Formula:    "B1+1",
		Value:      domain.NumberValue(11),
		Precedents: []domain.CellReference{domain.MustCellReference("Sheet1!B1")},
	}))
	g.Seal()
	return g
}

func fileCache(t *testing.T) domain.CacheConfig {
	t.Helper()
	return domain.CacheConfig{Enabled: true, Backend: domain.BackendFile, Location: t.TempDir()}
}

func TestManager_SaveLoadInvalidate(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	factory := graphstore.NewFactory(logger)
	m := cachemgr.New(factory, hasher.New(), scan.New(logger, telemetry.NewNoOpTracer()), logger)

	ctx := context.Background()
	cfg := fileCache(t)
	fp := domain.Fingerprint{ModTime: modTime, FormulaHash: "abc", FormulaCount: 2}
	report := &domain.BuildReport{BuildID: "build-1"}

	require.NoError(t, m.Save(ctx, cfg, identity, "budget.xlsx", sampleGraph(t), fp, report))

	entry, err := m.Load(ctx, cfg, identity)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "build-1", entry.BuildID)
	assert.Equal(t, "budget.xlsx", entry.Name)
	assert.False(t, m.IsStale(entry, fp))

	g, err := entry.Graph()
	require.NoError(t, err)
	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 2, g.EdgeCount())
	assert.Len(t, g.Dependents(domain.MustCellReference("Sheet1!A1")), 1)

	require.NoError(t, m.Invalidate(ctx, cfg, identity))
	entry, err = m.Load(ctx, cfg, identity)
	require.NoError(t, err)
	assert.Nil(t, entry)
	assert.Zero(t, factory.OpenCount(), "every store handle is released")
}

func TestManager_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	factory := mocks.NewMockGraphStoreFactory(ctrl)
	m, _ := newManager(ctrl, factory)

	ctx := context.Background()
	cfg := domain.CacheConfig{Enabled: false, Backend: domain.BackendFile, Location: "/unused"}

	entry, err := m.Load(ctx, cfg, identity)
	require.NoError(t, err)
	assert.Nil(t, entry)
	require.NoError(t, m.Save(ctx, cfg, identity, "budget.xlsx", sampleGraph(t), domain.Fingerprint{}, nil))
	require.NoError(t, m.Invalidate(ctx, cfg, identity))
}

func TestManager_SaveUnsealed(t *testing.T) {
	ctrl := gomock.NewController(t)
	factory := mocks.NewMockGraphStoreFactory(ctrl)
	m, _ := newManager(ctrl, factory)

	err := m.Save(context.Background(), fileCache(t), identity, "budget.xlsx", domain.NewDependencyGraph(), domain.Fingerprint{}, nil)
	require.ErrorIs(t, err, domain.ErrGraphNotSealed)
}

func TestManager_LoadCorruptIsMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	factory := mocks.NewMockGraphStoreFactory(ctrl)
	store := mocks.NewMockGraphStore(ctrl)
	m, logger := newManager(ctrl, factory)

	cfg := fileCache(t)
	factory.EXPECT().Open(domain.BackendFile, cfg.Location).Return(store, nil)
	store.EXPECT().Get(gomock.Any(), identity).Return(nil, domain.With(domain.ErrCacheCorrupt, "file", "x.graph.json"))
	store.EXPECT().Close().Return(nil)
	logger.EXPECT().Warn(gomock.Any())

	entry, err := m.Load(context.Background(), cfg, identity)
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestManager_LoadReadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	factory := mocks.NewMockGraphStoreFactory(ctrl)
	store := mocks.NewMockGraphStore(ctrl)
	m, _ := newManager(ctrl, factory)

	cfg := fileCache(t)
	factory.EXPECT().Open(domain.BackendFile, cfg.Location).Return(store, nil)
	store.EXPECT().Get(gomock.Any(), identity).Return(nil, domain.ErrStoreReadFailed)
	store.EXPECT().Close().Return(nil)

	_, err := m.Load(context.Background(), cfg, identity)
	require.ErrorIs(t, err, domain.ErrStoreReadFailed)
}

func TestManager_LoadSharesConcurrentReads(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		factory := mocks.NewMockGraphStoreFactory(ctrl)
		store := mocks.NewMockGraphStore(ctrl)
		m, _ := newManager(ctrl, factory)

		cfg := domain.CacheConfig{Enabled: true, Backend: domain.BackendFile, Location: "/cache"}
		release := make(chan struct{})
		want := &domain.CacheEntry{Version: domain.CacheSchemaVersion, Identity: identity}

		factory.EXPECT().Open(domain.BackendFile, "/cache").Return(store, nil).Times(1)
		store.EXPECT().Get(gomock.Any(), identity).DoAndReturn(func(context.Context, string) (*domain.CacheEntry, error) {
			<-release
			return want, nil
		}).Times(1)
		store.EXPECT().Close().Return(nil).Times(1)

		var wg sync.WaitGroup
		results := make([]*domain.CacheEntry, 3)
		for i := range results {
			wg.Add(1)
			go func() {
				defer wg.Done()
				entry, err := m.Load(context.Background(), cfg, identity)
				assert.NoError(t, err)
				results[i] = entry
			}()
		}

		synctest.Wait()
		close(release)
		wg.Wait()

		for _, got := range results {
			assert.Same(t, want, got)
		}
	})
}

func TestReason(t *testing.T) {
	t.Parallel()

	fp := domain.Fingerprint{ModTime: modTime, FormulaHash: "abc", FormulaCount: 2}
	entry := &domain.CacheEntry{Version: domain.CacheSchemaVersion, Fingerprint: fp}

	assert.Equal(t, domain.StaleNone, cachemgr.Reason(entry, fp))

	touched := fp
	touched.ModTime = modTime.Add(time.Minute)
	assert.Equal(t, domain.StaleModified, cachemgr.Reason(entry, touched))

	edited := fp
	edited.FormulaHash = "def"
	assert.Equal(t, domain.StaleFormulas, cachemgr.Reason(entry, edited))

	old := *entry
	old.Version = domain.CacheSchemaVersion + 1
	assert.Equal(t, domain.StaleSchema, cachemgr.Reason(&old, fp))
}

// workbook serves Sheet1!B1 = A1*2 and Sheet1!C1 = c1 with the given modification time.
func workbook(ctrl *gomock.Controller, mtime time.Time, c1 string) *mocks.MockWorkbookConnection {
	conn := mocks.NewMockWorkbookConnection(ctrl)
	conn.EXPECT().FileIdentity(gomock.Any()).
		Return(domain.FileIdentity{Path: identity, ModTime: mtime}, nil).AnyTimes()
	conn.EXPECT().ListSheets(gomock.Any()).Return([]domain.Sheet{{Name: "Sheet1", Rows: 1, Cols: 3}}, nil).AnyTimes()
	conn.EXPECT().ReadFormulaCells(gomock.Any(), "Sheet1", domain.RowRange{First: 1, Last: 1}).Return([]domain.Cell{
		{Reference: domain.MustCellReference("Sheet1!B1"), Formula: "A1*2"},
		{Reference: domain.MustCellReference("Sheet1!C1"), Formula: c1},
	}, nil).AnyTimes()
	return conn
}

func TestManager_FingerprintMatchesBuild(t *testing.T) {
	ctrl := gomock.NewController(t)
	m, logger := newManager(ctrl, mocks.NewMockGraphStoreFactory(ctrl))
	conn := workbook(ctrl, modTime, "B1+1")

	tracer := telemetry.NewNoOpTracer()
	b := builder.New(refparser.New(), hasher.New(), scan.New(logger, tracer), logger, tracer)
	_, report, err := b.Build(context.Background(), conn, builder.Options{Build: domain.DefaultConfig().Build})
	require.NoError(t, err)

	live, err := m.Fingerprint(context.Background(), conn, domain.DefaultConfig().Build)
	require.NoError(t, err)
	assert.Equal(t, report.Fingerprint, live)
	assert.Equal(t, 2, live.FormulaCount)
}

func TestManager_Check(t *testing.T) {
	build := domain.DefaultConfig().Build

	t.Run("modified skips the formula scan", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m, _ := newManager(ctrl, mocks.NewMockGraphStoreFactory(ctrl))
		conn := mocks.NewMockWorkbookConnection(ctrl)
		conn.EXPECT().FileIdentity(gomock.Any()).
			Return(domain.FileIdentity{Path: identity, ModTime: modTime.Add(time.Hour)}, nil)

		reason, _, err := m.Check(context.Background(), conn, build, domain.Fingerprint{ModTime: modTime})
		require.NoError(t, err)
		assert.Equal(t, domain.StaleModified, reason)
	})

	t.Run("formula edit without a new timestamp", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m, _ := newManager(ctrl, mocks.NewMockGraphStoreFactory(ctrl))

		cached, err := m.Fingerprint(context.Background(), workbook(ctrl, modTime, "B1+1"), build)
		require.NoError(t, err)

		reason, live, err := m.Check(context.Background(), workbook(ctrl, modTime, "B1+2"), build, cached)
		require.NoError(t, err)
		assert.Equal(t, domain.StaleFormulas, reason)
		assert.NotEqual(t, cached.FormulaHash, live.FormulaHash)
	})

	t.Run("unchanged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m, _ := newManager(ctrl, mocks.NewMockGraphStoreFactory(ctrl))
		conn := workbook(ctrl, modTime, "B1+1")

		cached, err := m.Fingerprint(context.Background(), conn, build)
		require.NoError(t, err)

		reason, _, err := m.Check(context.Background(), conn, build, cached)
		require.NoError(t, err)
		assert.Equal(t, domain.StaleNone, reason)
	})

	t.Run("lost connection", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m, _ := newManager(ctrl, mocks.NewMockGraphStoreFactory(ctrl))
		conn := mocks.NewMockWorkbookConnection(ctrl)
		conn.EXPECT().FileIdentity(gomock.Any()).Return(domain.FileIdentity{}, errors.Join(domain.ErrConnectionLost, errors.New("gone")))

		_, _, err := m.Check(context.Background(), conn, build, domain.Fingerprint{ModTime: modTime})
		require.ErrorIs(t, err, domain.ErrConnectionLost)
	})
}
