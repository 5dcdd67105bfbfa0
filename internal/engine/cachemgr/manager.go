// Package cachemgr persists built graphs and decides when they are stale.
package cachemgr

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/xlgraph/internal/core/domain"
	"go.trai.ch/xlgraph/internal/core/ports"
	"go.trai.ch/xlgraph/internal/engine/scan"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Manager loads, saves and invalidates cache entries through the configured backend.
type Manager struct {
	factory ports.GraphStoreFactory
	hasher  ports.FormulaHasher
	scanner *scan.Scanner
	logger  ports.Logger

	loads singleflight.Group
}

// New creates a Manager.
func New(factory ports.GraphStoreFactory, hasher ports.FormulaHasher, scanner *scan.Scanner, logger ports.Logger) *Manager {
	return &Manager{factory: factory, hasher: hasher, scanner: scanner, logger: logger}
}

// Load returns the stored entry for identity, or nil when there is none.
// Concurrent loads of the same entry share one read. The entry is not
// validated against the workbook; callers check IsStale. An entry that cannot
// be decoded is reported as absent so the next build replaces it.
func (m *Manager) Load(ctx context.Context, cfg domain.CacheConfig, identity string) (*domain.CacheEntry, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	key := cfg.Backend + "\x00" + cfg.Location + "\x00" + identity
	v, err, _ := m.loads.Do(key, func() (any, error) {
		return m.load(ctx, cfg, identity)
	})
	if err != nil {
		return nil, err
	}
	entry, _ := v.(*domain.CacheEntry)
	return entry, nil
}

func (m *Manager) load(ctx context.Context, cfg domain.CacheConfig, identity string) (*domain.CacheEntry, error) {
	store, err := m.factory.Open(cfg.Backend, cfg.Location)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	entry, err := store.Get(ctx, identity)
	if err != nil {
		if errors.Is(err, domain.ErrCacheCorrupt) {
			m.logger.Warn(fmt.Sprintf("ignoring cached graph for %s: %v", identity, err))
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

// Save persists a sealed graph under identity, replacing any previous entry.
func (m *Manager) Save(
	ctx context.Context,
	cfg domain.CacheConfig,
	identity, name string,
	g *domain.DependencyGraph,
	fp domain.Fingerprint,
	report *domain.BuildReport,
) error {
	if !cfg.Enabled {
		return nil
	}

	entry, err := domain.NewCacheEntry(identity, name, g, fp, report)
	if err != nil {
		return err
	}

	store, err := m.factory.Open(cfg.Backend, cfg.Location)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Put(ctx, entry); err != nil {
		return err
	}
	m.logger.Debug(fmt.Sprintf("cached graph for %s (%d nodes)", identity, entry.NodeCount))
	return nil
}

// Invalidate removes the entry for identity. Annotations are stored elsewhere and are not touched.
func (m *Manager) Invalidate(ctx context.Context, cfg domain.CacheConfig, identity string) error {
	if !cfg.Enabled {
		return nil
	}

	store, err := m.factory.Open(cfg.Backend, cfg.Location)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	return store.Delete(ctx, identity)
}

// IsStale reports whether entry no longer describes the workbook with the live fingerprint.
func (m *Manager) IsStale(entry *domain.CacheEntry, live domain.Fingerprint) bool {
	return Reason(entry, live) != domain.StaleNone
}

// Reason explains why entry is stale against live, or returns StaleNone.
func Reason(entry *domain.CacheEntry, live domain.Fingerprint) domain.StaleReason {
	if entry.Version != domain.CacheSchemaVersion {
		return domain.StaleSchema
	}
	return entry.Fingerprint.Compare(live)
}

// Fingerprint computes the live fingerprint of conn by reading every formula
// cell and hashing it with the routine the builder uses at save time.
func (m *Manager) Fingerprint(ctx context.Context, conn ports.WorkbookConnection, build domain.BuildConfig) (domain.Fingerprint, error) {
	identity, err := conn.FileIdentity(ctx)
	if err != nil {
		return domain.Fingerprint{}, err
	}

	var formulas []domain.Cell
	_, err = m.scanner.Scan(ctx, conn, scan.OptionsFrom(build, nil), func(b scan.Batch) error {
		for _, c := range b.Cells {
			if c.HasFormula() {
				formulas = append(formulas, c)
			}
		}
		return nil
	})
	if err != nil {
		return domain.Fingerprint{}, zerr.With(err, "workbook", identity.Path)
	}

	return domain.Fingerprint{
		ModTime:      identity.ModTime,
		FormulaHash:  m.hasher.HashFormulas(formulas),
		FormulaCount: len(formulas),
	}, nil
}

// Check compares cached against the live workbook. The modification time is
// compared first; the formulas are only read and hashed when it matches.
func (m *Manager) Check(
	ctx context.Context,
	conn ports.WorkbookConnection,
	build domain.BuildConfig,
	cached domain.Fingerprint,
) (domain.StaleReason, domain.Fingerprint, error) {
	identity, err := conn.FileIdentity(ctx)
	if err != nil {
		return domain.StaleNone, domain.Fingerprint{}, err
	}
	if !cached.ModTime.Equal(identity.ModTime) {
		return domain.StaleModified, domain.Fingerprint{ModTime: identity.ModTime}, nil
	}

	live, err := m.Fingerprint(ctx, conn, build)
	if err != nil {
		return domain.StaleNone, domain.Fingerprint{}, err
	}
	return cached.Compare(live), live, nil
}
