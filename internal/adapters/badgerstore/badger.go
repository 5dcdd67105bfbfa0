// Package badgerstore persists dependency graphs in an embedded BadgerDB.
package badgerstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"go.trai.ch/xlgraph/internal/core/domain"
	"go.trai.ch/xlgraph/internal/core/ports"
	"go.trai.ch/zerr"
)

const keyPrefix = "graph/"

// Config holds configuration for a BadgerDB-backed store.
type Config struct {
	// Path is the database directory. Ignored when InMemory is true.
	Path string

	// InMemory keeps the database off disk. Used by tests.
	InMemory bool

	// SyncWrites makes every commit durable before returning.
	SyncWrites bool

	// Logger receives BadgerDB's internal log lines. Nil disables them.
	Logger ports.Logger

	// GCDiscardRatio is the value log GC threshold applied on Close. Zero skips GC.
	GCDiscardRatio float64
}

// DefaultConfig returns the configuration for an on-disk store at path.
func DefaultConfig(path string) Config {
	return Config{
		Path:           path,
		SyncWrites:     true,
		GCDiscardRatio: 0.5,
	}
}

// InMemoryConfig returns a configuration suited to tests.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// Store implements ports.GraphStore on a BadgerDB instance.
type Store struct {
	db  *badger.DB
	cfg Config
}

// Open creates and opens the database described by cfg.
func Open(cfg Config) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, domain.With(domain.ErrStoreCreateFailed, "backend", domain.BackendBadger)
		}
		if err := os.MkdirAll(cfg.Path, domain.DirPerm); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "path", cfg.Path)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}

	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "path", cfg.Path)
	}
	return &Store{db: db, cfg: cfg}, nil
}

// Get retrieves the cache entry for a workbook identity.
func (s *Store) Get(ctx context.Context, identity string) (*domain.CacheEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(identity))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "workbook", identity)
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrCacheCorrupt, zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error())), "workbook", identity)
	}
	return &entry, nil
}

// Put stores the entry in a single transaction.
func (s *Store) Put(ctx context.Context, entry *domain.CacheEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(entry.Identity), data)
	})
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "workbook", entry.Identity)
	}
	return nil
}

// Delete removes the entry for a workbook identity.
func (s *Store) Delete(ctx context.Context, identity string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key(identity))
	})
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreDeleteFailed.Error()), "workbook", identity)
	}
	return nil
}

// Close runs one value log GC pass and closes the database.
func (s *Store) Close() error {
	if s.cfg.GCDiscardRatio > 0 && !s.cfg.InMemory {
		// Best effort; ErrNoRewrite means there was nothing to collect.
		_ = s.db.RunValueLogGC(s.cfg.GCDiscardRatio)
	}
	return s.db.Close()
}

func line(format string, args []any) string {
	return "badger: " + strings.TrimSpace(fmt.Sprintf(format, args...))
}

func key(identity string) []byte {
	return []byte(keyPrefix + identity)
}

// badgerLogger adapts ports.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger ports.Logger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(zerr.New(line(format, args)))
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(line(format, args))
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.logger.Debug(line(format, args))
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(line(format, args))
}
