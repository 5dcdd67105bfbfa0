// Package graphstore selects and shares cache backends.
package graphstore

import (
	"path/filepath"
	"sync"

	"go.trai.ch/xlgraph/internal/adapters/badgerstore"
	"go.trai.ch/xlgraph/internal/adapters/filestore"
	"go.trai.ch/xlgraph/internal/core/domain"
	"go.trai.ch/xlgraph/internal/core/ports"
)

// Factory implements ports.GraphStoreFactory. Stores are shared per backend
// and location and closed when their last user closes them, since BadgerDB
// holds an exclusive lock on its directory.
type Factory struct {
	logger ports.Logger

	mu   sync.Mutex
	open map[string]*sharedStore
}

// NewFactory creates a Factory. logger receives backend diagnostics and may be nil.
func NewFactory(logger ports.Logger) *Factory {
	return &Factory{logger: logger, open: make(map[string]*sharedStore)}
}

// Open returns the store for backend rooted at location.
func (f *Factory) Open(backend, location string) (ports.GraphStore, error) {
	location = filepath.Clean(location)
	id := backend + "\x00" + location

	f.mu.Lock()
	defer f.mu.Unlock()

	if s, ok := f.open[id]; ok {
		s.refs++
		return newHandle(s), nil
	}

	var store ports.GraphStore
	switch backend {
	case domain.BackendFile:
		store = filestore.NewStore(location)
	case domain.BackendBadger:
		cfg := badgerstore.DefaultConfig(filepath.Join(location, domain.BadgerDirName))
		cfg.Logger = f.logger
		bs, err := badgerstore.Open(cfg)
		if err != nil {
			return nil, err
		}
		store = bs
	default:
		return nil, domain.With(domain.ErrInvalidBackend, "backend", backend)
	}

	s := &sharedStore{store: store, id: id, factory: f, refs: 1}
	f.open[id] = s
	return newHandle(s), nil
}

// OpenCount returns the number of distinct stores currently open.
func (f *Factory) OpenCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.open)
}

func (f *Factory) release(s *sharedStore) error {
	f.mu.Lock()
	s.refs--
	if s.refs > 0 {
		f.mu.Unlock()
		return nil
	}
	delete(f.open, s.id)
	f.mu.Unlock()
	return s.store.Close()
}

type sharedStore struct {
	store   ports.GraphStore
	id      string
	factory *Factory
	refs    int
}

// handle is one user's reference to a shared store. Closing it twice is harmless.
type handle struct {
	ports.GraphStore

	shared *sharedStore
	once   sync.Once
	err    error
}

func newHandle(s *sharedStore) *handle {
	return &handle{GraphStore: s.store, shared: s}
}

// Close releases this reference.
func (h *handle) Close() error {
	h.once.Do(func() {
		h.err = h.shared.factory.release(h.shared)
	})
	return h.err
}
