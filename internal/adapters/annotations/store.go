// Package annotations reads the TOML annotation store that labels cell ranges.
package annotations

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"go.trai.ch/xlgraph/internal/core/domain"
	"go.trai.ch/xlgraph/internal/core/ports"
	"go.trai.ch/zerr"
)

// document is the on-disk layout of annotations.toml.
type document struct {
	Annotations []record `toml:"annotation"`
}

type record struct {
	Range       string            `toml:"range"`
	Label       string            `toml:"label"`
	Description string            `toml:"description"`
	CreatedAt   time.Time         `toml:"created_at"`
	Metadata    map[string]string `toml:"metadata"`
}

type snapshot struct {
	modTime     time.Time
	size        int64
	annotations []domain.Annotation
}

// Store implements ports.AnnotationSource. Decoded files are kept until
// their modification time or size changes.
type Store struct {
	logger ports.Logger

	mu    sync.Mutex
	files map[string]snapshot
}

// NewStore creates an annotation store.
func NewStore(logger ports.Logger) *Store {
	return &Store{logger: logger, files: make(map[string]snapshot)}
}

var _ ports.AnnotationSource = (*Store)(nil)

// Exists reports whether an annotation file is present at path.
func (s *Store) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Lookup returns the annotations intersecting target, closest match first.
// A missing store yields no annotations.
func (s *Store) Lookup(ctx context.Context, path string, target domain.CellRange) ([]domain.Annotation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	all, err := s.load(path)
	if err != nil {
		return nil, err
	}

	var matches []domain.Annotation
	for _, a := range all {
		if a.Match(target) != domain.MatchNone {
			matches = append(matches, a)
		}
	}

	slices.SortStableFunc(matches, func(a, b domain.Annotation) int {
		if d := int(a.Match(target)) - int(b.Match(target)); d != 0 {
			return d
		}
		return strings.Compare(a.Label, b.Label)
	})

	return matches, nil
}

func (s *Store) load(path string) ([]domain.Annotation, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrAnnotationsReadFailed.Error()), "path", path)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if snap, ok := s.files[path]; ok && snap.modTime.Equal(info.ModTime()) && snap.size == info.Size() {
		return snap.annotations, nil
	}

	annotations, err := s.decode(path)
	if err != nil {
		return nil, err
	}

	s.files[path] = snapshot{modTime: info.ModTime(), size: info.Size(), annotations: annotations}
	return annotations, nil
}

func (s *Store) decode(path string) ([]domain.Annotation, error) {
	var doc document
	meta, err := toml.DecodeFile(path, &doc)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrAnnotationsReadFailed.Error()), "path", path)
	}

	for _, key := range meta.Undecoded() {
		s.logger.Warn("annotations: ignoring unknown key " + key.String())
	}

	out := make([]domain.Annotation, 0, len(doc.Annotations))
	for i, rec := range doc.Annotations {
		r, err := domain.ParseCellRange(rec.Range, "")
		if err != nil {
			err = zerr.With(zerr.Wrap(err, domain.ErrAnnotationsReadFailed.Error()), "path", path)
			return nil, zerr.With(err, "index", i)
		}
		out = append(out, domain.Annotation{
			Range:       r,
			Label:       rec.Label,
			Description: rec.Description,
			CreatedAt:   rec.CreatedAt,
			Metadata:    rec.Metadata,
		})
	}

	return out, nil
}
