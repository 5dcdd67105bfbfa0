// Package filestore persists dependency graphs as one JSON file per workbook.
package filestore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/xlgraph/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.GraphStore using a file-per-workbook strategy.
type Store struct {
	root string
}

// NewStore creates a Store rooted at dir. The directory is created on first write.
func NewStore(dir string) *Store {
	return &Store{root: dir}
}

// Get retrieves the cache entry for a workbook identity.
func (s *Store) Get(ctx context.Context, identity string) (*domain.CacheEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filename := s.Filename(identity)
	//nolint:gosec // Path is constructed from the cache directory and a hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "file", filename)
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrCacheCorrupt, zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error())), "file", filename)
	}
	if entry.Identity != identity {
		return nil, zerr.With(domain.With(domain.ErrCacheCorrupt, "file", filename), "identity", entry.Identity)
	}

	return &entry, nil
}

// Put stores the entry. The file is replaced atomically so readers never see a partial write.
func (s *Store) Put(ctx context.Context, entry *domain.CacheEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	filename := s.Filename(entry.Identity)
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	tmp, err := os.CreateTemp(filepath.Dir(filename), ".tmp-*")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if err := os.Chmod(tmp.Name(), domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	return nil
}

// Delete removes the entry for a workbook identity.
func (s *Store) Delete(ctx context.Context, identity string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(s.Filename(identity)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.Wrap(err, domain.ErrStoreDeleteFailed.Error())
	}
	return nil
}

// Close is a no-op; the store holds no open handles.
func (s *Store) Close() error {
	return nil
}

// Filename returns the cache file for a workbook identity. The workbook stem
// keeps the directory browsable; the hash keeps same-named workbooks apart.
func (s *Store) Filename(identity string) string {
	hash := sha256.Sum256([]byte(identity))
	stem := strings.TrimSuffix(filepath.Base(identity), filepath.Ext(identity))
	return filepath.Join(s.root, safeStem(stem)+"-"+hex.EncodeToString(hash[:6])+domain.GraphFileSuffix)
}

func safeStem(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "workbook"
	}
	return b.String()
}
