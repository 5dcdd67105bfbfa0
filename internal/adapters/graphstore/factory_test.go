package graphstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/xlgraph/internal/adapters/graphstore"
	"go.trai.ch/xlgraph/internal/core/domain"
)

func TestFactory_Backends(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	for _, backend := range []string{domain.BackendFile, domain.BackendBadger} {
		t.Run(backend, func(t *testing.T) {
			t.Parallel()

			f := graphstore.NewFactory(nil)
			store, err := f.Open(backend, t.TempDir())
			require.NoError(t, err)

			got, err := store.Get(ctx, "/missing.xlsx")
			require.NoError(t, err)
			assert.Nil(t, got)
			require.NoError(t, store.Close())
			assert.Equal(t, 0, f.OpenCount())
		})
	}
}

func TestFactory_SharesBadgerPerLocation(t *testing.T) {
	t.Parallel()

	f := graphstore.NewFactory(nil)
	dir := t.TempDir()

	a, err := f.Open(domain.BackendBadger, dir)
	require.NoError(t, err)
	b, err := f.Open(domain.BackendBadger, filepath.Join(dir, "."))
	require.NoError(t, err, "a second open of the same directory must not hit the badger lock")
	assert.Equal(t, 1, f.OpenCount())

	require.NoError(t, a.Close())
	require.NoError(t, a.Close(), "double close releases once")
	assert.Equal(t, 1, f.OpenCount())

	require.NoError(t, b.Close())
	assert.Equal(t, 0, f.OpenCount())

	c, err := f.Open(domain.BackendBadger, dir)
	require.NoError(t, err, "reopen after the last close")
	require.NoError(t, c.Close())
}

func TestFactory_UnknownBackend(t *testing.T) {
	t.Parallel()

	_, err := graphstore.NewFactory(nil).Open("redis", t.TempDir())
	require.ErrorIs(t, err, domain.ErrInvalidBackend)
}
