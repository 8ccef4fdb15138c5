package store

import (
	"context"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/aweris/gitodb/internal/object"
)

func TestObjects(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	s := newTestStore(t, fsys)

	ids, err := s.PutMulti(ctx, object.TypeBlob, [][]byte{
		[]byte("one"), []byte("two"), []byte("three"),
	})
	require.NoError(t, err)

	// Noise that must not be reported.
	writeRaw(t, fsys, "ab"+strings.Repeat("0", 30), []byte("short name"))
	writeRaw(t, fsys, "ab"+strings.Repeat("0", 38)+tmpSuffix+"123", []byte("in flight"))
	require.NoError(t, fsys.MkdirAll(filepath.Join(testRoot, "objects", "info"), 0o755))
	require.NoError(t, fsys.MkdirAll(filepath.Join(testRoot, "objects", "pack"), 0o755))

	var listed []object.ID
	for id, err := range s.Objects(ctx) {
		require.NoError(t, err)
		listed = append(listed, id)
	}

	slices.SortFunc(ids, func(a, b object.ID) int { return strings.Compare(a.String(), b.String()) })
	require.Equal(t, ids, listed)
}

func TestObjectsEmpty(t *testing.T) {
	s, err := NewLocalStore("/nowhere", Config{Fs: afero.NewMemMapFs()})
	require.NoError(t, err)

	for range s.Objects(context.Background()) {
		t.Fatal("unexpected object")
	}
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	s := newTestStore(t, fsys)

	id, err := s.Put(ctx, object.TypeBlob, []byte("hello world"))
	require.NoError(t, err)

	for _, prefix := range []string{"95d0", "95D09F2B", helloID[:39], helloID} {
		actual, err := s.Resolve(ctx, prefix)
		require.NoError(t, err, prefix)
		require.Equal(t, id, actual)
	}

	for _, prefix := range []string{"", "95d", "95zz", helloID + "0"} {
		_, err := s.Resolve(ctx, prefix)
		require.ErrorIs(t, err, ErrInvalidID, prefix)
	}

	_, err = s.Resolve(ctx, "0000")
	require.ErrorIs(t, err, ErrObjectNotFound)
	_, err = s.Resolve(ctx, "95d1")
	require.ErrorIs(t, err, ErrObjectNotFound)

	writeRaw(t, fsys, "abcd"+strings.Repeat("0", 36), nil)
	writeRaw(t, fsys, "abcd"+strings.Repeat("1", 36), nil)

	_, err = s.Resolve(ctx, "abcd")
	require.ErrorIs(t, err, ErrAmbiguousID)

	actual, err := s.Resolve(ctx, "abcd1")
	require.NoError(t, err)
	require.Equal(t, "abcd"+strings.Repeat("1", 36), actual.String())
}
