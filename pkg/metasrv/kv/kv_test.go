package kv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, s Store) {
	ctx := context.Background()

	_, err := s.Get(ctx, []byte("missing"))
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(ctx, []byte("b/2"), []byte("two")))
	require.NoError(t, s.Put(ctx, []byte("a/1"), []byte("one")))
	require.NoError(t, s.Put(ctx, []byte("b/1"), []byte("uno")))
	require.NoError(t, s.Put(ctx, []byte("b/1"), []byte("one")))

	value, err := s.Get(ctx, []byte("b/1"))
	require.NoError(t, err)
	require.Equal(t, []byte("one"), value)

	kvs, err := s.Range(ctx, []byte("b/"))
	require.NoError(t, err)
	require.Equal(t, []KeyValue{
		{Key: []byte("b/1"), Value: []byte("one")},
		{Key: []byte("b/2"), Value: []byte("two")},
	}, kvs)

	kvs, err = s.Range(ctx, []byte("c/"))
	require.NoError(t, err)
	require.Empty(t, kvs)

	kvs, err = s.Range(ctx, nil)
	require.NoError(t, err)
	require.Len(t, kvs, 3)
}

func TestMemStore(t *testing.T) {
	testStore(t, NewMemStore())
}

func TestBoltStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.db")

	s, err := OpenBoltStore(path)
	require.NoError(t, err)
	testStore(t, s)
	require.NoError(t, s.Close())

	// Entries survive reopening.
	s, err = OpenBoltStore(path)
	require.NoError(t, err)
	defer s.Close()

	value, err := s.Get(context.Background(), []byte("a/1"))
	require.NoError(t, err)
	require.Equal(t, []byte("one"), value)
}

func TestBoltStore_CanceledContext(t *testing.T) {
	s, err := OpenBoltStore(filepath.Join(t.TempDir(), "meta.db"))
	require.NoError(t, err)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, s.Put(ctx, []byte("k"), []byte("v")), context.Canceled)
}
