package blob

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorgate/pkg/platform/sentinel"
)

func newFSStore(t *testing.T) *FSStore {
	t.Helper()
	store, err := NewFS(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestFSStore_WriteAndRead(t *testing.T) {
	ctx := context.Background()
	store := newFSStore(t)

	ref, err := store.Write(ctx, "temp/s1/a.txt", []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "temp/s1/a.txt", ref)

	data, err := store.Read(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	_, err = store.Read(ctx, "temp/s1/missing.txt")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestFSStore_Move(t *testing.T) {
	ctx := context.Background()
	store := newFSStore(t)

	_, err := store.Write(ctx, "temp/s1/a.txt", []byte("hello"))
	require.NoError(t, err)

	ref, err := store.Move(ctx, "temp/s1/a.txt", "uploads/u1/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "uploads/u1/a.txt", ref)

	_, err = store.Read(ctx, "temp/s1/a.txt")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	data, err := store.Read(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	_, err = store.Move(ctx, "temp/s1/gone.txt", "uploads/u1/gone.txt")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestFSStore_RemoveAll(t *testing.T) {
	ctx := context.Background()
	store := newFSStore(t)

	for _, path := range []string{"temp/s1/a.txt", "temp/s1/b.txt", "temp/s2/c.txt"} {
		_, err := store.Write(ctx, path, []byte("x"))
		require.NoError(t, err)
	}

	require.NoError(t, store.RemoveAll(ctx, "temp/s1"))

	_, err := store.Read(ctx, "temp/s1/a.txt")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	_, err = store.Read(ctx, "temp/s2/c.txt")
	assert.NoError(t, err)
}

func TestFSStore_StalePrefixes(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewFS(dir)
	require.NoError(t, err)

	_, err = store.Write(ctx, "temp/old/a.txt", []byte("x"))
	require.NoError(t, err)
	_, err = store.Write(ctx, "temp/fresh/b.txt", []byte("y"))
	require.NoError(t, err)

	// Age the old session by backdating its files on disk.
	past := time.Now().Add(-48 * time.Hour)
	oldDir := filepath.Join(dir, "temp", "old")
	require.NoError(t, os.Chtimes(filepath.Join(oldDir, "a.txt"), past, past))
	require.NoError(t, os.Chtimes(oldDir, past, past))

	stale, err := store.StalePrefixes(ctx, "temp", time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []string{"temp/old"}, stale)
}

func TestFSStore_StalePrefixesMissingRoot(t *testing.T) {
	store := newFSStore(t)

	stale, err := store.StalePrefixes(context.Background(), "temp", time.Now())
	require.NoError(t, err)
	assert.Empty(t, stale)
}
