package blob

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorgate/pkg/platform/sentinel"
)

func TestMemoryStore_WriteAndRead(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	ref, err := store.Write(ctx, "temp/s1/a.txt", []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "temp/s1/a.txt", ref)

	data, err := store.Read(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	_, err = store.Read(ctx, "temp/s1/missing.txt")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestMemoryStore_WriteOverwrites(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	_, err := store.Write(ctx, "temp/s1/a.txt", []byte("first"))
	require.NoError(t, err)
	_, err = store.Write(ctx, "temp/s1/a.txt", []byte("second"))
	require.NoError(t, err)

	data, err := store.Read(ctx, "temp/s1/a.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)
}

func TestMemoryStore_Move(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

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

func TestMemoryStore_RemoveAll(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

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

func TestMemoryStore_StalePrefixes(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	store := NewMemory(WithClock(func() time.Time { return now }))

	_, err := store.Write(ctx, "temp/old/a.txt", []byte("x"))
	require.NoError(t, err)
	_, err = store.Write(ctx, "temp/mixed/stale.txt", []byte("z"))
	require.NoError(t, err)

	now = now.Add(48 * time.Hour)
	_, err = store.Write(ctx, "temp/fresh/b.txt", []byte("y"))
	require.NoError(t, err)
	// A fresh write keeps the whole session alive.
	_, err = store.Write(ctx, "temp/mixed/fresh.txt", []byte("z"))
	require.NoError(t, err)
	_, err = store.Write(ctx, "uploads/u1/kept.txt", []byte("k"))
	require.NoError(t, err)

	stale, err := store.StalePrefixes(ctx, "temp", now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []string{"temp/old"}, stale)
}
