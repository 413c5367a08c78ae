package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/satchel/storage"
)

func TestOpenMemory(t *testing.T) {
	medium, err := OpenMemory()
	require.NoError(t, err)
	require.NotNil(t, medium)
	defer medium.Close()

	ctx := context.Background()
	require.NoError(t, medium.Set(ctx, "k", []byte("v")))

	value, err := medium.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), value)
}

func TestOpen_FileSystem(t *testing.T) {
	medium, err := Open(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, medium)
	defer medium.Close()

	ctx := context.Background()
	require.NoError(t, medium.Set(ctx, "k", []byte("v")))
}

func TestOpen_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	medium, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, medium.Set(ctx, "collection", []byte(`{"payload":[]}`)))
	require.NoError(t, medium.Close())

	medium, err = Open(dir)
	require.NoError(t, err)
	defer medium.Close()

	value, err := medium.Get(ctx, "collection")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"payload":[]}`), value)
}

func TestGet_AbsentKey(t *testing.T) {
	medium, err := OpenMemory()
	require.NoError(t, err)
	defer medium.Close()

	value, err := medium.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestRemove(t *testing.T) {
	medium, err := OpenMemory()
	require.NoError(t, err)
	defer medium.Close()

	ctx := context.Background()
	require.NoError(t, medium.Set(ctx, "k", []byte("v")))
	require.NoError(t, medium.Remove(ctx, "k"))

	value, err := medium.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestRemove_AbsentKeyIsNoError(t *testing.T) {
	medium, err := OpenMemory()
	require.NoError(t, err)
	defer medium.Close()

	assert.NoError(t, medium.Remove(context.Background(), "missing"))
}

func TestClear(t *testing.T) {
	medium, err := OpenMemory()
	require.NoError(t, err)
	defer medium.Close()

	ctx := context.Background()
	require.NoError(t, medium.Set(ctx, "a", []byte("1")))
	require.NoError(t, medium.Set(ctx, "b", []byte("2")))

	require.NoError(t, medium.Clear(ctx))

	for _, key := range []string{"a", "b"} {
		value, err := medium.Get(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, value)
	}
}

func TestClosedMedium(t *testing.T) {
	medium, err := OpenMemory()
	require.NoError(t, err)
	require.NoError(t, medium.Close())

	ctx := context.Background()

	_, err = medium.Get(ctx, "k")
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	err = medium.Set(ctx, "k", []byte("v"))
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	err = medium.Remove(ctx, "k")
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	err = medium.Clear(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	assert.NoError(t, medium.Close(), "double close is tolerated")
}
