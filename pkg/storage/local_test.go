package storage

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.txt")
	require.NoError(t, os.WriteFile(path, []byte("test content"), 0644))

	local := NewLocal()
	defer local.Close()
	ctx := context.Background()

	t.Run("ExistingFile", func(t *testing.T) {
		reader, err := local.Open(ctx, path)
		require.NoError(t, err)
		defer reader.Close()

		data, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, "test content", string(data))
	})

	t.Run("NonExistentFile", func(t *testing.T) {
		_, err := local.Open(ctx, filepath.Join(dir, "missing.txt"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestLocalCreate(t *testing.T) {
	dir := t.TempDir()
	local := NewLocal()
	ctx := context.Background()

	t.Run("NewFile", func(t *testing.T) {
		path := filepath.Join(dir, "new.txt")
		w, err := local.Create(ctx, path)
		require.NoError(t, err)
		_, err = w.Write([]byte("hello"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(data))
	})

	t.Run("RefusesExistingFile", func(t *testing.T) {
		path := filepath.Join(dir, "existing.txt")
		require.NoError(t, os.WriteFile(path, []byte("keep me"), 0644))

		_, err := local.Create(ctx, path)
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrExist)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "keep me", string(data))
	})
}

func TestLocalSetMetadata(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	local := NewLocal()
	modTime := time.Now().Add(-24 * time.Hour).Truncate(time.Second)

	require.NoError(t, local.SetMetadata(context.Background(), path, &FileInfo{ModTime: modTime, Permissions: 0600}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Truncate(time.Second).Equal(modTime))
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	assert.NoError(t, local.SetMetadata(context.Background(), path, nil))
}

func TestLocalStatDelete(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 2048), 0644))

	local := NewLocal()
	ctx := context.Background()

	info, err := local.Stat(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, int64(2048), info.Size)
	assert.False(t, info.IsDir)
	assert.Equal(t, path, info.Path)

	require.NoError(t, local.Delete(ctx, path))

	_, err = local.Stat(ctx, path)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Error(t, local.Delete(ctx, path))
}

func TestLocalMkdirAll(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "a", "b", "c")
	local := NewLocal()

	require.NoError(t, local.MkdirAll(context.Background(), nested))
	assert.DirExists(t, nested)

	// Idempotent
	require.NoError(t, local.MkdirAll(context.Background(), nested))
}
