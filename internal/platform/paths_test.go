package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegments(t *testing.T) {
	tests := []struct {
		name string
		path string
		want []string
	}{
		{"Absolute", "/home/user/Pictures/cat.jpg", []string{"home", "user", "Pictures", "cat.jpg"}},
		{"Relative", "a/b", []string{"a", "b"}},
		{"DoubleSlash", "a//b/", []string{"a", "b"}},
		{"Dot", "./a", []string{".", "a"}},
		{"Empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Segments(filepath.FromSlash(tt.path)))
		})
	}
}

func TestHasFoldedPrefix(t *testing.T) {
	assert.True(t, HasFoldedPrefix("/Data/Windows/Web/a.jpg", "/data/windows"))
	assert.True(t, HasFoldedPrefix("/data/Windows2/a.jpg", "/DATA/WIN"), "prefix test is not segment aware")
	assert.False(t, HasFoldedPrefix("/data/a.jpg", "/data/b"))
	assert.True(t, HasFoldedPrefix("anything", ""))
}

func TestSourceName(t *testing.T) {
	if runtime.GOOS == "windows" {
		assert.Equal(t, "C", SourceName(`C:\Users\me\cat.jpg`))
		assert.Equal(t, "nasphotos", SourceName(`\\nas\photos\cat.jpg`))
		return
	}

	assert.Equal(t, "home", SourceName("/home/me/cat.jpg"))
	assert.Equal(t, "media", SourceName("media/cat.jpg"))
	assert.Equal(t, "C", SourceName("C:/cat.jpg"))
	assert.Equal(t, "Unknown", SourceName("/"))
	assert.Equal(t, "Unknown", SourceName(""))
}

func TestParseUNCPath(t *testing.T) {
	if runtime.GOOS != "windows" {
		host, share, rel := ParseUNCPath(`\\server\share\dir`)
		assert.Empty(t, host)
		assert.Empty(t, share)
		assert.Empty(t, rel)
		return
	}

	host, share, rel := ParseUNCPath(`\\server\share\dir\file.jpg`)
	assert.Equal(t, "server", host)
	assert.Equal(t, "share", share)
	assert.Equal(t, "dir/file.jpg", rel)
}

func TestValidatePath(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		err := ValidatePath("")
		require.Error(t, err)
		var pathErr *PathError
		require.ErrorAs(t, err, &pathErr)
		assert.Equal(t, "path is empty", pathErr.Message)
	})

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, ValidatePath(t.TempDir()))
	})
}

func TestCreatedTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.bin")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	info, err := os.Stat(path)
	require.NoError(t, err)

	created := CreatedTime(info)
	assert.False(t, created.IsZero())
	assert.WithinDuration(t, time.Now(), created, time.Hour)
}
