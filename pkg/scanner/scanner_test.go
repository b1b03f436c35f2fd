package scanner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdejongh/photopuller/pkg/models"
)

// writeFile creates path with size bytes of filler
func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{'x'}, size), 0644))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want models.MediaType
	}{
		{"a/cat.jpg", models.MediaPhoto},
		{"a/CAT.JPEG", models.MediaPhoto},
		{"a/shot.HeIc", models.MediaPhoto},
		{"a/clip.mp4", models.MediaVideo},
		{"a/clip.M2TS", models.MediaVideo},
		{"a/clip.3gp", models.MediaVideo},
		{"a/doc.PDF", models.MediaPDF},
		{"a/notes.txt", models.MediaNone},
		{"a/jpg", models.MediaNone},
		{"a/archive.jpg.zip", models.MediaNone},
		{"a/noext", models.MediaNone},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.path))
		})
	}

	assert.True(t, IsPhoto("x.png"))
	assert.True(t, IsVideo("x.mkv"))
	assert.True(t, IsPDF("x.pdf"))
	assert.True(t, IsMedia("x.gif"))
	assert.False(t, IsMedia("x.docx"))
}

func TestExtensions(t *testing.T) {
	assert.Equal(t, []string{".pdf"}, Extensions(models.MediaPDF))
	assert.Contains(t, Extensions(models.MediaPhoto), ".heic")
	assert.Len(t, Extensions(models.MediaVideo), 19)
	assert.Empty(t, Extensions(models.MediaNone))
	for _, ext := range Extensions(models.MediaVideo) {
		assert.Equal(t, models.MediaVideo, Classify("clip"+ext))
	}
}

func TestShouldExclude(t *testing.T) {
	t.Run("DenylistSegment", func(t *testing.T) {
		assert.True(t, ShouldExclude(filepath.FromSlash("/nonexistent/Program Files/app/icon.png")))
		assert.True(t, ShouldExclude(filepath.FromSlash("/nonexistent/Users/me/AppData/pic.jpg")))
		assert.True(t, ShouldExclude(filepath.FromSlash("/nonexistent/project/node_modules/pkg/logo.png")))
	})

	t.Run("DenylistIsSubstringMatch", func(t *testing.T) {
		assert.True(t, ShouldExclude(filepath.FromSlash("/nonexistent/MyCacheFolder/pic.jpg")))
	})

	t.Run("HiddenSegment", func(t *testing.T) {
		assert.True(t, ShouldExclude(filepath.FromSlash("/nonexistent/.thumbnails/pic.jpg")))
		assert.True(t, ShouldExclude(filepath.FromSlash("/nonexistent/pics/.hidden.jpg")))
		assert.False(t, ShouldExclude(filepath.FromSlash("./nonexistent/pics/cat.jpg")))
	})

	t.Run("ThumbnailCache", func(t *testing.T) {
		assert.True(t, ShouldExclude(filepath.FromSlash("/nonexistent/pics/Thumbs.db")))
		assert.True(t, ShouldExclude(filepath.FromSlash("/nonexistent/pics/ehthumbs.db")))
		assert.True(t, ShouldExclude(filepath.FromSlash("/nonexistent/Thumbs.db.bak/pic.jpg")))
	})

	t.Run("UnknownSizeIsFailOpen", func(t *testing.T) {
		assert.False(t, ShouldExclude(filepath.FromSlash("/nonexistent/pics/cat.jpg")))
	})

	t.Run("SizeRule", func(t *testing.T) {
		dir := t.TempDir()
		small := filepath.Join(dir, "small.jpg")
		large := filepath.Join(dir, "large.jpg")
		writeFile(t, small, 1023)
		writeFile(t, large, 1024)

		rel := func(p string) string {
			r, err := filepath.Rel(dir, p)
			require.NoError(t, err)
			return r
		}

		// Evaluate only the part below the temp root, which may itself sit under /tmp
		assert.True(t, tooSmall(func() (os.FileInfo, error) { return os.Stat(small) }))
		assert.False(t, tooSmall(func() (os.FileInfo, error) { return os.Stat(large) }))
		assert.False(t, excludedByName(rel(small)))
	})

	t.Run("DirectoriesIgnoreSizeRule", func(t *testing.T) {
		dir := t.TempDir()
		assert.False(t, tooSmall(func() (os.FileInfo, error) { return os.Stat(dir) }))
	})
}

func TestWalk(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Pictures", "2023", "cat.jpg"), 2048)
	writeFile(t, filepath.Join(root, "Pictures", "clip.MOV"), 4096)
	writeFile(t, filepath.Join(root, "Documents", "tax.pdf"), 1500)
	writeFile(t, filepath.Join(root, "Documents", "notes.txt"), 2048)
	writeFile(t, filepath.Join(root, "Pictures", "icon.png"), 100)
	writeFile(t, filepath.Join(root, "AppData", "Roaming", "avatar.jpg"), 4096)
	writeFile(t, filepath.Join(root, ".git", "logo.png"), 4096)

	var visited []string
	s := New(nil)
	files, stats, err := s.Walk(context.Background(), root, func(dir string, _ models.ScanStats) {
		visited = append(visited, dir)
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		filepath.Join(root, "Pictures", "2023", "cat.jpg"),
		filepath.Join(root, "Pictures", "clip.MOV"),
		filepath.Join(root, "Documents", "tax.pdf"),
	}, files)

	// notes.txt and icon.png are scanned; excluded dirs are never entered
	assert.Equal(t, 5, stats.Scanned)
	assert.Equal(t, 1, stats.PhotosFound)
	assert.Equal(t, 1, stats.VideosFound)
	assert.Equal(t, 1, stats.PDFsFound)
	assert.Equal(t, 1, stats.Excluded)
	assert.Equal(t, stats, s.Stats())

	assert.Contains(t, visited, root)
	assert.Contains(t, visited, filepath.Join(root, "Pictures", "2023"))
	for _, dir := range visited {
		assert.NotContains(t, dir, "AppData", "excluded directory was descended into")
		assert.NotContains(t, dir, ".git", "hidden directory was descended into")
	}
	assert.Len(t, visited, 4, "root, Documents, Pictures, Pictures/2023")
}

func TestWalk_ProgressOncePerDirectory(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"a", "b", "c"} {
		writeFile(t, filepath.Join(root, dir, "one.jpg"), 2048)
		writeFile(t, filepath.Join(root, dir, "two.jpg"), 2049)
	}

	calls := map[string]int{}
	var last models.ScanStats
	_, stats, err := New(nil).Walk(context.Background(), root, func(dir string, running models.ScanStats) {
		calls[dir]++
		assert.GreaterOrEqual(t, running.PhotosFound, last.PhotosFound, "stats must only grow")
		last = running
	})
	require.NoError(t, err)

	assert.Len(t, calls, 4)
	for dir, n := range calls {
		assert.Equal(t, 1, n, "directory %s reported more than once", dir)
	}
	assert.Equal(t, 6, stats.PhotosFound)
}

func TestWalk_SymlinkRoot(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "real")
	writeFile(t, filepath.Join(target, "Pictures", "cat.jpg"), 4096)
	writeFile(t, filepath.Join(target, "Downloads", "scan.pdf"), 4096)

	link := filepath.Join(base, "card")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	var visited []string
	files, stats, err := New(nil).Walk(context.Background(), link, func(dir string, _ models.ScanStats) {
		visited = append(visited, dir)
	})
	require.NoError(t, err)

	// Paths stay under the root as given, not the link target
	assert.ElementsMatch(t, []string{
		filepath.Join(link, "Pictures", "cat.jpg"),
		filepath.Join(link, "Downloads", "scan.pdf"),
	}, files)
	assert.Equal(t, 2, stats.Scanned)
	assert.Contains(t, visited, link)
	assert.Contains(t, visited, filepath.Join(link, "Pictures"))
}

func TestWalk_NotFound(t *testing.T) {
	_, _, err := New(nil).Walk(context.Background(), filepath.Join(t.TempDir(), "missing"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestWalk_Cancellation(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.jpg"), 2048)
	for _, dir := range []string{"d1", "d2", "d3"} {
		writeFile(t, filepath.Join(root, dir, "pic.jpg"), 2048)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dirs := 0
	files, _, err := New(nil).Walk(ctx, root, func(string, models.ScanStats) {
		dirs++
		cancel()
	})
	require.NoError(t, err, "cancellation returns partial results, not an error")
	assert.Equal(t, 1, dirs)
	assert.Less(t, len(files), 4)
}

func TestWalk_PermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "open", "ok.jpg"), 2048)
	locked := filepath.Join(root, "locked")
	writeFile(t, filepath.Join(locked, "hidden.jpg"), 2048)
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	files, _, err := New(nil).Walk(context.Background(), root, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "open", "ok.jpg")}, files)
}
