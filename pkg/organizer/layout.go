package organizer

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"gitlab.com/tozd/go/errors"

	"github.com/sdejongh/photopuller/internal/platform"
	"github.com/sdejongh/photopuller/pkg/models"
	"github.com/sdejongh/photopuller/pkg/storage"
)

const downloadsFolder = "Downloads"

// TypeFolder returns the top-level destination folder for a media type
func TypeFolder(t models.MediaType) string {
	switch t {
	case models.MediaPhoto:
		return "Photos"
	case models.MediaVideo:
		return "Videos"
	case models.MediaPDF:
		return "PDFs"
	default:
		return "Media"
	}
}

// DestinationFor computes where path would land under root. It neither
// touches the filesystem nor resolves collisions.
func DestinationFor(root, path string, info models.FileInfo, mode models.OrganizeMode) string {
	name := info.Name
	if name == "" {
		name = filepath.Base(path)
	}

	if fromDownloads(path) {
		return filepath.Join(root, downloadsFolder, name)
	}

	folder := TypeFolder(info.Type())

	if mode == models.OrganizeBySource {
		return filepath.Join(root, folder, platform.SourceName(path), name)
	}

	date := layoutDate(info)
	return filepath.Join(root, folder,
		fmt.Sprintf("%04d", date.Year()),
		fmt.Sprintf("%02d", int(date.Month())),
		name)
}

// fromDownloads reports whether any segment of path is a Downloads folder
func fromDownloads(path string) bool {
	want := platform.Fold(downloadsFolder)
	for _, segment := range platform.Segments(path) {
		if platform.Fold(segment) == want {
			return true
		}
	}
	return false
}

func layoutDate(info models.FileInfo) time.Time {
	switch {
	case !info.Modified.IsZero():
		return info.Modified
	case !info.Created.IsZero():
		return info.Created
	default:
		return time.Now()
	}
}

// suffixed returns dest with _n inserted before the extension; n == 0 is dest itself
func suffixed(dest string, n int) string {
	if n == 0 {
		return dest
	}
	ext := filepath.Ext(dest)
	stem := strings.TrimSuffix(dest, ext)
	return fmt.Sprintf("%s_%d%s", stem, n, ext)
}

// resolveTarget walks dest, dest_1, dest_2, ... and stops at the first
// candidate that is free or already holds a file of the given size. present
// is true in the latter case.
func resolveTarget(ctx context.Context, backend storage.Backend, dest string, size int64) (target string, present bool, err error) {
	for n := 0; ; n++ {
		candidate := suffixed(dest, n)

		info, err := backend.Stat(ctx, candidate)
		if errors.Is(err, fs.ErrNotExist) {
			return candidate, false, nil
		}
		if err != nil {
			return "", false, err
		}

		if !info.IsDir && info.Size == size {
			return candidate, true, nil
		}
	}
}
