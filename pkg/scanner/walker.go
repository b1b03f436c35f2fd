package scanner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"

	"github.com/sdejongh/photopuller/pkg/logging"
	"github.com/sdejongh/photopuller/pkg/models"
)

// ProgressFunc is called once per visited directory with the running stats
type ProgressFunc func(dir string, stats models.ScanStats)

var errCancelled = errors.Base("scan cancelled")

// Scanner walks a directory tree collecting media files
type Scanner struct {
	logger logging.Logger
	stats  models.ScanStats
}

// New creates a scanner. A nil logger discards output.
func New(logger logging.Logger) *Scanner {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Scanner{logger: logger}
}

// Stats returns the counters of the most recent walk
func (s *Scanner) Stats() models.ScanStats {
	return s.stats
}

// Walk traverses root and returns every media file that survives the
// exclusion rules, in traversal order. Excluded directories are pruned
// before they are read. Unreadable directories are logged and skipped.
// Cancelling ctx stops the walk at the next directory and returns what was
// collected so far without error.
//
// The name and hidden-segment rules apply to the part of each path below
// root, so a root that itself lives under e.g. /tmp is still scanned.
func (s *Scanner) Walk(ctx context.Context, root string, onProgress ProgressFunc) ([]string, models.ScanStats, error) {
	s.stats = models.ScanStats{}

	if _, err := os.Stat(root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, s.stats, models.NotFound("scan", root, err)
		}
		return nil, s.stats, models.NewOpError(models.IOKind(err), "scan", root, err)
	}

	walkRoot, err := resolveRoot(root)
	if err != nil {
		return nil, s.stats, models.NewOpError(models.IOKind(err), "scan", root, err)
	}

	var files []string

	err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		path = rebase(root, walkRoot, path)
		if err != nil {
			s.logger.Warn(ctx, "Skipping unreadable entry", logging.Fields{
				"path":  path,
				"error": err.Error(),
			})
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if ctx.Err() != nil {
				return errCancelled
			}
			if path != root && s.excluded(root, path, d) {
				return fs.SkipDir
			}
			if onProgress != nil {
				onProgress(path, s.stats)
			}
			return nil
		}

		if !isFile(path, d) {
			return nil
		}

		s.stats.Scanned++

		kind := Classify(path)
		if kind == models.MediaNone {
			return nil
		}

		if s.excluded(root, path, d) {
			s.stats.Excluded++
			return nil
		}

		files = append(files, path)
		switch kind {
		case models.MediaPhoto:
			s.stats.PhotosFound++
		case models.MediaVideo:
			s.stats.VideosFound++
		case models.MediaPDF:
			s.stats.PDFsFound++
		}
		return nil
	})

	if errors.Is(err, errCancelled) {
		s.logger.Info(ctx, "Scan cancelled", logging.Fields{
			"root":  root,
			"found": len(files),
		})
		return files, s.stats, nil
	}
	if err != nil {
		return files, s.stats, models.NewOpError(models.IOKind(err), "scan", root, err)
	}

	s.logger.Info(ctx, "Scan completed", logging.Fields{
		"root":     root,
		"scanned":  s.stats.Scanned,
		"photos":   s.stats.PhotosFound,
		"videos":   s.stats.VideosFound,
		"pdfs":     s.stats.PDFsFound,
		"excluded": s.stats.Excluded,
	})

	return files, s.stats, nil
}

// resolveRoot returns the directory to walk for root. WalkDir does not
// follow a root that is itself a symlink, so such a root is resolved.
func resolveRoot(root string) (string, error) {
	info, err := os.Lstat(root)
	if err != nil {
		return "", err
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		return root, nil
	}
	return filepath.EvalSymlinks(root)
}

// rebase maps a path below walkRoot back under the root the caller gave
func rebase(root, walkRoot, path string) string {
	if root == walkRoot {
		return path
	}
	if path == walkRoot {
		return root
	}
	rel, err := filepath.Rel(walkRoot, path)
	if err != nil {
		return path
	}
	return filepath.Join(root, rel)
}

// excluded evaluates the exclusion rules for an entry below root
func (s *Scanner) excluded(root, path string, d fs.DirEntry) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	if excludedByName(rel) {
		return true
	}
	if d.IsDir() {
		return false
	}
	return tooSmall(func() (fs.FileInfo, error) { return os.Stat(path) })
}

// isFile accepts regular files and symlinks that resolve to one
func isFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
