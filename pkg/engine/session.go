package engine

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sdejongh/photopuller/internal/platform"
	"github.com/sdejongh/photopuller/pkg/logging"
	"github.com/sdejongh/photopuller/pkg/models"
	"github.com/sdejongh/photopuller/pkg/organizer"
	"github.com/sdejongh/photopuller/pkg/scanner"
	"github.com/sdejongh/photopuller/pkg/storage"
)

const bytesPerGB = 1024 * 1024 * 1024

// CopyOptions configures one copy or dry-run session
type CopyOptions struct {
	Destination string
	Mode        models.OrganizeMode
	DryRun      bool
}

// Session holds the result of one scan and the exclusion overlay applied
// to it. The baseline never changes after Scan; exclusions only recompute
// the active set. A Session is not safe for concurrent use.
type Session struct {
	ID     string
	Root   string
	Filter models.TypeFilter

	baseline   []models.FileInfo
	active     []models.FileInfo
	exclusions []string
	walkStats  models.ScanStats

	lastCopy *models.CopyReport

	backend storage.Backend
	logger  logging.Logger
}

// Scan walks root, keeps the file types selected by filter and applies
// exclusions. It fails with a ValidationError when filter selects nothing
// and with ErrNotFound when root does not exist.
func Scan(ctx context.Context, root string, filter models.TypeFilter, exclusions []string, onProgress scanner.ProgressFunc, backend storage.Backend, logger logging.Logger) (*Session, error) {
	if filter.Empty() {
		return nil, &models.ValidationError{Field: "types", Message: "at least one file type must be selected (photos, videos or PDFs)"}
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}

	logger.Info(ctx, "Scan started", logging.Fields{
		"root":  root,
		"types": strings.Join(filter.Names(), ","),
	})

	paths, walkStats, err := scanner.New(logger).Walk(ctx, root, onProgress)
	if err != nil {
		return nil, err
	}

	baseline := make([]models.FileInfo, 0, len(paths))
	for _, path := range paths {
		if !filter.Allows(scanner.Classify(path)) {
			continue
		}
		baseline = append(baseline, snapshot(ctx, path, logger))
	}

	s := newSession(root, filter, baseline, backend, logger)
	s.walkStats = walkStats
	for _, exclusion := range exclusions {
		s.addExclusion(exclusion)
	}
	s.applyExclusions()

	return s, nil
}

// newSession builds a session over an existing baseline
func newSession(root string, filter models.TypeFilter, baseline []models.FileInfo, backend storage.Backend, logger logging.Logger) *Session {
	if backend == nil {
		backend = storage.NewLocal()
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	s := &Session{
		ID:       uuid.New().String(),
		Root:     root,
		Filter:   filter,
		baseline: baseline,
		backend:  backend,
		logger:   logger,
	}
	s.applyExclusions()
	return s
}

// snapshot captures path into a FileInfo. A stat failure is recorded in Err.
func snapshot(ctx context.Context, path string, logger logging.Logger) models.FileInfo {
	kind := scanner.Classify(path)
	info := models.FileInfo{
		Path:    path,
		Name:    filepath.Base(path),
		IsPhoto: kind == models.MediaPhoto,
		IsVideo: kind == models.MediaVideo,
		IsPDF:   kind == models.MediaPDF,
	}

	stat, err := os.Stat(path)
	if err != nil {
		logger.Warn(ctx, "Failed to stat file", logging.Fields{
			"path":  path,
			"error": err.Error(),
		})
		info.Err = models.NewOpError(models.IOKind(err), "stat", path, err)
		return info
	}

	info.Size = stat.Size()
	info.Modified = stat.ModTime()
	info.Created = platform.CreatedTime(stat)
	return info
}

// AddExclusion hides every file whose path starts with path, ignoring case
func (s *Session) AddExclusion(path string) {
	if s.addExclusion(path) {
		s.applyExclusions()
	}
}

// RemoveExclusion drops path from the exclusion set. path is trimmed the
// same way AddExclusion trims it.
func (s *Session) RemoveExclusion(path string) {
	path = strings.TrimSpace(path)
	for i, existing := range s.exclusions {
		if existing == path {
			s.exclusions = append(s.exclusions[:i], s.exclusions[i+1:]...)
			s.applyExclusions()
			return
		}
	}
}

// ClearExclusions restores the active set to the full baseline
func (s *Session) ClearExclusions() {
	s.exclusions = nil
	s.applyExclusions()
}

func (s *Session) addExclusion(path string) bool {
	path = strings.TrimSpace(path)
	if path == "" {
		return false
	}
	for _, existing := range s.exclusions {
		if existing == path {
			return false
		}
	}
	s.exclusions = append(s.exclusions, path)
	return true
}

// applyExclusions rebuilds the active set from the baseline without
// touching the filesystem
func (s *Session) applyExclusions() {
	active := make([]models.FileInfo, 0, len(s.baseline))
	for _, file := range s.baseline {
		if !s.isExcluded(file.Path) {
			active = append(active, file)
		}
	}
	s.active = active
}

func (s *Session) isExcluded(path string) bool {
	for _, exclusion := range s.exclusions {
		if platform.HasFoldedPrefix(path, exclusion) {
			return true
		}
	}
	return false
}

// Exclusions returns the exclusion set in insertion order
func (s *Session) Exclusions() []string {
	return append([]string(nil), s.exclusions...)
}

// Files returns the active set in scan order
func (s *Session) Files() []models.FileInfo {
	return append([]models.FileInfo(nil), s.active...)
}

// WalkStats returns the raw counters of the directory walk
func (s *Session) WalkStats() models.ScanStats {
	return s.walkStats
}

// ScanStats summarizes the active set. Entries that failed to stat count
// toward TotalFiles only.
func (s *Session) ScanStats() models.ScanSummary {
	summary := models.ScanSummary{
		TotalFiles:    len(s.active),
		ExcludedCount: len(s.baseline) - len(s.active),
	}
	for _, file := range s.active {
		if !file.Valid() {
			continue
		}
		summary.TotalSizeBytes += file.Size
		switch {
		case file.IsPhoto:
			summary.Photos++
		case file.IsVideo:
			summary.Videos++
		case file.IsPDF:
			summary.PDFs++
		}
	}
	summary.TotalSizeGB = float64(summary.TotalSizeBytes) / bytesPerGB
	return summary
}

// CopyFiles copies the active set to opts.Destination and returns one
// result per processed file
func (s *Session) CopyFiles(ctx context.Context, opts CopyOptions, onProgress organizer.ProgressFunc, onFileProgress organizer.FileProgressFunc) ([]models.CopyResult, error) {
	report, err := s.Copy(ctx, opts, onProgress, onFileProgress)
	if err != nil {
		return nil, err
	}
	return report.Results, nil
}

// Copy runs a copy or dry-run session over the active set. Each call starts
// with fresh statistics and a fresh duplicate index.
func (s *Session) Copy(ctx context.Context, opts CopyOptions, onProgress organizer.ProgressFunc, onFileProgress organizer.FileProgressFunc) (*models.CopyReport, error) {
	if len(s.active) == 0 {
		return nil, models.Precondition("copy", "no files to copy, run a scan first")
	}
	if opts.Destination == "" {
		return nil, &models.ValidationError{Field: "destination", Message: "destination is required"}
	}
	if opts.Mode == "" {
		opts.Mode = models.OrganizeByDate
	}
	if _, err := models.ParseOrganizeMode(string(opts.Mode)); err != nil {
		return nil, err
	}

	files := make([]models.FileInfo, 0, len(s.active))
	for _, file := range s.active {
		if !file.Valid() {
			s.logger.Warn(ctx, "Skipping file that could not be read at scan time", logging.Fields{
				"path":  file.Path,
				"error": file.Err.Error(),
			})
			continue
		}
		files = append(files, file)
	}

	report := &models.CopyReport{
		SessionID:   uuid.New().String(),
		Destination: opts.Destination,
		Mode:        opts.Mode,
		DryRun:      opts.DryRun,
		StartTime:   time.Now(),
	}
	s.lastCopy = report

	s.logger.Info(ctx, "Copy started", logging.Fields{
		"session_id":  report.SessionID,
		"destination": opts.Destination,
		"mode":        string(opts.Mode),
		"dry_run":     opts.DryRun,
		"files":       len(files),
	})

	if opts.DryRun {
		report.Results = s.plan(ctx, files, opts, report, onProgress)
	} else {
		org, err := organizer.New(ctx, opts.Destination, s.backend, s.logger.WithFields(logging.Fields{
			"session_id": report.SessionID,
		}))
		if err != nil {
			report.Finalize()
			return nil, err
		}
		org.SetFileProgressCallback(onFileProgress)
		report.Results = org.CopyFiles(ctx, files, opts.Mode, func(file string, stats models.CopyStats, status models.ResultStatus) {
			report.Stats = stats
			if onProgress != nil {
				onProgress(file, stats, status)
			}
		})
		report.Stats = org.Stats()
	}

	report.Cancelled = ctx.Err() != nil && len(report.Results) < len(files)
	report.Finalize()
	return report, nil
}

// plan computes destinations without touching the destination tree.
// Duplicate detection does not run in a dry run.
func (s *Session) plan(ctx context.Context, files []models.FileInfo, opts CopyOptions, report *models.CopyReport, onProgress organizer.ProgressFunc) []models.CopyResult {
	report.Stats = models.CopyStats{DryRun: true}
	results := make([]models.CopyResult, 0, len(files))

	for _, file := range files {
		if ctx.Err() != nil {
			break
		}
		result := models.CopyResult{
			Status:      models.StatusWouldCopy,
			Source:      file.Path,
			Destination: organizer.DestinationFor(opts.Destination, file.Path, file, opts.Mode),
			Size:        file.Size,
		}
		report.Stats.Record(result)
		results = append(results, result)

		if onProgress != nil {
			onProgress(file.Path, report.Stats, result.Status)
		}
	}
	return results
}

// CopyStats returns the statistics of the most recent copy or dry run
func (s *Session) CopyStats() models.CopyStats {
	if s.lastCopy == nil {
		return models.CopyStats{}
	}
	return s.lastCopy.Stats
}
