package organizer

import (
	"context"
	"path/filepath"
	"time"

	"github.com/sdejongh/photopuller/pkg/logging"
	"github.com/sdejongh/photopuller/pkg/models"
	"github.com/sdejongh/photopuller/pkg/storage"
)

// ProgressFunc is called after every processed file with the running stats
type ProgressFunc func(file string, stats models.CopyStats, status models.ResultStatus)

// Organizer copies media files into a structured destination tree.
// One Organizer is one copy session: its stats and duplicate index start
// empty and are never shared. It is not safe for concurrent use.
type Organizer struct {
	root    string
	backend storage.Backend
	logger  logging.Logger
	hasher  *ContentHasher

	// index maps content digests to the destination they were copied to
	index map[string]string
	stats models.CopyStats

	onFileProgress FileProgressFunc
	now            func() time.Time
}

// New creates an organizer writing under root, creating root if needed
func New(ctx context.Context, root string, backend storage.Backend, logger logging.Logger) (*Organizer, error) {
	if logger == nil {
		logger = logging.NewNullLogger()
	}

	if err := backend.MkdirAll(ctx, root); err != nil {
		return nil, models.NewOpError(models.IOKind(err), "mkdir", root, err)
	}

	return &Organizer{
		root:    root,
		backend: backend,
		logger:  logger,
		hasher:  NewContentHasher(),
		index:   make(map[string]string),
		now:     time.Now,
	}, nil
}

// SetFileProgressCallback sets the byte-level progress callback
func (o *Organizer) SetFileProgressCallback(callback FileProgressFunc) {
	o.onFileProgress = callback
}

// Stats returns a copy of the session counters
func (o *Organizer) Stats() models.CopyStats {
	return o.stats
}

// CopyOne copies a single file. Every failure is reported in the result;
// CopyOne does not update the session stats.
func (o *Organizer) CopyOne(ctx context.Context, path string, info models.FileInfo, mode models.OrganizeMode) models.CopyResult {
	digest, err := o.hasher.Hash(ctx, o.backend, path)
	if err != nil {
		return errorResult(path, "", models.NewOpError(models.IOKind(err), "hash", path, err))
	}

	if existing, ok := o.index[digest]; ok {
		return models.CopyResult{
			Status:      models.StatusDuplicate,
			Source:      path,
			Destination: existing,
			Reason:      "identical content already copied to " + existing,
		}
	}

	source, err := o.backend.Stat(ctx, path)
	if err != nil {
		return errorResult(path, "", models.NewOpError(models.IOKind(err), "stat", path, err))
	}

	planned := DestinationFor(o.root, path, info, mode)
	if err := o.backend.MkdirAll(ctx, filepath.Dir(planned)); err != nil {
		return errorResult(path, planned, models.NewOpError(models.IOKind(err), "mkdir", filepath.Dir(planned), err))
	}

	target, present, err := resolveTarget(ctx, o.backend, planned, source.Size)
	if err != nil {
		return errorResult(path, planned, models.NewOpError(models.IOKind(err), "stat", planned, err))
	}
	if present {
		return models.CopyResult{
			Status:      models.StatusSkipped,
			Source:      path,
			Destination: target,
			Reason:      "file of equal size already present",
		}
	}

	written, err := o.transfer(ctx, path, target, source)
	if err != nil {
		return errorResult(path, target, err)
	}

	o.index[digest] = target

	return models.CopyResult{
		Status:      models.StatusCopied,
		Source:      path,
		Destination: target,
		Size:        written,
	}
}

// CopyFiles copies files in order, updating stats after each one. It stops
// between files once ctx is cancelled and returns the results so far.
func (o *Organizer) CopyFiles(ctx context.Context, files []models.FileInfo, mode models.OrganizeMode, onProgress ProgressFunc) []models.CopyResult {
	results := make([]models.CopyResult, 0, len(files))

	for _, file := range files {
		if ctx.Err() != nil {
			o.logger.Info(ctx, "Copy cancelled", logging.Fields{
				"processed": len(results),
				"remaining": len(files) - len(results),
			})
			break
		}

		result := o.CopyOne(ctx, file.Path, file, mode)
		o.stats.Record(result)
		results = append(results, result)
		o.logResult(ctx, result)

		if onProgress != nil {
			onProgress(file.Path, o.stats, result.Status)
		}
	}

	o.logger.Info(ctx, "Copy completed", logging.Fields{
		"destination": o.root,
		"total":       o.stats.Total,
		"copied":      o.stats.Copied,
		"skipped":     o.stats.Skipped,
		"duplicates":  o.stats.Duplicates,
		"errors":      o.stats.Errors,
		"bytes":       o.stats.BytesCopied,
	})

	return results
}

func (o *Organizer) logResult(ctx context.Context, result models.CopyResult) {
	fields := logging.Fields{
		"source":      result.Source,
		"destination": result.Destination,
		"status":      string(result.Status),
	}
	if result.Status == models.StatusError {
		o.logger.Error(ctx, "Copy failed", result.Err, fields)
		return
	}
	o.logger.Debug(ctx, "File processed", fields)
}

func errorResult(source, dest string, err error) models.CopyResult {
	return models.CopyResult{
		Status:      models.StatusError,
		Source:      source,
		Destination: dest,
		Reason:      err.Error(),
		Err:         err,
	}
}
