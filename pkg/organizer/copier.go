package organizer

import (
	"context"
	"io"
	"time"

	"github.com/sdejongh/photopuller/pkg/logging"
	"github.com/sdejongh/photopuller/pkg/models"
	"github.com/sdejongh/photopuller/pkg/storage"
)

// FileProgressFunc receives byte progress for the file being copied.
// rate is in MiB per second since the copy started.
type FileProgressFunc func(copied, total int64, rate float64)

// Minimum time between two progress reports for the same file
const progressReportInterval = 100 * time.Millisecond

// progressTracker throttles FileProgressFunc calls during one copy
type progressTracker struct {
	total          int64
	copied         int64
	lastReported   int64
	reported       bool
	start          time.Time
	lastReportTime time.Time
	onProgress     FileProgressFunc
	now            func() time.Time
}

func newProgressTracker(total int64, onProgress FileProgressFunc, now func() time.Time) *progressTracker {
	start := now()
	return &progressTracker{
		total:          total,
		start:          start,
		lastReportTime: start,
		onProgress:     onProgress,
		now:            now,
	}
}

func (t *progressTracker) advance(n int) {
	t.copied += int64(n)
	if t.onProgress == nil {
		return
	}
	if t.now().Sub(t.lastReportTime) >= progressReportInterval {
		t.report()
	}
}

// finish sends the final report unless the last one already covered every byte
func (t *progressTracker) finish() {
	if t.onProgress == nil {
		return
	}
	if !t.reported || t.copied != t.lastReported {
		t.report()
	}
}

func (t *progressTracker) report() {
	now := t.now()
	t.onProgress(t.copied, t.total, rateMiBps(t.copied, now.Sub(t.start)))
	t.lastReported = t.copied
	t.lastReportTime = now
	t.reported = true
}

func rateMiBps(bytes int64, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(bytes) / (1024 * 1024) / elapsed.Seconds()
}

// copyBlocks moves src to dst in blockSize writes
func copyBlocks(dst io.Writer, src io.Reader, buf []byte, tracker *progressTracker) (int64, error) {
	for {
		n, err := io.ReadFull(src, buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return tracker.copied, werr
			}
			tracker.advance(n)
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return tracker.copied, err
		}
	}
	tracker.finish()
	return tracker.copied, nil
}

// transfer copies src to the new file dst and applies meta to it. A failed
// transfer never leaves dst behind.
func (o *Organizer) transfer(ctx context.Context, src, dst string, meta *storage.FileInfo) (int64, error) {
	reader, err := o.backend.Open(ctx, src)
	if err != nil {
		return 0, models.NewOpError(models.IOKind(err), "open", src, err)
	}
	defer reader.Close()

	writer, err := o.backend.Create(ctx, dst)
	if err != nil {
		return 0, models.NewOpError(models.IOKind(err), "create", dst, err)
	}

	bufPtr, release := o.hasher.buffer()
	defer release()

	tracker := newProgressTracker(meta.Size, o.onFileProgress, o.now)
	written, err := copyBlocks(writer, reader, *bufPtr, tracker)
	closeErr := writer.Close()
	if err == nil && closeErr != nil {
		err = closeErr
	}
	if err == nil {
		err = o.backend.SetMetadata(ctx, dst, meta)
	}

	if err != nil {
		if delErr := o.backend.Delete(ctx, dst); delErr != nil {
			o.logger.Warn(ctx, "Failed to remove partial file", logging.Fields{
				"path":  dst,
				"error": delErr.Error(),
			})
		}
		return written, models.NewOpError(models.IOKind(err), "copy", src, err)
	}

	return written, nil
}
