package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdejongh/photopuller/pkg/models"
)

func sampleResult(withCopy bool) *Result {
	result := &Result{
		Root: "/media/card",
		Walk: models.ScanStats{Scanned: 10, PhotosFound: 2, VideosFound: 1, Excluded: 3},
		Summary: models.ScanSummary{
			TotalFiles:     3,
			Photos:         2,
			Videos:         1,
			TotalSizeBytes: 3 * 1024 * 1024,
			TotalSizeGB:    3.0 / 1024,
		},
		Exclusions: []string{"/media/card/private"},
		Files: []models.FileInfo{
			{Path: "/media/card/a.jpg", Name: "a.jpg", Size: 1024 * 1024, IsPhoto: true, Modified: time.Date(2023, 7, 4, 0, 0, 0, 0, time.UTC)},
			{Path: "/media/card/b.jpg", Name: "b.jpg", IsPhoto: true, Err: errors.New("permission denied")},
		},
	}
	if !withCopy {
		return result
	}

	report := &models.CopyReport{
		SessionID:   "abc",
		Destination: "/backup",
		Mode:        models.OrganizeByDate,
		StartTime:   time.Now().Add(-time.Second),
		Results: []models.CopyResult{
			{Status: models.StatusCopied, Source: "/media/card/a.jpg", Destination: "/backup/Photos/2023/07/a.jpg", Size: 1024 * 1024},
			{Status: models.StatusError, Source: "/media/card/c.mp4", Reason: "disk full"},
		},
	}
	for _, r := range report.Results {
		report.Stats.Record(r)
	}
	report.Finalize()
	result.Copy = report
	return result
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer

	assert.Equal(t, "json", New("json", true, &buf).Name())
	// A buffer is never a terminal, so no progress bars
	assert.Equal(t, "human", New("human", true, &buf).Name())
	assert.False(t, IsTerminal(&buf))
}

func TestHumanFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewHumanFormatter(false)

	require.NoError(t, f.Start(&buf, PhaseCopy, 2, 2*1024*1024))
	require.NoError(t, f.Progress(ProgressUpdate{Type: UpdateFileProgress, FilePath: "/media/card/a.jpg"}))
	require.NoError(t, f.Progress(ProgressUpdate{Type: UpdateFileComplete, FilePath: "/media/card/a.jpg", Status: models.StatusCopied, CurrentFile: 1}))
	require.NoError(t, f.Progress(ProgressUpdate{Type: UpdateFileComplete, FilePath: "/media/card/c.mp4", Status: models.StatusError, CurrentFile: 2}))
	require.NoError(t, f.Complete(sampleResult(true)))

	out := buf.String()
	assert.Contains(t, out, "Copying 2 files, 2.0 MiB total")
	assert.Contains(t, out, "[1/2] ✓ /media/card/a.jpg (copied)")
	assert.Contains(t, out, "[2/2] ✗ /media/card/c.mp4 (error)")
	assert.Contains(t, out, "Selected files")
	assert.Contains(t, out, "/media/card/private")
	assert.Contains(t, out, "Duplicates")
	assert.Contains(t, out, "Status: partial")
	assert.Contains(t, out, "/media/card/c.mp4: disk full")
	assert.NotContains(t, out, "\x1b[", "colors disabled")
}

func TestHumanFormatter_DryRunSummary(t *testing.T) {
	var buf bytes.Buffer
	f := NewHumanFormatter(false)
	result := sampleResult(true)
	result.Copy.DryRun = true
	result.Copy.Stats = models.CopyStats{Total: 2, WouldCopy: 2, DryRun: true}

	require.NoError(t, f.Start(&buf, PhaseCopy, 2, 0))
	require.NoError(t, f.Complete(result))

	assert.Contains(t, buf.String(), "Dry run: nothing was written")
	assert.Contains(t, buf.String(), "Would copy")
}

func TestJSONFormatter_ScanOnly(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter()

	require.NoError(t, f.Start(&buf, PhaseScan, 0, 0))
	require.NoError(t, f.Progress(ProgressUpdate{Type: UpdateDirectory, FilePath: "/media/card"}))
	assert.Zero(t, buf.Len(), "progress is not streamed")
	require.NoError(t, f.Complete(sampleResult(false)))

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.NotContains(t, doc, "copy")

	scan := doc["scan"].(map[string]interface{})
	assert.Equal(t, float64(3), scan["total_files"])
	assert.Equal(t, float64(2), scan["photos"])
	assert.Equal(t, "/media/card", scan["root"])
	assert.Equal(t, float64(10), scan["walk"].(map[string]interface{})["total_scanned"])

	files := doc["files"].([]interface{})
	require.Len(t, files, 2)
	first := files[0].(map[string]interface{})
	assert.Equal(t, "photo", first["type"])
	assert.Equal(t, "2023-07-04T00:00:00Z", first["modified"])
	second := files[1].(map[string]interface{})
	assert.Equal(t, "error", second["status"])
}

func TestJSONFormatter_Copy(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter()

	require.NoError(t, f.Start(&buf, PhaseCopy, 2, 0))
	require.NoError(t, f.Error(errors.New("lock held")))
	require.NoError(t, f.Complete(sampleResult(true)))

	var doc JSONDocument
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.NotNil(t, doc.Copy)
	assert.Equal(t, "partial", doc.Copy.Status)
	assert.Equal(t, 1, doc.Copy.Stats.Copied)
	assert.Equal(t, 1, doc.Copy.Stats.Errors)
	require.Len(t, doc.Files, 2)
	assert.Equal(t, "/backup/Photos/2023/07/a.jpg", doc.Files[0].Destination)
	assert.Equal(t, "disk full", doc.Files[1].Reason)
	assert.Equal(t, []string{"lock held"}, doc.Errors)
}

func TestProgressFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewProgressFormatter()

	require.NoError(t, f.Start(&buf, PhaseScan, 0, 0))
	require.NoError(t, f.Progress(ProgressUpdate{Type: UpdateDirectory, FilePath: "/media/card/DCIM", ScanStats: models.ScanStats{Scanned: 4, PhotosFound: 2}}))
	require.NoError(t, f.Start(&buf, PhaseCopy, 2, 0))
	require.NoError(t, f.Progress(ProgressUpdate{Type: UpdateFileProgress, FilePath: "/media/card/a.jpg", BytesWritten: 512, TotalBytes: 1024, Rate: 1.5}))
	require.NoError(t, f.Progress(ProgressUpdate{Type: UpdateFileComplete, FilePath: "/media/card/a.jpg", CurrentFile: 1, Status: models.StatusCopied}))
	require.NoError(t, f.Complete(sampleResult(true)))

	out := buf.String()
	assert.Contains(t, out, "Copying 2 files")
	assert.Contains(t, out, "Selected files")
	assert.Equal(t, "progress", f.Name())
}

func TestTruncateLeft(t *testing.T) {
	assert.Equal(t, "short", truncateLeft("short", 10))
	assert.Equal(t, "...6789", truncateLeft("0123456789", 7))
}
