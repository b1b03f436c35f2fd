package output

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/sdejongh/photopuller/pkg/models"
)

// Phase names the operation a formatter is reporting on
type Phase string

const (
	PhaseScan Phase = "scan"
	PhaseCopy Phase = "copy"
)

// UpdateType identifies a progress notification
type UpdateType string

const (
	// UpdateDirectory is sent once per directory visited by a scan
	UpdateDirectory UpdateType = "directory"
	// UpdateFileProgress carries byte progress of the file being copied
	UpdateFileProgress UpdateType = "file_progress"
	// UpdateFileComplete is sent after every processed file
	UpdateFileComplete UpdateType = "file_complete"
)

// ProgressUpdate represents a progress notification during a scan or copy
type ProgressUpdate struct {
	Type         UpdateType
	FilePath     string
	Status       models.ResultStatus
	BytesWritten int64
	TotalBytes   int64
	Rate         float64 // MiB/s
	CurrentFile  int
	ScanStats    models.ScanStats
	CopyStats    models.CopyStats
}

// Result is everything a run produced, rendered once at the end
type Result struct {
	Root        string
	Walk        models.ScanStats
	Summary     models.ScanSummary
	Exclusions  []string
	Files       []models.FileInfo
	Copy        *models.CopyReport
	Interrupted bool
}

// Formatter defines the interface for output formatting
// Implementations include human-readable, progress bar and JSON formatters
type Formatter interface {
	// Start begins a phase; totalFiles and totalBytes are zero for a scan
	Start(writer io.Writer, phase Phase, totalFiles int, totalBytes int64) error

	// Progress reports progress during the current phase
	Progress(update ProgressUpdate) error

	// Complete finalizes output and displays the summary
	Complete(result *Result) error

	// Error reports a fatal error
	Error(err error) error

	// Name returns the formatter name
	Name() string
}

// New picks a formatter for format ("human" or "json"). Progress bars are
// only used when progress is requested and w is a terminal.
func New(format string, progress bool, w io.Writer) Formatter {
	if format == "json" {
		return NewJSONFormatter()
	}
	if progress && IsTerminal(w) {
		return NewProgressFormatter()
	}
	return NewHumanFormatter(IsTerminal(w))
}

// IsTerminal reports whether w is an interactive terminal
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
