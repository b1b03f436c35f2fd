package output

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/sdejongh/photopuller/pkg/models"
)

// HumanFormatter formats output in human-readable format, one line per file
type HumanFormatter struct {
	writer     io.Writer
	colorize   bool
	phase      Phase
	totalFiles int
}

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter(colorize bool) *HumanFormatter {
	return &HumanFormatter{colorize: colorize}
}

// Start initializes the formatter
func (f *HumanFormatter) Start(writer io.Writer, phase Phase, totalFiles int, totalBytes int64) error {
	f.writer = writer
	f.phase = phase
	f.totalFiles = totalFiles

	if writer == nil {
		return nil
	}

	switch phase {
	case PhaseScan:
		fmt.Fprintln(writer, "Scanning...")
	case PhaseCopy:
		fmt.Fprintf(writer, "Copying %d files, %s total\n", totalFiles, humanize.IBytes(uint64(totalBytes)))
	}
	return nil
}

// Progress prints one line per processed file. Directory and byte
// progress is left to the progress bar formatter.
func (f *HumanFormatter) Progress(update ProgressUpdate) error {
	if f.writer == nil || update.Type != UpdateFileComplete {
		return nil
	}

	symbol := "✓"
	switch update.Status {
	case models.StatusError:
		symbol = "✗"
	case models.StatusSkipped, models.StatusDuplicate:
		symbol = "="
	case models.StatusWouldCopy:
		symbol = "→"
	}

	fmt.Fprintf(f.writer, "[%d/%d] %s %s (%s)\n",
		update.CurrentFile, f.totalFiles,
		statusColor(update.Status, f.colorize).Sprint(symbol),
		update.FilePath, update.Status)

	return nil
}

// Complete finalizes output and displays summary
func (f *HumanFormatter) Complete(result *Result) error {
	if f.writer == nil {
		f.writer = io.Discard
	}
	if result.Interrupted {
		fmt.Fprintln(f.writer, "\nInterrupted")
	}
	renderSummary(f.writer, result, f.colorize)
	return nil
}

// Error reports an error
func (f *HumanFormatter) Error(err error) error {
	if f.writer != nil {
		fmt.Fprintf(f.writer, "Error: %v\n", err)
	}
	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}
