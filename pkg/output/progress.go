package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/term"

	"github.com/sdejongh/photopuller/pkg/models"
)

const (
	scanTemplate pb.ProgressBarTemplate = `{{cycle . "⠋" "⠙" "⠹" "⠸" "⠼" "⠴" "⠦" "⠧" "⠇" "⠏"}} {{string . "found"}} {{string . "dir"}}`
	copyTemplate pb.ProgressBarTemplate = `{{counters . }} {{bar . }} {{percent . }} {{string . "file"}} {{string . "rate"}}`

	refreshRate    = 100 * time.Millisecond
	defaultWidth   = 120
	maxNameDisplay = 40
	maxDirDisplay  = 60
)

// ProgressFormatter formats output with progress bars
type ProgressFormatter struct {
	mu        sync.Mutex
	writer    io.Writer
	termWidth int
	bar       *pb.ProgressBar
	phase     Phase
}

// NewProgressFormatter creates a new progress bar formatter
func NewProgressFormatter() *ProgressFormatter {
	return &ProgressFormatter{}
}

// Start finishes any bar of the previous phase and starts a new one
func (f *ProgressFormatter) Start(writer io.Writer, phase Phase, totalFiles int, totalBytes int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	f.termWidth = terminalWidth(writer)
	f.finishBar()
	f.phase = phase

	tmpl := scanTemplate
	total := 0
	if phase == PhaseCopy {
		tmpl = copyTemplate
		total = totalFiles
		fmt.Fprintf(writer, "Copying %d files\n", totalFiles)
	}

	f.bar = tmpl.New(total).
		SetWriter(writer).
		SetWidth(f.termWidth).
		SetRefreshRate(refreshRate).
		Set(pb.Terminal, true).
		Set("found", "").
		Set("dir", "").
		Set("file", "").
		Set("rate", "")
	f.bar.Start()

	return nil
}

// Progress updates the current bar
func (f *ProgressFormatter) Progress(update ProgressUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.bar == nil {
		return nil
	}

	switch update.Type {
	case UpdateDirectory:
		s := update.ScanStats
		found := s.PhotosFound + s.VideosFound + s.PDFsFound
		f.bar.Set("found", fmt.Sprintf("%d media of %d files", found, s.Scanned))
		f.bar.Set("dir", truncateLeft(update.FilePath, maxDirDisplay))

	case UpdateFileProgress:
		percent := float64(0)
		if update.TotalBytes > 0 {
			percent = float64(update.BytesWritten) / float64(update.TotalBytes) * 100
		}
		f.bar.Set("file", fmt.Sprintf("%s %3.0f%%", truncateLeft(filepath.Base(update.FilePath), maxNameDisplay), percent))
		f.bar.Set("rate", fmt.Sprintf("%.1f MiB/s", update.Rate))

	case UpdateFileComplete:
		f.bar.SetCurrent(int64(update.CurrentFile))
		if update.Status == models.StatusError {
			f.bar.Set("file", truncateLeft(filepath.Base(update.FilePath), maxNameDisplay)+" failed")
		}
	}

	return nil
}

// Complete finalizes output and displays summary
func (f *ProgressFormatter) Complete(result *Result) error {
	f.mu.Lock()
	f.finishBar()
	w := f.writer
	f.mu.Unlock()

	if w == nil {
		w = io.Discard
	}
	if result.Interrupted {
		fmt.Fprintln(w, "\nInterrupted")
	}
	renderSummary(w, result, true)
	return nil
}

// Error reports an error
func (f *ProgressFormatter) Error(err error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.finishBar()
	if f.writer != nil {
		fmt.Fprintf(f.writer, "\n❌ Error: %v\n", err)
	}
	return nil
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}

func (f *ProgressFormatter) finishBar() {
	if f.bar != nil {
		f.bar.Finish()
		f.bar = nil
	}
}

// terminalWidth returns the width of w when it is a terminal
func terminalWidth(w io.Writer) int {
	if file, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(file.Fd())); err == nil && width > 0 {
			return width
		}
	}
	// Default if we couldn't detect (pipe, redirect, etc.)
	return defaultWidth
}

// truncateLeft keeps the tail of s, which for paths is the informative part
func truncateLeft(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return "..." + string(runes[len(runes)-max+3:])
}
