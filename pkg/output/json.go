package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/sdejongh/photopuller/pkg/models"
)

// JSONFormatter formats output as JSON for automation and scripting.
// Nothing is written until Complete.
type JSONFormatter struct {
	writer io.Writer
	errors []string
}

// JSONDocument is the single document written by Complete
type JSONDocument struct {
	Scan  JSONScanData    `json:"scan"`
	Copy  *JSONCopyData   `json:"copy,omitempty"`
	Files []JSONFileEntry `json:"files"`
	// Errors lists fatal errors reported through Error
	Errors      []string `json:"errors,omitempty"`
	Interrupted bool     `json:"interrupted,omitempty"`
}

// JSONScanData combines the walk counters with the active set summary
type JSONScanData struct {
	Root string `json:"root"`
	models.ScanSummary
	Walk       models.ScanStats `json:"walk"`
	Exclusions []string         `json:"exclusions,omitempty"`
}

// JSONCopyData represents the copy report
type JSONCopyData struct {
	SessionID   string           `json:"session_id"`
	Status      string           `json:"status"`
	Destination string           `json:"destination"`
	Mode        string           `json:"mode"`
	DryRun      bool             `json:"dry_run"`
	Duration    string           `json:"duration"`
	DurationMs  int64            `json:"duration_ms"`
	Stats       models.CopyStats `json:"stats"`
}

// JSONFileEntry represents one file: its copy result after a copy, its
// scan snapshot otherwise
type JSONFileEntry struct {
	Source      string `json:"source"`
	Destination string `json:"destination,omitempty"`
	Status      string `json:"status,omitempty"`
	Reason      string `json:"reason,omitempty"`
	Size        int64  `json:"size,omitempty"`
	Modified    string `json:"modified,omitempty"`
	Type        string `json:"type,omitempty"`
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Start initializes the formatter
func (f *JSONFormatter) Start(writer io.Writer, phase Phase, totalFiles int, totalBytes int64) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	return nil
}

// Progress is ignored to keep the output a single parseable document
func (f *JSONFormatter) Progress(update ProgressUpdate) error {
	return nil
}

// Complete writes the document
func (f *JSONFormatter) Complete(result *Result) error {
	if f.writer == nil {
		f.writer = io.Discard
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(f.document(result))
}

func (f *JSONFormatter) document(result *Result) JSONDocument {
	doc := JSONDocument{
		Scan: JSONScanData{
			Root:        result.Root,
			ScanSummary: result.Summary,
			Walk:        result.Walk,
			Exclusions:  result.Exclusions,
		},
		Files:       make([]JSONFileEntry, 0),
		Errors:      f.errors,
		Interrupted: result.Interrupted,
	}

	report := result.Copy
	if report == nil {
		for _, file := range result.Files {
			entry := JSONFileEntry{
				Source: file.Path,
				Size:   file.Size,
				Type:   string(file.Type()),
			}
			if !file.Modified.IsZero() {
				entry.Modified = file.Modified.Format(time.RFC3339)
			}
			if file.Err != nil {
				entry.Status = string(models.StatusError)
				entry.Reason = file.Err.Error()
			}
			doc.Files = append(doc.Files, entry)
		}
		return doc
	}

	doc.Copy = &JSONCopyData{
		SessionID:   report.SessionID,
		Status:      string(report.Status),
		Destination: report.Destination,
		Mode:        string(report.Mode),
		DryRun:      report.DryRun,
		Duration:    report.Duration.Round(time.Millisecond).String(),
		DurationMs:  report.Duration.Milliseconds(),
		Stats:       report.Stats,
	}
	for _, res := range report.Results {
		doc.Files = append(doc.Files, JSONFileEntry{
			Source:      res.Source,
			Destination: res.Destination,
			Status:      string(res.Status),
			Reason:      res.Reason,
			Size:        res.Size,
		})
	}
	return doc
}

// Error records an error for the final document
func (f *JSONFormatter) Error(err error) error {
	f.errors = append(f.errors, err.Error())
	return nil
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}
