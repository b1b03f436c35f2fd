package models

// ResultStatus tags the outcome of processing one file in a copy session
type ResultStatus string

const (
	// StatusCopied indicates the file was written to its destination
	StatusCopied ResultStatus = "copied"
	// StatusSkipped indicates an equal-size file already sat at the destination
	StatusSkipped ResultStatus = "skipped"
	// StatusDuplicate indicates identical content was already copied this session
	StatusDuplicate ResultStatus = "duplicate"
	// StatusError indicates the file could not be processed
	StatusError ResultStatus = "error"
	// StatusWouldCopy is the dry-run outcome
	StatusWouldCopy ResultStatus = "would_copy"
)

// CopyResult records what happened to one source file
type CopyResult struct {
	Status ResultStatus `json:"status"`

	// Source is the scanned file path
	Source string `json:"source"`

	// Destination is the resolved target; for duplicates it is the path the
	// matching content was first copied to
	Destination string `json:"destination,omitempty"`

	// Reason explains skips, duplicates and errors
	Reason string `json:"reason,omitempty"`

	Size int64 `json:"size,omitempty"`

	// Err is the underlying cause for StatusError
	Err error `json:"-"`
}

// CopyStats holds the counters of exactly one copy or dry-run session
type CopyStats struct {
	Total       int   `json:"total"`
	Copied      int   `json:"copied"`
	Skipped     int   `json:"skipped"`
	Errors      int   `json:"errors"`
	Duplicates  int   `json:"duplicates"`
	WouldCopy   int   `json:"would_copy,omitempty"`
	BytesCopied int64 `json:"bytes_copied"`
	DryRun      bool  `json:"dry_run,omitempty"`
}

// Record counts one result
func (s *CopyStats) Record(r CopyResult) {
	s.Total++
	switch r.Status {
	case StatusCopied:
		s.Copied++
		s.BytesCopied += r.Size
	case StatusSkipped:
		s.Skipped++
	case StatusDuplicate:
		s.Duplicates++
	case StatusError:
		s.Errors++
	case StatusWouldCopy:
		s.WouldCopy++
	}
}
