package models

import (
	"time"
)

// CopyReport represents the results of a copy operation
type CopyReport struct {
	// Session details
	SessionID   string
	Destination string
	Mode        OrganizeMode
	DryRun      bool

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	Stats   CopyStats
	Results []CopyResult

	// Cancelled is set when the session stopped before the last file
	Cancelled bool

	Status CopyStatus
}

// CopyStatus represents the overall result
type CopyStatus string

const (
	// StatusSuccess indicates every file was processed without error
	StatusSuccess CopyStatus = "success"
	// StatusPartial indicates some files failed
	StatusPartial CopyStatus = "partial"
	// StatusFailed indicates every file failed
	StatusFailed CopyStatus = "failed"
	// StatusCancelled indicates the session was interrupted
	StatusCancelled CopyStatus = "cancelled"
)

// Finalize stamps the end time and derives the overall status
func (r *CopyReport) Finalize() {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)

	switch {
	case r.Cancelled:
		r.Status = StatusCancelled
	case r.Stats.Errors > 0 && r.Stats.Errors == r.Stats.Total:
		r.Status = StatusFailed
	case r.Stats.Errors > 0:
		r.Status = StatusPartial
	default:
		r.Status = StatusSuccess
	}
}

// Errors returns the error results in processing order
func (r *CopyReport) Errors() []CopyResult {
	var errs []CopyResult
	for _, res := range r.Results {
		if res.Status == StatusError {
			errs = append(errs, res)
		}
	}
	return errs
}

// ExitCode returns the appropriate exit code for the copy status
func (s CopyStatus) ExitCode() int {
	switch s {
	case StatusSuccess:
		return 0
	case StatusPartial:
		return 1
	case StatusFailed:
		return 2
	case StatusCancelled:
		return 3
	default:
		return 2
	}
}
