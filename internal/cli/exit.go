package cli

import (
	"context"
	"fmt"
)

// ExitCodeInterrupted is returned when the user interrupts a command
const ExitCodeInterrupted = 130

// ExitError carries a process exit code out of a command. Commands return
// it after their output is written, so it has no message of its own.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// exitStatus maps a finished command to its exit error, nil on success
func exitStatus(ctx context.Context, code int) error {
	if ctx.Err() != nil {
		return &ExitError{Code: ExitCodeInterrupted}
	}
	if code == 0 {
		return nil
	}
	return &ExitError{Code: code}
}

// ReportedError is a failure the output formatter has already shown
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string {
	return e.Err.Error()
}

func (e *ReportedError) Unwrap() error {
	return e.Err
}
