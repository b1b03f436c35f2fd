package models

import (
	"io/fs"

	"gitlab.com/tozd/go/errors"
)

// Error kinds. Use errors.Is against these to classify any engine error.
var (
	// ErrValidation marks bad input, fatal to the whole call
	ErrValidation = errors.Base("validation error")
	// ErrNotFound marks a missing scan root
	ErrNotFound = errors.Base("not found")
	// ErrPrecondition marks an operation invoked out of order
	ErrPrecondition = errors.Base("precondition failed")
	// ErrPermission marks an item the process may not read or write
	ErrPermission = errors.Base("permission denied")
	// ErrIO marks a read or write failure during a copy
	ErrIO = errors.Base("i/o error")
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Is lets errors.Is(err, ErrValidation) match a ValidationError
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// OpError is a failure tied to a single path
type OpError struct {
	Kind error
	Op   string
	Path string
	Err  error
}

func (e *OpError) Error() string {
	msg := e.Op + " " + e.Path + ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the underlying cause
func (e *OpError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewOpError builds an OpError carrying the path as an error detail
func NewOpError(kind error, op, path string, err error) error {
	return errors.WithDetails(&OpError{Kind: kind, Op: op, Path: path, Err: err}, "op", op, "path", path)
}

// NotFound reports a missing path
func NotFound(op, path string, err error) error {
	return NewOpError(ErrNotFound, op, path, err)
}

// Precondition reports an operation attempted before its prerequisite
func Precondition(op, message string) error {
	return errors.WithDetails(errors.Errorf("%w: %s", ErrPrecondition, message), "op", op)
}

// IOKind picks ErrPermission or ErrIO for a filesystem error
func IOKind(err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return ErrPermission
	}
	return ErrIO
}
