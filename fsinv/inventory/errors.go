package inventory

import (
	"errors"
	"fmt"
	"io/fs"
)

// Common error types used across the inventory package
var (
	ErrPathEmpty            = errors.New("path cannot be empty")
	ErrNotFound             = errors.New("path does not exist")
	ErrAccessDenied         = errors.New("permission denied")
	ErrNotAFile             = errors.New("path is not a regular file")
	ErrNotADirectory        = errors.New("path is not a directory")
	ErrDecode               = errors.New("content is not valid UTF-8")
	ErrUnsupportedAlgorithm = errors.New("unsupported checksum algorithm")
)

// FailureKind tags a per-field failure so callers and tests can distinguish
// why a descriptor field is absent instead of asserting on nil alone.
type FailureKind string

const (
	FailureNotFound             FailureKind = "not_found"
	FailureAccessDenied         FailureKind = "access_denied"
	FailureNotAFile             FailureKind = "not_a_file"
	FailureNotADirectory        FailureKind = "not_a_directory"
	FailureDecode               FailureKind = "decode_error"
	FailureUnsupportedAlgorithm FailureKind = "unsupported_algorithm"
	FailureIO                   FailureKind = "io_failure"
)

// FieldError is a classified per-field failure. It never aborts a scan;
// the walker downgrades it to a nil field plus a diagnostic.
type FieldError struct {
	Kind FailureKind
	Path string
	Err  error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// newFieldError wraps err with its classified kind for path.
func newFieldError(path string, err error) *FieldError {
	return &FieldError{Kind: ClassifyError(err), Path: path, Err: err}
}

// ClassifyError maps an error onto the inventory failure taxonomy.
func ClassifyError(err error) FailureKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, ErrNotFound):
		return FailureNotFound
	case errors.Is(err, fs.ErrPermission), errors.Is(err, ErrAccessDenied):
		return FailureAccessDenied
	case errors.Is(err, ErrNotAFile):
		return FailureNotAFile
	case errors.Is(err, ErrNotADirectory):
		return FailureNotADirectory
	case errors.Is(err, ErrDecode):
		return FailureDecode
	case errors.Is(err, ErrUnsupportedAlgorithm):
		return FailureUnsupportedAlgorithm
	default:
		return FailureIO
	}
}

// FailureKindOf extracts the failure kind from err, classifying on the fly
// when err is not already a *FieldError.
func FailureKindOf(err error) FailureKind {
	var fieldErr *FieldError
	if errors.As(err, &fieldErr) {
		return fieldErr.Kind
	}
	return ClassifyError(err)
}
