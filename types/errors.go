package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for submission failure classification.
// Use errors.Is(err, ErrXxx) for typed assertions.
var (
	// ErrNoFileSelected indicates no candidate file was provided.
	ErrNoFileSelected = errors.New("no file selected")

	// ErrUnsupportedType indicates the file's media type is not accepted.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrFileTooLarge indicates the file exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrPermissionRequired indicates the sender has not confirmed they may
	// share the photo.
	ErrPermissionRequired = errors.New("permission not confirmed")

	// ErrEndpointNotConfigured indicates a missing or placeholder endpoint.
	ErrEndpointNotConfigured = errors.New("upload endpoint is not configured")

	// ErrReadFailure indicates the file content could not be read.
	ErrReadFailure = errors.New("read failure")

	// ErrTransportFailure indicates the upload could not be delivered.
	ErrTransportFailure = errors.New("transport failure")
)

// SubmissionError wraps an underlying error with a classification.
// Message, when set, is the human-readable text shown to the user and
// replaces the default "op: kind: err" rendering.
type SubmissionError struct {
	// Kind is the sentinel error for classification (e.g., ErrFileTooLarge).
	Kind error
	// Op is the step that failed (e.g., "validate", "encode", "upload").
	Op string
	// Message is an optional user-facing description.
	Message string
	// Err is the underlying error, if any.
	Err error
}

func (e *SubmissionError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Kind)
}

// Unwrap returns the underlying error for errors.Is/As chain traversal.
func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// Is reports whether the error matches the target sentinel.
func (e *SubmissionError) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

// NewSubmissionError creates a classified submission error.
func NewSubmissionError(kind error, op, message string, err error) *SubmissionError {
	return &SubmissionError{
		Kind:    kind,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// Classify returns the sentinel kind of err, or nil when err carries none.
func Classify(err error) error {
	for _, kind := range []error{
		ErrNoFileSelected,
		ErrUnsupportedType,
		ErrFileTooLarge,
		ErrPermissionRequired,
		ErrEndpointNotConfigured,
		ErrReadFailure,
		ErrTransportFailure,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
