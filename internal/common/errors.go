package common

import (
	"errors"
	"fmt"
)

// AppError carries a stable code alongside the message and cause.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Input-stage failures. SourceNotFound aborts the run; EmptySource is
// reported and the pipeline simply processes nothing.
var (
	ErrSourceNotFound = errors.New("source not found")
	ErrEmptySource    = errors.New("empty source")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// Per-item failure codes. These are captured as status fields on the
// produced records and carried into the report, never raised.
const (
	CodeSourceNotFound          = "SOURCE_NOT_FOUND"
	CodeEmptySource             = "EMPTY_SOURCE"
	CodeFetchFailed             = "FETCH_FAILED"
	CodeModelError              = "MODEL_ERROR"
	CodeUnparseableResponse     = "UNPARSEABLE_RESPONSE"
	CodeReviewSourceUnavailable = "REVIEW_SOURCE_UNAVAILABLE"
)

func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// CodeOf extracts the AppError code from an error chain, or "".
func CodeOf(err error) string {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}
