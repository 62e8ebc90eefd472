package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for exit-code and abort handling.
type Kind int

const (
	// KindValidation covers roster and grading-scheme invariant violations.
	KindValidation Kind = iota
	// KindParse covers malformed CSV, XML, date and table input.
	KindParse
	// KindAbort is a declined destructive confirmation; a graceful no-op.
	KindAbort
	// KindInternal covers filesystem and other unexpected failures.
	KindInternal
)

// AppError is a structured application error with a stable code.
type AppError struct {
	Kind    Kind
	Code    string
	Message string
	Details interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Details)
	}
	return e.Message
}

// Is reports whether target carries the same error code. This lets callers
// match wrapped errors against the predefined values with errors.Is.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError with the given parameters
func New(kind Kind, code, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// NewWithDetails creates a new AppError with additional details
func NewWithDetails(kind Kind, code, message string, details interface{}) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Predefined error types for common scenarios
var (
	// Validation
	ErrValidationFailed = New(KindValidation, "VALIDATION_FAILED", "Roster validation failed")
	ErrDuplicateKey     = New(KindValidation, "DUPLICATE_KEY", "Duplicate key in dataset")
	ErrGroupConstraint  = New(KindValidation, "GROUP_CONSTRAINT", "Group membership constraint violated")
	ErrSchemeInvalid    = New(KindValidation, "SCHEME_INVALID", "Grading scheme totals inconsistent")

	// Parsing
	ErrParseFailed = New(KindParse, "PARSE_FAILED", "Malformed input")

	// User interaction
	ErrUserAbort = New(KindAbort, "USER_ABORT", "Aborted on user request")

	// Generation limits
	ErrCellRangeExceeded = New(KindInternal, "CELL_RANGE_EXCEEDED", "Cell address beyond column ZZ")
	ErrFormulaTooLarge   = New(KindInternal, "FORMULA_TOO_LARGE", "Too many criterion rows for one formula")

	// Infrastructure
	ErrNotFound   = New(KindInternal, "NOT_FOUND", "Resource not found")
	ErrFileSystem = New(KindInternal, "FILESYSTEM_ERROR", "File system error")
)

// Helper functions for specific error types

// DuplicateKeyError names the field and value contained twice in a dataset.
func DuplicateKeyError(field string, value interface{}) *AppError {
	return NewWithDetails(KindValidation, "DUPLICATE_KEY",
		fmt.Sprintf("%s contained twice in dataset", field), value)
}

// GroupConstraintError names the record registered in more than one real group.
func GroupConstraintError(identity string, groups []int) *AppError {
	return NewWithDetails(KindValidation, "GROUP_CONSTRAINT",
		fmt.Sprintf("student %s registered in more than one non-zero group", identity), groups)
}

// SchemeError reports inconsistent point sums in a grading scheme section.
func SchemeError(section string, got, want int) *AppError {
	return NewWithDetails(KindValidation, "SCHEME_INVALID",
		fmt.Sprintf("sum of points inconsistent in %s", section),
		fmt.Sprintf("%d != %d", got, want))
}

// ParseError creates a parse error with source context
func ParseError(source string, err error) *AppError {
	return NewWithDetails(KindParse, "PARSE_FAILED",
		fmt.Sprintf("failed to parse %s", source), err.Error())
}

// ParseErrorf creates a parse error from a format string
func ParseErrorf(format string, args ...interface{}) *AppError {
	return New(KindParse, "PARSE_FAILED", fmt.Sprintf(format, args...))
}

// FileSystemError creates a filesystem error for the named operation
func FileSystemError(operation string, err error) *AppError {
	return NewWithDetails(KindInternal, "FILESYSTEM_ERROR",
		fmt.Sprintf("file system error during %s", operation), err.Error())
}

// IsAbort reports whether err is a declined confirmation anywhere in its chain.
func IsAbort(err error) bool {
	return errors.Is(err, ErrUserAbort)
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Kind == KindValidation
}
