package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Account errors
	ErrAccountNotFound      = fmt.Errorf("account not found: %w", ErrResourceNotFound)
	ErrUsernameAlreadyTaken = errors.New("username already taken")

	// Upload errors
	ErrNoFileUploaded      = errors.New("no file uploaded")
	ErrFileTooLarge        = errors.New("file exceeds the maximum allowed size")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrMediaHostFailure    = errors.New("remote media host failure")
)

// Entity errors. Each wraps ErrResourceNotFound so callers can match the
// family or the specific entity.
var (
	ErrProfileNotFound     = fmt.Errorf("profile not found: %w", ErrResourceNotFound)
	ErrCourseNotFound      = fmt.Errorf("course not found: %w", ErrResourceNotFound)
	ErrMaterialNotFound    = fmt.Errorf("course material not found: %w", ErrResourceNotFound)
	ErrPublicationNotFound = fmt.Errorf("publication not found: %w", ErrResourceNotFound)
	ErrTalkNotFound        = fmt.Errorf("talk not found: %w", ErrResourceNotFound)
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying sentinel
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewBadRequestError creates a bad request error with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}
