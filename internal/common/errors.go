package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
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

// Error taxonomy for a pipeline run. ErrConfig aborts at startup; every other
// error is scoped to a single claim and never affects another claim's run.
var (
	ErrConfig                  = errors.New("configuration error")
	ErrUnsupportedVersion      = errors.New("unsupported version")
	ErrMissingRequiredDocument = errors.New("missing required document")
	ErrExtraction              = errors.New("extraction failed")
	ErrPolicyNotFound          = errors.New("policy not found")
	ErrInvalidInput            = errors.New("invalid input")
)

// Error constructors
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
