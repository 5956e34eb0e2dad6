package errors

import (
	"errors"
	"fmt"
)

var (
	ErrBackendUnavailable = errors.New("detection backend is unreachable")

	ErrIncidentNotFound = errors.New("incident not found")
	ErrCargoNotFound    = errors.New("cargo not found")

	ErrInvalidInput      = errors.New("invalid input data")
	ErrReviewEmpty       = errors.New("review requires at least one image or a note")
	ErrUpdateIncomplete  = errors.New("update classification requires bag type, damage type, an image and notes")
	ErrErrorTypeRequired = errors.New("an error type must be selected")

	ErrInvalidToken = errors.New("invalid or expired session token")
	ErrInvalidRole  = errors.New("invalid session role")
)

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
