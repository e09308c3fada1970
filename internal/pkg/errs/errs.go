package errs

import (
	"fmt"

	"batepapo/internal/pkg/logx"
)

// CustomError is the custom error structure used throughout the application.
// It carries a business code, a client-facing message and the HTTP status to answer with.
type CustomError struct {
	// Code is the business error code (see constants definition).
	Code int

	// Message is the user-friendly error description.
	Message string

	// Status is the standard HTTP status code corresponding to this error.
	Status int

	// Details lists human-readable validation messages. Only validation failures fill it.
	Details []string
}

// Error implements the standard Go error interface.
func (e CustomError) Error() string {
	return fmt.Sprintf("Error Code %d (HTTP %d): %s", e.Code, e.Status, e.Message)
}

// NewError constructs a *CustomError from a predefined error code.
// An unknown code yields ErrUnknown. For ErrUnknown the first detail, if it is an error, is logged.
func NewError(code int, details ...any) *CustomError {
	templateErr, ok := errorMap[code]

	if !ok {
		logx.Error(
			fmt.Errorf("attempted to create an error with an unknown code in errorMap"),
			"Unknown error code requested",
			"requested_code", code,
		)

		unknownErr := errorMap[ErrUnknown]
		return &unknownErr
	}

	customErr := templateErr

	if code == ErrUnknown && len(details) > 0 {
		if originalErr, ok := details[0].(error); ok {
			logx.Error(originalErr, "Handling ErrUnknown with underlying error")
		}
	}

	return &customErr
}

// NewValidationError builds an ErrInvalidParams error carrying the given messages.
func NewValidationError(messages []string) *CustomError {
	customErr := NewError(ErrInvalidParams)
	customErr.Details = messages
	return customErr
}
