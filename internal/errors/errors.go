package errors

import (
	"errors"
	"net/http"
	"time"
)

var (
	// ErrResourceNotFound is returned when a requested id does not exist.
	ErrResourceNotFound = errors.New("resource not found")
	// ErrDatabaseIntegrity is returned when a write violates a referential constraint.
	ErrDatabaseIntegrity = errors.New("integrity violation")
)

// FieldMessage is a single field-level validation violation.
type FieldMessage struct {
	FieldName string `json:"fieldName"`
	Message   string `json:"message"`
}

// ValidationError aggregates field-level violations for one request.
type ValidationError struct {
	Errors []FieldMessage
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	return "validation failed: " + e.Errors[0].FieldName + " " + e.Errors[0].Message
}

// NewValidationError builds a ValidationError from field violations.
func NewValidationError(violations ...FieldMessage) *ValidationError {
	return &ValidationError{Errors: violations}
}

// StandardError is the structured body every error response carries.
type StandardError struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

// ValidationResponse extends StandardError with the field violations.
type ValidationResponse struct {
	StandardError
	Errors []FieldMessage `json:"errors"`
}

// NewStandardError builds an error body for the given status and request path.
func NewStandardError(status int, label, message, path string) StandardError {
	return StandardError{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     label,
		Message:   message,
		Path:      path,
	}
}

// MapError translates a domain error to an HTTP status and response body.
// Services only surface the domain kinds, so everything else is an internal
// error and never leaks its cause to the client.
func MapError(err error, path string) (int, interface{}) {
	var vErr *ValidationError
	switch {
	case errors.Is(err, ErrResourceNotFound):
		return http.StatusNotFound,
			NewStandardError(http.StatusNotFound, "Resource not found", err.Error(), path)
	case errors.Is(err, ErrDatabaseIntegrity):
		return http.StatusBadRequest,
			NewStandardError(http.StatusBadRequest, "Database exception", err.Error(), path)
	case errors.As(err, &vErr):
		return http.StatusUnprocessableEntity, ValidationResponse{
			StandardError: NewStandardError(http.StatusUnprocessableEntity,
				"Validation exception", "Invalid data", path),
			Errors: vErr.Errors,
		}
	default:
		return http.StatusInternalServerError,
			NewStandardError(http.StatusInternalServerError, "Internal server error",
				"internal server error", path)
	}
}
