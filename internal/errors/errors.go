package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Domain errors wrap one of these so handlers can map them
// with errors.Is.
var (
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

var (
	// ErrMissingFields is returned when a required registration field is empty.
	ErrMissingFields = kind(ErrValidation, "missing required fields")
	// ErrMissingPasswords is returned when a password change lacks either password.
	ErrMissingPasswords = kind(ErrValidation, "missing password fields")
	// ErrPasswordTooLong is returned for passwords bcrypt cannot hash.
	ErrPasswordTooLong = kind(ErrValidation, "password must be at most 72 bytes")
	// ErrMissingCoordinates is returned when latitude or longitude is absent.
	ErrMissingCoordinates = kind(ErrValidation, "missing latitude or longitude")
	// ErrInvalidCoordinates is returned when coordinates are out of range.
	ErrInvalidCoordinates = kind(ErrValidation, "latitude or longitude out of range")
	// ErrInvalidQuery is returned for malformed list filters.
	ErrInvalidQuery = kind(ErrValidation, "invalid query parameters")
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = kind(ErrConflict, "email already registered")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = kind(ErrUnauthorized, "invalid credentials")
	// ErrIncorrectPassword is returned when the old password does not match.
	ErrIncorrectPassword = kind(ErrUnauthorized, "incorrect old password")
	// ErrInvalidToken is returned for missing, malformed, expired or revoked tokens.
	ErrInvalidToken = kind(ErrUnauthorized, "invalid or expired token")
	// ErrUserNotFound is returned when the authenticated user no longer exists.
	ErrUserNotFound = kind(ErrNotFound, "user not found")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

func kind(k error, msg string) error {
	return &kindError{kind: k, msg: msg}
}

// Validation wraps a free-form validation message as ErrValidation.
func Validation(format string, args ...any) error {
	return kind(ErrValidation, fmt.Sprintf(format, args...))
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Conflicts use 400 to stay
// compatible with existing clients.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CONFLICT")
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
