// Package httpapi provides shared HTTP client infrastructure for the
// upstream REST APIs: a typed error taxonomy and structured request logging.
package httpapi

import "fmt"

// ErrorType represents the category of error that occurred.
type ErrorType int

const (
	ErrTypeAuthentication ErrorType = iota
	ErrTypeRateLimit
	ErrTypeNotFound
	ErrTypeInvalidRequest
	ErrTypeServiceUnavailable
	ErrTypeTimeout
	ErrTypeUnknown
)

// String returns a human-readable description of the error type.
func (e ErrorType) String() string {
	switch e {
	case ErrTypeAuthentication:
		return "authentication error"
	case ErrTypeRateLimit:
		return "rate limit exceeded"
	case ErrTypeNotFound:
		return "resource not found"
	case ErrTypeInvalidRequest:
		return "invalid request"
	case ErrTypeServiceUnavailable:
		return "service unavailable"
	case ErrTypeTimeout:
		return "timeout"
	default:
		return "unknown error"
	}
}

// Error represents an HTTP client error with additional context.
type Error struct {
	Type       ErrorType
	Message    string
	StatusCode int
	API        string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s (status: %d)", e.API, e.Type.String(), e.Message, e.StatusCode)
}

// Is implements error equality checking for errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewAuthenticationError creates a new authentication error.
func NewAuthenticationError(api, message string) *Error {
	return &Error{Type: ErrTypeAuthentication, Message: message, StatusCode: 401, API: api}
}

// NewNotFoundError creates a new not-found error.
func NewNotFoundError(api, message string) *Error {
	return &Error{Type: ErrTypeNotFound, Message: message, StatusCode: 404, API: api}
}

// NewRateLimitError creates a new rate limit error.
func NewRateLimitError(api, message string) *Error {
	return &Error{Type: ErrTypeRateLimit, Message: message, StatusCode: 429, API: api}
}
