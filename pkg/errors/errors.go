package errors

import "fmt"

// ErrorType classifies the failures the pipeline can run into
type ErrorType string

const (
	ErrorTypeNetwork     ErrorType = "network"
	ErrorTypeParsing     ErrorType = "parsing"
	ErrorTypeRateLimit   ErrorType = "rate_limit"
	ErrorTypeAuth        ErrorType = "auth"
	ErrorTypeNotFound    ErrorType = "not_found"
	ErrorTypeServerError ErrorType = "server_error"
	ErrorTypeUnknown     ErrorType = "unknown"
)

// Error carries a failure classification alongside the HTTP status code
// (0 when no response was received)
type Error struct {
	Type    ErrorType
	Message string
	Code    int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error (code %d): %s", e.Type, e.Code, e.Message)
}

// New creates a typed error
func New(errorType ErrorType, message string, code int) *Error {
	return &Error{Type: errorType, Message: message, Code: code}
}

// FromStatusCode maps an HTTP status code to a typed error
func FromStatusCode(code int, message string) *Error {
	var errorType ErrorType
	switch {
	case code == 401 || code == 403:
		errorType = ErrorTypeAuth
	case code == 404:
		errorType = ErrorTypeNotFound
	case code == 429:
		errorType = ErrorTypeRateLimit
	case code >= 500:
		errorType = ErrorTypeServerError
	default:
		errorType = ErrorTypeUnknown
	}
	return &Error{Type: errorType, Message: message, Code: code}
}

// IsType reports whether err is a typed error of the given type
func IsType(err error, errorType ErrorType) bool {
	e, ok := err.(*Error)
	return ok && e.Type == errorType
}
