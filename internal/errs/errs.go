// Package errs defines the error type surfaced to API clients.
package errs

import "net/http"

// Error carries a client-facing message together with the HTTP status it
// should be reported with. The message is written to the response body
// verbatim, so it must never contain internal detail.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewBadRequest creates a 400 Bad Request error.
func NewBadRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// NewNotFound creates a 404 Not Found error.
func NewNotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}
