// Package httperr defines HTTP-addressable error values: each error carries
// the status code it should produce and a human-readable description.
// The values below cover the codes a handler is likely to return directly;
// use New for anything else.
package httperr

import (
	"fmt"
	"net/http"
)

// Error is an error with an associated HTTP status code.
// Values are immutable; do not modify the predeclared ones.
type Error struct {
	Code        int
	Description string
}

// New creates an Error with the given status code. An empty description
// defaults to the standard reason phrase for the code.
func New(code int, description string) *Error {
	if description == "" {
		description = http.StatusText(code)
	}
	return &Error{Code: code, Description: description}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%d %s", e.Code, e.Description)
}

// StatusCode returns the HTTP status code.
func (e *Error) StatusCode() int {
	return e.Code
}

// Predeclared errors for common status codes. Descriptions are the standard
// reason phrases; wrap with New for custom text.
var (
	BadRequest          = New(http.StatusBadRequest, "")
	Unauthorized        = New(http.StatusUnauthorized, "")
	Forbidden           = New(http.StatusForbidden, "")
	NotFound            = New(http.StatusNotFound, "")
	MethodNotAllowed    = New(http.StatusMethodNotAllowed, "")
	Conflict            = New(http.StatusConflict, "")
	Gone                = New(http.StatusGone, "")
	UnsupportedMedia    = New(http.StatusUnsupportedMediaType, "")
	ImATeapot           = New(http.StatusTeapot, "")
	UnprocessableEntity = New(http.StatusUnprocessableEntity, "")
	TooManyRequests     = New(http.StatusTooManyRequests, "")
	InternalServerError = New(http.StatusInternalServerError, "")
	NotImplemented      = New(http.StatusNotImplemented, "")
	BadGateway          = New(http.StatusBadGateway, "")
	ServiceUnavailable  = New(http.StatusServiceUnavailable, "")
)
