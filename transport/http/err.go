package http

import (
	"errors"
	"fmt"
)

// Argument errors, surfaced synchronously by Client.Call before any
// middleware or transport invocation.
var (
	// ErrServiceMissing means Call was invoked with an empty service name.
	ErrServiceMissing = errors.New("callkit/http: missing service")

	// ErrMethodMissing means Call was invoked with an empty method name.
	ErrMethodMissing = errors.New("callkit/http: missing method")

	// ErrTooManyParams means Call was invoked with more than one params
	// value. A call carries at most one.
	ErrTooManyParams = errors.New("callkit/http: at most one params value")
)

// These are some pre-generated constants that can be used to check against
// for the DomainErrors.
const (
	// DomainNewRequest represents an error at the Request Generation
	// Scope.
	DomainNewRequest = "NewRequest"

	// DomainEncode represents an error that has occurred at the Encode
	// level of the request.
	DomainEncode = "Encode"

	// DomainDecode represents an error that has occurred at the Decode
	// phase of the response.
	DomainDecode = "Decode"
)

// TransportError represents an error occurred in the client transport
// level, outside the network exchange itself. Network errors from the
// underlying HTTP client are not wrapped; they propagate to the caller
// unchanged.
type TransportError struct {
	// Domain refers to the phase in which the error was generated.
	Domain string

	// Err references the underlying error that caused this error
	// overall.
	Err error
}

// Error implements the error interface.
func (e TransportError) Error() string {
	return fmt.Sprintf("%s: %s", e.Domain, e.Err)
}

// Unwrap returns the underlying error.
func (e TransportError) Unwrap() error { return e.Err }

// StatusError is returned by the response-decoding middleware when the
// response status is outside the 2xx range.
type StatusError struct {
	// Code is the numeric HTTP status code.
	Code int

	// Status is the HTTP status line text, e.g. "404 Not Found".
	Status string
}

// Error implements the error interface.
func (e StatusError) Error() string { return e.Status }
