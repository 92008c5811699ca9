package http

import (
	"context"
	"net/http"
)

// RequestFunc may take information from the context and manipulate the
// outgoing HTTP request. RequestFuncs are executed by the transport step,
// after the middleware chain's request-side logic and immediately prior to
// performing the request.
type RequestFunc func(context.Context, *http.Request) context.Context

// ClientFinalizerFunc can be used to perform work at the end of a call,
// after the result is determined. The principal intended use is for error
// logging. Note: err may be nil.
type ClientFinalizerFunc func(ctx context.Context, err error)

// SetRequestHeader returns a RequestFunc that sets the given header.
func SetRequestHeader(key, val string) RequestFunc {
	return func(ctx context.Context, r *http.Request) context.Context {
		r.Header.Set(key, val)
		return ctx
	}
}
