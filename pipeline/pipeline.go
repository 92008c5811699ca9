// Package pipeline provides the middleware composition contract for
// client-side RPC calls. A call travels through an ordered list of
// middlewares that terminates in a transport endpoint; each middleware may
// observe or rewrite the call on the way in and the response on the way
// out, or skip the rest of the chain entirely.
package pipeline

import (
	"context"
	"net/http"
)

// Call is the per-invocation state threaded through the chain. One Call is
// allocated per invocation; it is never shared between concurrent calls and
// never reused after a call completes. Middlewares may mutate any field,
// including replacing Request wholesale, before delegating downstream.
type Call struct {
	// Service identifies the method-owning service.
	Service string

	// Method is the name to invoke on the service.
	Method string

	// Params is the optional call argument. It must be JSON-serializable.
	// A nil Params means the call carries no argument.
	Params interface{}

	// Request is the outgoing HTTP request the transport will perform.
	Request *http.Request
}

// Endpoint is the fundamental step shape of the pipeline. It represents
// "the rest of the chain" from any middleware's point of view, and the
// terminal transport step at the innermost position. The transport endpoint
// returns an *http.Response as its result; the decoding middleware at the
// outermost position converts it into decoded data.
type Endpoint func(ctx context.Context, call *Call) (response interface{}, err error)

// Middleware is a chainable behavior modifier for endpoints. The endpoint a
// middleware wraps is its "next": a distinct continuation bound to the
// middleware's position in the list. A middleware that returns without
// invoking next short-circuits everything downstream of it, including the
// transport.
type Middleware func(Endpoint) Endpoint

// Chain composes middlewares. Calls traverse them in the order they're
// declared: the first middleware is treated as the outermost middleware.
func Chain(outer Middleware, others ...Middleware) Middleware {
	return func(next Endpoint) Endpoint {
		for i := len(others) - 1; i >= 0; i-- { // reverse
			next = others[i](next)
		}
		return outer(next)
	}
}

// Compose builds the full execution chain for one call: a right-to-left
// fold over middlewares with transport as the innermost step. Invoking the
// returned endpoint runs middlewares[0] first and transport last. With no
// middlewares the transport endpoint is returned as-is. No middleware is
// invoked by Compose itself.
func Compose(transport Endpoint, middlewares ...Middleware) Endpoint {
	next := transport
	for i := len(middlewares) - 1; i >= 0; i-- {
		next = middlewares[i](next)
	}
	return next
}

// Nop is an endpoint that does nothing and returns a nil error.
// Useful for tests.
func Nop(context.Context, *Call) (interface{}, error) { return struct{}{}, nil }
