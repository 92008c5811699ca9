package circuitbreaker

import (
	"context"

	"github.com/sony/gobreaker"

	"github.com/callkit/callkit/pipeline"
)

// Gobreaker returns a pipeline.Middleware that implements the circuit
// breaker pattern using the sony/gobreaker package. Only errors returned by
// the wrapped endpoint count against the circuit breaker's error count.
//
// See http://godoc.org/github.com/sony/gobreaker for more information.
func Gobreaker(cb *gobreaker.CircuitBreaker) pipeline.Middleware {
	return func(next pipeline.Endpoint) pipeline.Endpoint {
		return func(ctx context.Context, call *pipeline.Call) (interface{}, error) {
			return cb.Execute(func() (interface{}, error) { return next(ctx, call) })
		}
	}
}
