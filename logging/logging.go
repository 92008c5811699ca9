// Package logging provides a call-logging middleware.
package logging

import (
	"context"
	"time"

	"github.com/go-kit/log"

	"github.com/callkit/callkit/pipeline"
)

// Middleware returns a pipeline.Middleware that logs the service, method,
// duration, and error of every call passing through it.
func Middleware(logger log.Logger) pipeline.Middleware {
	return func(next pipeline.Endpoint) pipeline.Endpoint {
		return func(ctx context.Context, call *pipeline.Call) (response interface{}, err error) {
			defer func(begin time.Time) {
				logger.Log(
					"service", call.Service,
					"method", call.Method,
					"took", time.Since(begin),
					"err", err,
				)
			}(time.Now())
			return next(ctx, call)
		}
	}
}
