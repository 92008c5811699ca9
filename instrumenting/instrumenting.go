// Package instrumenting provides a Prometheus metrics middleware.
package instrumenting

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/callkit/callkit/pipeline"
)

// Middleware returns a pipeline.Middleware that counts calls and observes
// call durations. Both collectors are partitioned by the labels service,
// method, and success.
func Middleware(requests *prometheus.CounterVec, duration prometheus.ObserverVec) pipeline.Middleware {
	return func(next pipeline.Endpoint) pipeline.Endpoint {
		return func(ctx context.Context, call *pipeline.Call) (response interface{}, err error) {
			defer func(begin time.Time) {
				labels := prometheus.Labels{
					"service": call.Service,
					"method":  call.Method,
					"success": strconv.FormatBool(err == nil),
				}
				requests.With(labels).Add(1)
				duration.With(labels).Observe(time.Since(begin).Seconds())
			}(time.Now())
			return next(ctx, call)
		}
	}
}
