// Package opentracing provides OpenTracing middleware for the call
// pipeline.
package opentracing

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"

	"github.com/callkit/callkit/pipeline"
)

// TraceCall returns a pipeline.Middleware that wraps each call in a client
// Span named "{service}.{method}". If the context already carries a Span,
// the new Span is a child of it; otherwise it is a trace root. The Span
// context is injected into the outgoing request headers so the remote side
// can join the trace.
func TraceCall(tracer opentracing.Tracer) pipeline.Middleware {
	return func(next pipeline.Endpoint) pipeline.Endpoint {
		return func(ctx context.Context, call *pipeline.Call) (interface{}, error) {
			var opts []opentracing.StartSpanOption
			if parent := opentracing.SpanFromContext(ctx); parent != nil {
				opts = append(opts, opentracing.ChildOf(parent.Context()))
			}
			span := tracer.StartSpan(call.Service+"."+call.Method, opts...)
			defer span.Finish()

			ext.SpanKindRPCClient.Set(span)
			span.SetTag("call.service", call.Service)
			span.SetTag("call.method", call.Method)

			if call.Request != nil {
				// There's nothing we can do with any errors here.
				_ = tracer.Inject(
					span.Context(),
					opentracing.HTTPHeaders,
					opentracing.HTTPHeadersCarrier(call.Request.Header),
				)
			}

			ctx = opentracing.ContextWithSpan(ctx, span)
			response, err := next(ctx, call)
			if err != nil {
				ext.Error.Set(span, true)
				span.LogKV("error", err.Error())
			}
			return response, err
		}
	}
}
