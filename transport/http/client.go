// Package http provides the HTTP client binding for the call pipeline: the
// top-level Call entry point, the request encoder, and the always-present
// JSON response-decoding middleware.
package http

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/callkit/callkit/pipeline"
)

// Client invokes remote methods over HTTP POST, routing every call through
// its configured middleware chain.
type Client struct {
	client      *http.Client
	tgt         *url.URL
	enc         EncodeRequestFunc
	middlewares []pipeline.Middleware
	before      []RequestFunc
	finalizer   ClientFinalizerFunc
}

// NewClient constructs a usable Client for a remote endpoint. tgt is the
// base URL; each call POSTs to {tgt}/{service}/{method}.
func NewClient(tgt *url.URL, options ...ClientOption) *Client {
	c := &Client{
		client:      http.DefaultClient,
		tgt:         tgt,
		enc:         EncodeJSONRequest,
		middlewares: []pipeline.Middleware{},
		before:      []RequestFunc{},
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// ClientOption sets an optional parameter for clients.
type ClientOption func(*Client)

// SetClient sets the underlying HTTP client used for requests.
// By default, http.DefaultClient is used.
func SetClient(client *http.Client) ClientOption {
	return func(c *Client) { c.client = client }
}

// ClientMiddlewares sets the middleware chain applied to every call, in
// invocation order: the first middleware is outermost. The response-decoding
// middleware always wraps the whole configured chain and need not be listed.
func ClientMiddlewares(middlewares ...pipeline.Middleware) ClientOption {
	return func(c *Client) { c.middlewares = middlewares }
}

// ClientBefore sets the RequestFuncs that are applied to the outgoing HTTP
// request by the transport step, after all middlewares have run their
// request-side logic and before the request is performed.
func ClientBefore(before ...RequestFunc) ClientOption {
	return func(c *Client) { c.before = append(c.before, before...) }
}

// ClientFinalizer is executed at the end of every call, successful or not.
// By default, no finalizer is registered.
func ClientFinalizer(f ClientFinalizerFunc) ClientOption {
	return func(c *Client) { c.finalizer = f }
}

// SetEncodeRequestFunc replaces the request encoder.
// By default, EncodeJSONRequest is used.
func SetEncodeRequestFunc(enc EncodeRequestFunc) ClientOption {
	return func(c *Client) { c.enc = enc }
}

// SetMiddlewares replaces the whole middleware chain. There is no
// incremental add/remove API. Calls already in flight keep the chain they
// composed; SetMiddlewares is not synchronized against concurrent calls.
func (c *Client) SetMiddlewares(middlewares ...pipeline.Middleware) {
	c.middlewares = middlewares
}

// Call invokes method on service, with at most one params value. Argument
// validation happens before any middleware runs. The result is the
// JSON-decoded response body, or the first unhandled failure in the chain.
func (c *Client) Call(ctx context.Context, service, method string, params ...interface{}) (response interface{}, err error) {
	if c.finalizer != nil {
		defer func() { c.finalizer(ctx, err) }()
	}

	if service == "" {
		return nil, ErrServiceMissing
	}
	if method == "" {
		return nil, ErrMethodMissing
	}
	if len(params) > 1 {
		return nil, ErrTooManyParams
	}

	call := &pipeline.Call{
		Service: service,
		Method:  method,
	}
	if len(params) == 1 {
		call.Params = params[0]
	}

	req, err := c.enc(ctx, c.callURL(service, method), call)
	if err != nil {
		return nil, TransportError{Domain: DomainEncode, Err: err}
	}
	call.Request = req

	middlewares := append([]pipeline.Middleware{DecodeJSONResponse}, c.middlewares...)
	return pipeline.Compose(c.transport(), middlewares...)(ctx, call)
}

func (c *Client) callURL(service, method string) string {
	return strings.TrimRight(c.tgt.String(), "/") + "/" + service + "/" + method
}

// transport returns the terminal endpoint: it performs the call's Request
// and returns the raw *http.Response. Network errors are returned as-is so
// they reach the caller unchanged.
func (c *Client) transport() pipeline.Endpoint {
	return func(ctx context.Context, call *pipeline.Call) (interface{}, error) {
		for _, f := range c.before {
			ctx = f(ctx, call.Request)
		}
		resp, err := c.client.Do(call.Request.WithContext(ctx))
		if err != nil {
			return nil, err
		}
		return resp, nil
	}
}
