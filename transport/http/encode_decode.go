package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/callkit/callkit/pipeline"
)

// EncodeRequestFunc builds the outgoing HTTP request for a call. It's
// invoked once per call, before the middleware chain runs; middlewares are
// free to rewrite or replace the request it produced.
type EncodeRequestFunc func(ctx context.Context, url string, call *pipeline.Call) (*http.Request, error)

// EncodeJSONRequest is the default EncodeRequestFunc. It builds a POST
// request with JSON content negotiation headers, carrying the
// JSON-serialized params as its body when params are present, and no body
// otherwise.
func EncodeJSONRequest(ctx context.Context, url string, call *pipeline.Call) (*http.Request, error) {
	var req *http.Request
	var err error
	if call.Params != nil {
		var buf []byte
		if buf, err = json.Marshal(call.Params); err != nil {
			return nil, err
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	} else {
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	}
	if err != nil {
		return nil, TransportError{Domain: DomainNewRequest, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// DecodeJSONResponse is the fixed response-decoding middleware. The client
// prepends it to every composed chain, so it is always outermost: its next
// runs the entire configured chain plus the transport, and what it returns
// is what the caller of Call receives.
//
// A non-2xx status yields a StatusError. A body that isn't valid JSON
// yields a Decode-domain TransportError. Errors from next pass through
// untouched.
func DecodeJSONResponse(next pipeline.Endpoint) pipeline.Endpoint {
	return func(ctx context.Context, call *pipeline.Call) (interface{}, error) {
		response, err := next(ctx, call)
		if err != nil {
			return nil, err
		}

		resp, ok := response.(*http.Response)
		if !ok {
			return nil, TransportError{Domain: DomainDecode, Err: fmt.Errorf("unexpected response type %T", response)}
		}
		defer resp.Body.Close()

		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			return nil, StatusError{Code: resp.StatusCode, Status: resp.Status}
		}

		var data interface{}
		if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
			return nil, TransportError{Domain: DomainDecode, Err: err}
		}
		return data, nil
	}
}
