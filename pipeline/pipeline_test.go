package pipeline_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/callkit/callkit/pipeline"
)

func TestComposeOrder(t *testing.T) {
	var order []string

	record := func(name string) pipeline.Middleware {
		return func(next pipeline.Endpoint) pipeline.Endpoint {
			return func(ctx context.Context, call *pipeline.Call) (interface{}, error) {
				order = append(order, name+" pre")
				defer func() { order = append(order, name+" post") }()
				return next(ctx, call)
			}
		}
	}

	transport := func(ctx context.Context, call *pipeline.Call) (interface{}, error) {
		order = append(order, "transport")
		return struct{}{}, nil
	}

	e := pipeline.Compose(transport, record("first"), record("second"), record("third"))
	if _, err := e(context.Background(), &pipeline.Call{}); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"first pre",
		"second pre",
		"third pre",
		"transport",
		"third post",
		"second post",
		"first post",
	}
	if !reflect.DeepEqual(want, order) {
		t.Fatalf("want %v, have %v", want, order)
	}
}

func TestComposeNoMiddlewares(t *testing.T) {
	transportCalled := false
	transport := func(ctx context.Context, call *pipeline.Call) (interface{}, error) {
		transportCalled = true
		return "raw", nil
	}

	response, err := pipeline.Compose(transport)(context.Background(), &pipeline.Call{})
	if err != nil {
		t.Fatal(err)
	}
	if !transportCalled {
		t.Fatal("transport was not invoked")
	}
	if want, have := "raw", response; want != have {
		t.Fatalf("want %v, have %v", want, have)
	}
}

func TestShortCircuit(t *testing.T) {
	synthetic := "synthetic response"

	shortCircuit := func(next pipeline.Endpoint) pipeline.Endpoint {
		return func(ctx context.Context, call *pipeline.Call) (interface{}, error) {
			return synthetic, nil // never calls next
		}
	}

	downstreamCalled := false
	downstream := func(next pipeline.Endpoint) pipeline.Endpoint {
		return func(ctx context.Context, call *pipeline.Call) (interface{}, error) {
			downstreamCalled = true
			return next(ctx, call)
		}
	}

	transportCalled := false
	transport := func(ctx context.Context, call *pipeline.Call) (interface{}, error) {
		transportCalled = true
		return struct{}{}, nil
	}

	response, err := pipeline.Compose(transport, shortCircuit, downstream)(context.Background(), &pipeline.Call{})
	if err != nil {
		t.Fatal(err)
	}
	if want, have := synthetic, response; want != have {
		t.Fatalf("want %v, have %v", want, have)
	}
	if downstreamCalled {
		t.Fatal("middleware downstream of the short-circuit was invoked")
	}
	if transportCalled {
		t.Fatal("transport was invoked despite the short-circuit")
	}
}

func TestCallSubstitution(t *testing.T) {
	replacement := &pipeline.Call{Service: "replaced", Method: "replaced"}

	substitute := func(next pipeline.Endpoint) pipeline.Endpoint {
		return func(ctx context.Context, call *pipeline.Call) (interface{}, error) {
			return next(ctx, replacement)
		}
	}

	var seen *pipeline.Call
	observe := func(next pipeline.Endpoint) pipeline.Endpoint {
		return func(ctx context.Context, call *pipeline.Call) (interface{}, error) {
			seen = call
			return next(ctx, call)
		}
	}

	original := &pipeline.Call{Service: "original", Method: "original"}
	if _, err := pipeline.Compose(pipeline.Nop, substitute, observe)(context.Background(), original); err != nil {
		t.Fatal(err)
	}
	if seen != replacement {
		t.Fatalf("want downstream middleware to see the substituted call, have %+v", seen)
	}
}

func TestResponseSubstitution(t *testing.T) {
	substitute := func(next pipeline.Endpoint) pipeline.Endpoint {
		return func(ctx context.Context, call *pipeline.Call) (interface{}, error) {
			if _, err := next(ctx, call); err != nil {
				return nil, err
			}
			return "substituted", nil
		}
	}

	var upstreamSaw interface{}
	observe := func(next pipeline.Endpoint) pipeline.Endpoint {
		return func(ctx context.Context, call *pipeline.Call) (interface{}, error) {
			response, err := next(ctx, call)
			upstreamSaw = response
			return response, err
		}
	}

	transport := func(ctx context.Context, call *pipeline.Call) (interface{}, error) {
		return "original", nil
	}

	response, err := pipeline.Compose(transport, observe, substitute)(context.Background(), &pipeline.Call{})
	if err != nil {
		t.Fatal(err)
	}
	if want, have := "substituted", upstreamSaw; want != have {
		t.Fatalf("want upstream middleware to see %v, have %v", want, have)
	}
	if want, have := "substituted", response; want != have {
		t.Fatalf("want %v, have %v", want, have)
	}
}

func TestFailurePropagation(t *testing.T) {
	transportErr := errors.New("transport exploded")
	transport := func(ctx context.Context, call *pipeline.Call) (interface{}, error) {
		return nil, transportErr
	}

	passThrough := func(next pipeline.Endpoint) pipeline.Endpoint {
		return func(ctx context.Context, call *pipeline.Call) (interface{}, error) {
			return next(ctx, call)
		}
	}

	if _, err := pipeline.Compose(transport, passThrough, passThrough)(context.Background(), &pipeline.Call{}); err != transportErr {
		t.Fatalf("want %v, have %v", transportErr, err)
	}
}

func TestFailureReplacement(t *testing.T) {
	replacement := errors.New("friendlier error")

	catch := func(next pipeline.Endpoint) pipeline.Endpoint {
		return func(ctx context.Context, call *pipeline.Call) (interface{}, error) {
			if _, err := next(ctx, call); err != nil {
				return nil, replacement
			}
			return nil, nil
		}
	}

	transport := func(ctx context.Context, call *pipeline.Call) (interface{}, error) {
		return nil, errors.New("gory detail")
	}

	if _, err := pipeline.Compose(transport, catch)(context.Background(), &pipeline.Call{}); err != replacement {
		t.Fatalf("want %v, have %v", replacement, err)
	}
}

func TestChain(t *testing.T) {
	var order []string

	record := func(name string) pipeline.Middleware {
		return func(next pipeline.Endpoint) pipeline.Endpoint {
			return func(ctx context.Context, call *pipeline.Call) (interface{}, error) {
				order = append(order, name)
				return next(ctx, call)
			}
		}
	}

	mw := pipeline.Chain(record("outer"), record("middle"), record("inner"))
	if _, err := mw(pipeline.Nop)(context.Background(), &pipeline.Call{}); err != nil {
		t.Fatal(err)
	}

	want := []string{"outer", "middle", "inner"}
	if !reflect.DeepEqual(want, order) {
		t.Fatalf("want %v, have %v", want, order)
	}
}
