package circuitbreaker

import (
	"context"

	"github.com/afex/hystrix-go/hystrix"

	"github.com/callkit/callkit/pipeline"
)

// Hystrix returns a pipeline.Middleware that implements the circuit
// breaker pattern using the afex/hystrix-go package.
//
// When using this circuit breaker, please configure your commands
// separately.
//
// See https://godoc.org/github.com/afex/hystrix-go/hystrix for more
// information.
func Hystrix(commandName string) pipeline.Middleware {
	return func(next pipeline.Endpoint) pipeline.Endpoint {
		return func(ctx context.Context, call *pipeline.Call) (interface{}, error) {
			var resp interface{}
			if err := hystrix.Do(commandName, func() (err error) {
				resp, err = next(ctx, call)
				return err
			}, nil); err != nil {
				return nil, err
			}
			return resp, nil
		}
	}
}
