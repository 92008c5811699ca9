// Package circuitbreaker implements the circuit breaker pattern as call
// pipeline middleware.
//
// Circuit breakers prevent thundering herds, and improve resiliency against
// intermittent errors. Every client-side call chain should be wrapped in a
// circuit breaker.
package circuitbreaker
