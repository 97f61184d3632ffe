package circuitbreaker

import "time"

// Config holds the configuration for a circuit breaker.
type Config struct {
	// Name identifies the circuit breaker in logs.
	Name string

	// Enabled determines whether the circuit breaker is active.
	// When false, New returns nil and Execute passes through directly.
	Enabled bool

	// MaxRequests is the number of probe requests allowed while half-open.
	// Zero means one.
	MaxRequests uint

	// Interval is the cyclic period of the closed state after which counts
	// are cleared. Zero keeps the counts until the state changes.
	Interval time.Duration

	// Timeout is how long the breaker stays open before going half-open.
	// Zero means 60 seconds.
	Timeout time.Duration

	// FailureThreshold is the number of consecutive failures that opens the breaker.
	FailureThreshold uint

	// IgnoredErrors are treated as successful outcomes, e.g. a lookup that
	// legitimately finds nothing.
	IgnoredErrors []error

	// OnStateChange is invoked with the breaker name and the old and new state.
	OnStateChange func(name, from, to string)
}
