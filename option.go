package profuse

import "time"

type config struct {
	maxConcurrent int
	tripRate      float64
	window        int
	checkInterval time.Duration
	sink          func(string)
	clock         Clock

	onModeChange OnModeChangeFunc
	onReject     OnRejectFunc
}

// Option configures a Breaker.
type Option func(*config)

// WithMaxConcurrent sets the ceiling on simultaneously in-flight calls.
// Exceeding it trips the breaker immediately. Default is 1,000,000.
func WithMaxConcurrent(n int) Option {
	return func(c *config) {
		c.maxConcurrent = n
	}
}

// WithTripRate sets the success rate, in (0, 1], below which a failure
// trips the breaker. Default is 0.9.
func WithTripRate(rate float64) Option {
	return func(c *config) {
		c.tripRate = rate
	}
}

// WithWindow sets how many recent outcomes the success rate is computed
// over. Default is 100.
func WithWindow(n int) Option {
	return func(c *config) {
		c.window = n
	}
}

// WithCheckInterval sets how long a tripped breaker rejects calls before
// admitting a probe. Default is 30 seconds.
func WithCheckInterval(d time.Duration) Option {
	return func(c *config) {
		c.checkInterval = d
	}
}

// WithSink sets a sink for diagnostic messages emitted when the breaker
// trips. No messages are emitted without one.
func WithSink(fn func(msg string)) Option {
	return func(c *config) {
		c.sink = fn
	}
}

// WithClock sets the clock for time operations. Useful for testing.
func WithClock(clock Clock) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// OnModeChange sets a hook called when the breaker changes mode.
func OnModeChange(fn OnModeChangeFunc) Option {
	return func(c *config) {
		c.onModeChange = fn
	}
}

// OnReject sets a hook called when a call is rejected by a tripped breaker.
func OnReject(fn OnRejectFunc) Option {
	return func(c *config) {
		c.onReject = fn
	}
}
