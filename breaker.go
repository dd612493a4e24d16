package profuse

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Mode represents the breaker mode.
type Mode int

const (
	// Normal is the healthy operating mode. Calls flow through.
	Normal Mode = iota

	// Tripped is the protective mode. Calls are rejected immediately.
	Tripped

	// Probation is the recovery testing mode. The next call probes the
	// dependency; its outcome decides the following mode.
	Probation
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Tripped:
		return "tripped"
	case Probation:
		return "probation"
	default:
		return "unknown"
	}
}

// Func is the function signature for protected operations.
type Func func(ctx context.Context) error

// OnModeChangeFunc is called when the breaker changes mode.
type OnModeChangeFunc func(name string, from, to Mode)

// OnRejectFunc is called when a call is rejected by a tripped breaker.
type OnRejectFunc func(name string)

// ErrTripped matches any rejection by a tripped breaker via errors.Is.
var ErrTripped = errors.New("breaker tripped")

// TrippedError is returned when a breaker rejects a call. It identifies
// the rejecting breaker and is never conflated with an error from the
// wrapped operation itself.
type TrippedError struct {
	Name string
}

func (e *TrippedError) Error() string {
	return fmt.Sprintf("breaker %q tripped", e.Name)
}

func (e *TrippedError) Is(target error) bool {
	return target == ErrTripped
}

// IsTripped reports whether err is a rejection by a tripped breaker.
func IsTripped(err error) bool {
	return errors.Is(err, ErrTripped)
}

// Default values.
const (
	DefaultMaxConcurrent = 1_000_000
	DefaultTripRate      = 0.9
	DefaultWindow        = 100
	DefaultCheckInterval = 30 * time.Second
)

// Breaker guards calls to one unreliable dependency. Safe for concurrent use.
type Breaker struct {
	name string
	cfg  config

	mu         sync.Mutex
	mode       Mode
	lastTrip   time.Time
	concurrent int
	history    *window
}

// New creates a Breaker with the given options. Out-of-range option values
// fall back to the defaults.
func New(name string, opts ...Option) *Breaker {
	cfg := config{
		maxConcurrent: DefaultMaxConcurrent,
		tripRate:      DefaultTripRate,
		window:        DefaultWindow,
		checkInterval: DefaultCheckInterval,
		clock:         realClock{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxConcurrent <= 0 {
		cfg.maxConcurrent = DefaultMaxConcurrent
	}
	if cfg.tripRate <= 0 || cfg.tripRate > 1 {
		cfg.tripRate = DefaultTripRate
	}
	if cfg.window <= 0 {
		cfg.window = DefaultWindow
	}
	if cfg.checkInterval <= 0 {
		cfg.checkInterval = DefaultCheckInterval
	}
	return &Breaker{
		name:    name,
		cfg:     cfg,
		mode:    Normal,
		history: newWindow(cfg.window),
	}
}

// Do executes fn under breaker supervision. A rejected call returns a
// TrippedError without invoking fn; otherwise fn's error is returned
// verbatim and its outcome is recorded.
func (b *Breaker) Do(ctx context.Context, fn Func) error {
	if err := b.enter(); err != nil {
		if b.cfg.onReject != nil {
			b.cfg.onReject(b.name)
		}
		return err
	}

	fnErr := fn(ctx)

	b.settle(fnErr == nil)

	return fnErr
}

// Mode returns the current mode. A tripped breaker stays Tripped until a
// call is admitted after the check interval; the admission itself moves
// the mode to Probation.
func (b *Breaker) Mode() Mode {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mode
}

// Name returns the breaker name.
func (b *Breaker) Name() string {
	return b.name
}

// SuccessRate returns the fraction of the last window outcomes that were
// successes, in [0, 1]. A fresh or reset breaker reports 1.
func (b *Breaker) SuccessRate() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.history.successRate()
}

// Concurrent returns the number of wrapped calls currently in flight.
func (b *Breaker) Concurrent() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.concurrent
}

// Trip forces the breaker into Tripped and re-arms the cool-down timer,
// for external health-check integration.
func (b *Breaker) Trip() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.trip("tripped manually")
}

// Reset restores a perfect outcome history and Normal mode. The in-flight
// call count and the trip timestamp are deliberately left untouched:
// concurrency pressure persists across a manual reset.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.history.clear()
	b.setMode(Normal)
}

// String renders the breaker name, mode, success rate, and in-flight
// call count for diagnostics.
func (b *Breaker) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return fmt.Sprintf("%s[%s] rate=%.3f concurrent=%d",
		b.name, b.mode, b.history.successRate(), b.concurrent)
}

// enter counts the call in flight and evaluates admission. The concurrency
// ceiling is checked first, so a wedged dependency trips the breaker even
// for calls that would otherwise be admitted.
func (b *Breaker) enter() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.concurrent++
	if b.concurrent > b.cfg.maxConcurrent {
		b.trip(fmt.Sprintf("%d calls in flight exceeds limit %d", b.concurrent, b.cfg.maxConcurrent))
	}

	if !b.admit() {
		b.concurrent--
		return &TrippedError{Name: b.name}
	}
	return nil
}

// admit reports whether a call may proceed. The first admission attempted
// once the check interval has elapsed flips Tripped to Probation and is
// itself admitted as the probe.
func (b *Breaker) admit() bool {
	if b.mode != Tripped {
		return true
	}
	if b.cfg.clock.Now().Sub(b.lastTrip) < b.cfg.checkInterval {
		return false
	}
	b.setMode(Probation)
	return true
}

// settle records the outcome of an admitted call and applies mode
// transitions. Only failures evaluate the trip threshold; a success in
// Normal mode never triggers a transition.
func (b *Breaker) settle(ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.concurrent--
	b.history.record(ok)

	if ok {
		if b.mode == Probation {
			b.setMode(Normal)
		}
		return
	}

	switch b.mode {
	case Probation:
		// Any failure during probation re-confirms the outage,
		// regardless of the numeric rate.
		b.trip("probe failed")
	case Normal:
		if rate := b.history.successRate(); rate < b.cfg.tripRate {
			b.trip(fmt.Sprintf("success rate %.3f below %.3f", rate, b.cfg.tripRate))
		}
	}
}

// trip moves the breaker into Tripped and re-arms the cool-down timer from
// this moment, even when already Tripped. Callers must hold mu.
func (b *Breaker) trip(reason string) {
	b.setMode(Tripped)
	b.lastTrip = b.cfg.clock.Now()
	if b.cfg.sink != nil {
		b.cfg.sink(fmt.Sprintf("breaker %q tripped: %s", b.name, reason))
	}
}

func (b *Breaker) setMode(to Mode) {
	if b.mode == to {
		return
	}
	from := b.mode
	b.mode = to

	if b.cfg.onModeChange != nil {
		b.cfg.onModeChange(b.name, from, to)
	}
}
