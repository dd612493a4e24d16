// Package profuse is a circuit breaker for unreliable dependencies.
//
// profuse wraps calls to a fallible remote dependency and stops issuing
// new calls when the dependency looks unhealthy:
//
//   - Sliding Window: success rate over the last N outcomes decides tripping
//   - Concurrency Gate: too many in-flight calls trips immediately
//   - Fast Rejection: a tripped breaker rejects calls without load
//   - Probation: after a cool-down, a single probe tests recovery
//   - Bounded Memory: outcome history is run-length encoded
//
// # Quick Start
//
// Create a breaker and protect calls:
//
//	db := profuse.New("postgres")
//
//	err := db.Do(ctx, func(ctx context.Context) error {
//	    return conn.Ping(ctx)
//	})
//	if profuse.IsTripped(err) {
//	    return handleFallback()
//	}
//
// For functions that return values, use the generic Run helper:
//
//	user, err := profuse.Run(ctx, db, func(ctx context.Context) (*User, error) {
//	    return store.GetUser(ctx, id)
//	})
//
// For callback-style delivery, Go and RunGo behave identically to Do and
// Run but hand the outcome to a continuation:
//
//	db.Go(ctx, ping, func(err error) {
//	    if err != nil {
//	        log.Println("ping failed:", err)
//	    }
//	})
//
// # Breaker Modes
//
// The breaker has three modes:
//
//	Normal (healthy):
//	    - Calls flow through to the protected function
//	    - Each outcome is recorded in the sliding window
//	    - A failure that drops the success rate below the trip rate
//	      trips the breaker
//
//	Tripped (protective):
//	    - Calls are rejected immediately with a TrippedError
//	    - After the check interval, the next call is admitted as a probe
//	      and the breaker moves to Probation
//
//	Probation (testing):
//	    - The probe's success returns the breaker to Normal
//	    - Any failure trips it again, regardless of the success rate
//
// Exceeding the in-flight call ceiling trips the breaker from any mode.
// A tripped breaker stays Tripped until a call is attempted after the
// check interval; the admission of that call is what flips the mode.
//
// # Sliding Window
//
// The success rate is computed over the last window outcomes, stored as
// run-length-encoded runs of consecutive same-outcome results. Memory is
// bounded by the number of outcome flips in the window, not the window
// size. A fresh breaker starts with full success credit, so the rate is
// exactly 1 until real outcomes displace it.
//
// # Configuration
//
// Configure thresholds and timing with options:
//
//	db := profuse.New("postgres",
//	    profuse.WithWindow(100),               // Rate over last 100 outcomes
//	    profuse.WithTripRate(0.9),             // Trip when rate drops below 0.9
//	    profuse.WithMaxConcurrent(50),         // Trip beyond 50 in-flight calls
//	    profuse.WithCheckInterval(30*time.Second), // Cool-down before probing
//	)
//
// Default values:
//
//   - MaxConcurrent: 1,000,000 in-flight calls
//   - TripRate: 0.9
//   - Window: 100 outcomes
//   - CheckInterval: 30 seconds
//
// Out-of-range values fall back to the defaults at construction.
//
// # Errors
//
// A rejection by the breaker is always distinguishable from a failure of
// the wrapped operation, which is propagated verbatim:
//
//	err := db.Do(ctx, query)
//	if profuse.IsTripped(err) {
//	    // the breaker rejected the call; query never ran
//	}
//
// The rejection error carries the breaker's name:
//
//	var te *profuse.TrippedError
//	if errors.As(err, &te) {
//	    log.Println("rejected by", te.Name)
//	}
//
// # Diagnostics and Hooks
//
// A sink receives a message whenever the breaker trips, with the reason:
//
//	db := profuse.New("postgres",
//	    profuse.WithSink(func(msg string) { log.Println(msg) }),
//	)
//
// Hooks provide observability without coupling to a specific logger or
// metrics system:
//
//	db := profuse.New("postgres",
//	    profuse.OnModeChange(func(name string, from, to profuse.Mode) {
//	        metrics.Gauge("breaker.mode", float64(to), "breaker:"+name)
//	    }),
//	    profuse.OnReject(func(name string) {
//	        metrics.Increment("breaker.rejected", "breaker:"+name)
//	    }),
//	)
//
// # Manual Control
//
// Trip the breaker from an external health check, or reset it after a fix
// is deployed:
//
//	db.Trip()   // reject calls until the check interval elapses
//	db.Reset()  // full success credit, Normal mode
//
// Reset does not touch the in-flight call count: concurrency pressure
// persists across a manual reset.
//
// # Inspecting State
//
// Query the breaker's current status:
//
//	mode := db.Mode()          // Normal, Tripped, or Probation
//	rate := db.SuccessRate()   // fraction in [0, 1]
//	n := db.Concurrent()       // in-flight calls
//	fmt.Println(db)            // "postgres[normal] rate=1.000 concurrent=0"
//
// # Testing
//
// Inject a fake clock to control the cool-down timer in tests:
//
//	type fakeClock struct {
//	    now time.Time
//	}
//
//	func (c *fakeClock) Now() time.Time { return c.now }
//	func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }
//
//	func TestProbeAdmittedAfterInterval(t *testing.T) {
//	    clock := &fakeClock{now: time.Now()}
//	    db := profuse.New("test",
//	        profuse.WithCheckInterval(30*time.Second),
//	        profuse.WithClock(clock),
//	    )
//
//	    db.Trip()
//	    clock.Advance(31 * time.Second)
//
//	    err := db.Do(ctx, func(ctx context.Context) error { return nil })
//	    assert.NoError(t, err)
//	    assert.Equal(t, profuse.Normal, db.Mode())
//	}
package profuse
