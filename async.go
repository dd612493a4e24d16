package profuse

import "context"

// Go executes fn under breaker supervision and delivers the outcome to done
// on a separate goroutine. Admission policy is identical to Do: done
// receives a TrippedError when the call is rejected, or fn's error verbatim.
func (b *Breaker) Go(ctx context.Context, fn Func, done func(error)) {
	go func() {
		done(b.Do(ctx, fn))
	}()
}

// RunGo is the callback form of Run: fn's result and error are delivered
// to done on a separate goroutine.
func RunGo[T any](ctx context.Context, b *Breaker, fn func(context.Context) (T, error), done func(T, error)) {
	go func() {
		done(Run(ctx, b, fn))
	}()
}
