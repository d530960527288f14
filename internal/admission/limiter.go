// Package admission bounds the number of concurrent outbound calls to the
// external catalog service.
package admission

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// DefaultCapacity is the process-wide ceiling on in-flight catalog calls.
const DefaultCapacity = 15

// Limiter is a counting semaphore whose waiters are admitted in arrival order.
type Limiter struct {
	sem      *semaphore.Weighted
	capacity int64
	inFlight atomic.Int64
}

// New creates a Limiter admitting at most capacity concurrent holders.
func New(capacity int) *Limiter {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Limiter{
		sem:      semaphore.NewWeighted(int64(capacity)),
		capacity: int64(capacity),
	}
}

// Acquire blocks until a permit is available. Waiting ends early only when ctx
// is cancelled before admission, in which case no permit is held.
func (l *Limiter) Acquire(ctx context.Context) error {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	l.inFlight.Add(1)
	return nil
}

// Release returns a permit and wakes the longest-waiting caller.
func (l *Limiter) Release() {
	l.inFlight.Add(-1)
	l.sem.Release(1)
}

// Do runs fn while holding a permit. The permit is released on every exit
// path of fn, including a panic. fn receives a context that keeps the
// caller's values but not its cancellation, so an abandoned request still
// runs to completion.
func (l *Limiter) Do(ctx context.Context, fn func(context.Context) error) error {
	if err := l.Acquire(ctx); err != nil {
		return err
	}
	defer l.Release()

	return fn(context.WithoutCancel(ctx))
}

// InFlight reports how many permits are currently held.
func (l *Limiter) InFlight() int {
	return int(l.inFlight.Load())
}

// Capacity reports the configured ceiling.
func (l *Limiter) Capacity() int {
	return int(l.capacity)
}
