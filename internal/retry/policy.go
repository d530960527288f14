// Package retry wraps a single outbound call with bounded, linearly
// backed-off retries for transient failures.
package retry

import (
	"context"
	"time"

	retrygo "github.com/avast/retry-go/v4"
	"github.com/rs/zerolog"
)

const (
	DefaultAttempts  = 3
	DefaultBaseDelay = 500 * time.Millisecond
)

// Policy describes how many times an operation is attempted and which
// failures qualify for another attempt.
type Policy struct {
	// Attempts is the total number of calls, including the first.
	Attempts uint
	// BaseDelay is multiplied by the retry number to get the wait before it.
	BaseDelay time.Duration
	// Retryable classifies failures. A nil classifier retries nothing.
	Retryable func(error) bool
	Logger    zerolog.Logger
}

// Default returns the standard policy with the given classifier.
func Default(retryable func(error) bool, logger zerolog.Logger) Policy {
	return Policy{
		Attempts:  DefaultAttempts,
		BaseDelay: DefaultBaseDelay,
		Retryable: retryable,
		Logger:    logger,
	}
}

// Execute calls op until it succeeds, fails with a non-retryable error or
// the attempts are exhausted. The last failure is returned unchanged.
func (p Policy) Execute(ctx context.Context, op func(context.Context) error) error {
	attempts := p.Attempts
	if attempts == 0 {
		attempts = DefaultAttempts
	}

	return retrygo.Do(
		func() error { return op(ctx) },
		retrygo.Context(ctx),
		retrygo.Attempts(attempts),
		retrygo.DelayType(p.delay),
		retrygo.RetryIf(p.shouldRetry),
		retrygo.LastErrorOnly(true),
		retrygo.OnRetry(func(n uint, err error) {
			if n+1 >= attempts {
				return
			}
			p.Logger.Warn().
				Err(err).
				Uint("attempt", n+1).
				Uint("max_attempts", attempts).
				Msg("retrying upstream call")
		}),
	)
}

// Do is the value-returning form of Execute.
func Do[T any](ctx context.Context, p Policy, op func(context.Context) (T, error)) (T, error) {
	var result T
	err := p.Execute(ctx, func(ctx context.Context) error {
		v, err := op(ctx)
		if err != nil {
			return err
		}
		result = v
		return nil
	})
	return result, err
}

// delay implements linear backoff. retry-go numbers retries from 1, so the
// wait before attempt n+1 is n * BaseDelay.
func (p Policy) delay(n uint, _ error, _ *retrygo.Config) time.Duration {
	return time.Duration(n) * p.BaseDelay
}

func (p Policy) shouldRetry(err error) bool {
	if err == nil || p.Retryable == nil {
		return false
	}
	return p.Retryable(err)
}
