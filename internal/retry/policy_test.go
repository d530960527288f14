package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

var (
	errTransient = errors.New("transient")
	errFatal     = errors.New("fatal")
)

func testPolicy(attempts uint) Policy {
	return Policy{
		Attempts:  attempts,
		BaseDelay: time.Millisecond,
		Retryable: func(err error) bool { return errors.Is(err, errTransient) },
		Logger:    zerolog.Nop(),
	}
}

func TestExecuteAttemptCounts(t *testing.T) {
	tests := []struct {
		name      string
		attempts  uint
		failures  int
		failWith  error
		wantCalls int
		wantErr   error
	}{
		{name: "success first try", attempts: 3, failures: 0, wantCalls: 1},
		{name: "success on second", attempts: 3, failures: 1, failWith: errTransient, wantCalls: 2},
		{name: "success on last", attempts: 3, failures: 2, failWith: errTransient, wantCalls: 3},
		{name: "permanent transient", attempts: 3, failures: 100, failWith: errTransient, wantCalls: 3, wantErr: errTransient},
		{name: "non retryable", attempts: 3, failures: 100, failWith: errFatal, wantCalls: 1, wantErr: errFatal},
		{name: "five attempts", attempts: 5, failures: 100, failWith: errTransient, wantCalls: 5, wantErr: errTransient},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			calls := 0
			err := testPolicy(tc.attempts).Execute(context.Background(), func(context.Context) error {
				calls++
				if calls <= tc.failures {
					return tc.failWith
				}
				return nil
			})

			if calls != tc.wantCalls {
				t.Fatalf("expected %d calls, got %d", tc.wantCalls, calls)
			}
			if tc.wantErr == nil && err != nil {
				t.Fatalf("expected success, got %v", err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestExecuteLinearBackoff(t *testing.T) {
	const base = 50 * time.Millisecond
	p := testPolicy(3)
	p.BaseDelay = base

	var stamps []time.Time
	_ = p.Execute(context.Background(), func(context.Context) error {
		stamps = append(stamps, time.Now())
		return errTransient
	})
	if len(stamps) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(stamps))
	}

	// The wait before attempt i+1 is i * base.
	for i := 1; i < len(stamps); i++ {
		want := time.Duration(i) * base
		got := stamps[i].Sub(stamps[i-1])
		if got < want {
			t.Fatalf("wait before attempt %d: expected at least %v, got %v", i+1, want, got)
		}
		if got >= want+base {
			t.Fatalf("wait before attempt %d: expected about %v, got %v", i+1, want, got)
		}
	}
}

func TestExecuteReturnsLastFailure(t *testing.T) {
	calls := 0
	last := errors.New("third failure")
	p := testPolicy(3)
	p.Retryable = func(error) bool { return true }

	err := p.Execute(context.Background(), func(context.Context) error {
		calls++
		if calls == 3 {
			return last
		}
		return errTransient
	})
	if !errors.Is(err, last) {
		t.Fatalf("expected last failure, got %v", err)
	}
}

func TestDoReturnsValue(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), testPolicy(3), func(context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", errTransient
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" || calls != 2 {
		t.Fatalf("expected ok after 2 calls, got %q after %d", got, calls)
	}
}

func TestNilClassifierNeverRetries(t *testing.T) {
	calls := 0
	p := Policy{Attempts: 3, Logger: zerolog.Nop()}
	_ = p.Execute(context.Background(), func(context.Context) error {
		calls++
		return errTransient
	})
	if calls != 1 {
		t.Fatalf("expected a single call, got %d", calls)
	}
}
