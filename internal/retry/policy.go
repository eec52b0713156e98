// Package retry provides the backoff policy used for transient failures such
// as remote content downloads.
package retry

import (
	"context"
	"fmt"
	"time"

	derrors "github.com/OpenStickCommunity/gp2040-ce-docs/internal/errors"
)

// Mode is the backoff growth strategy.
type Mode string

const (
	ModeFixed       Mode = "fixed"
	ModeLinear      Mode = "linear"
	ModeExponential Mode = "exponential"
)

// Policy encapsulates retry/backoff settings. It is immutable after construction.
type Policy struct {
	Mode       Mode
	Initial    time.Duration // base delay
	Max        time.Duration // cap for growth
	MaxRetries int           // retries after the first failure
}

// DefaultPolicy is linear, 1s initial, 30s cap, 2 retries.
func DefaultPolicy() Policy {
	return Policy{Mode: ModeLinear, Initial: time.Second, Max: 30 * time.Second, MaxRetries: 2}
}

// NewPolicy builds a policy from raw settings; zero or unknown values fall
// back to the defaults. A negative maxRetries keeps the default.
func NewPolicy(mode Mode, initial, maxDelay time.Duration, maxRetries int) Policy {
	p := DefaultPolicy()
	if maxRetries >= 0 {
		p.MaxRetries = maxRetries
	}
	if initial > 0 {
		p.Initial = initial
	}
	if maxDelay > 0 {
		p.Max = maxDelay
	}
	switch mode {
	case ModeFixed, ModeLinear, ModeExponential:
		p.Mode = mode
	}
	if p.Initial > p.Max {
		p.Initial = p.Max
	}
	return p
}

// Delay returns the backoff before retry number retryCount (first retry is 1).
func (p Policy) Delay(retryCount int) time.Duration {
	if retryCount <= 0 {
		return 0
	}
	if p.Mode == ModeFixed {
		return p.Initial
	}
	if p.Initial <= 0 || p.Initial >= p.Max {
		return min(p.Initial, p.Max)
	}
	// Growth stops at Max before it can overflow.
	if p.Mode == ModeExponential {
		d := p.Initial
		for i := 1; i < retryCount; i++ {
			if d > p.Max/2 {
				return p.Max
			}
			d *= 2
		}
		return min(d, p.Max)
	}
	if time.Duration(retryCount) > p.Max/p.Initial {
		return p.Max
	}
	return time.Duration(retryCount) * p.Initial
}

// Validate reports a policy that cannot be applied.
func (p Policy) Validate() error {
	if p.Initial <= 0 {
		return fmt.Errorf("initial must be >0")
	}
	if p.Max <= 0 {
		return fmt.Errorf("max must be >0")
	}
	if p.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}
	return nil
}

// Do calls fn until it succeeds, returns an error that is not retryable, or
// MaxRetries retries have been spent. attempt starts at 0. Waiting between
// attempts stops early when ctx is done.
func (p Policy) Do(ctx context.Context, fn func(attempt int) error) error {
	var err error
	for attempt := 0; ; attempt++ {
		if err = fn(attempt); err == nil {
			return nil
		}
		if !derrors.IsRetryable(err) || attempt >= p.MaxRetries {
			return err
		}
		timer := time.NewTimer(p.Delay(attempt + 1))
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
	}
}
