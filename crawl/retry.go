package crawl

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/crawlhog/crawlhog"
)

// Default retry parameters for calls to the fetch service.
const (
	DefaultMaxRetries = 5
	DefaultBaseDelay  = 1 * time.Second
	DefaultMaxDelay   = 300 * time.Second
)

// Retryer retries rate-limited operations with exponential backoff and
// jitter. Only errors carrying crawlhog.ERATELIMIT are retried; every
// other error propagates immediately. The zero value uses the defaults.
type Retryer struct {
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int

	// BaseDelay is the delay before the first retry; it doubles on each
	// subsequent retry up to MaxDelay.
	BaseDelay time.Duration
	MaxDelay  time.Duration

	// OnWait, if set, is called before each backoff sleep with the
	// computed delay and the retry about to happen. Observability only.
	OnWait func(delay time.Duration, attempt, maxRetries int)

	// Sleep waits for the given duration or until the context is
	// canceled. Overridable in tests; defaults to a timer-based wait.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Do runs op, retrying rate-limited failures according to r.
// After MaxRetries rate-limited attempts the last error propagates.
func Do[T any](ctx context.Context, r *Retryer, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if r == nil {
		r = &Retryer{}
	}

	maxRetries := r.MaxRetries
	if maxRetries == 0 {
		maxRetries = DefaultMaxRetries
	}
	baseDelay := r.BaseDelay
	if baseDelay == 0 {
		baseDelay = DefaultBaseDelay
	}
	maxDelay := r.MaxDelay
	if maxDelay == 0 {
		maxDelay = DefaultMaxDelay
	}
	sleep := r.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	for attempt := 0; ; attempt++ {
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		if crawlhog.ErrorCode(err) != crawlhog.ERATELIMIT {
			return zero, err
		}
		if attempt >= maxRetries {
			return zero, err
		}

		delay := backoff(attempt, baseDelay, maxDelay)
		if r.OnWait != nil {
			r.OnWait(delay, attempt+1, maxRetries)
		}
		if err := sleep(ctx, delay); err != nil {
			return zero, err
		}
	}
}

// backoff computes min(maxDelay, baseDelay*2^attempt) perturbed by
// uniform jitter of ±10%.
func backoff(attempt int, baseDelay, maxDelay time.Duration) time.Duration {
	delay := baseDelay << uint(attempt)
	if delay > maxDelay || delay <= 0 {
		delay = maxDelay
	}
	jitter := time.Duration(float64(delay) * 0.1 * (rand.Float64()*2 - 1))
	return delay + jitter
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
