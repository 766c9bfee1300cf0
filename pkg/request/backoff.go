package request

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// Backoff paces the retries of a single request. It keeps no state between
// requests, so one failed lookup never delays the next one.
type Backoff struct {
	baseDelay time.Duration
	maxDelay  time.Duration
}

// NewBackoff creates a retry pacer.
func NewBackoff(baseDelay, maxDelay time.Duration) *Backoff {
	return &Backoff{
		baseDelay: baseDelay,
		maxDelay:  maxDelay,
	}
}

// Delay returns the pause before retry n (n >= 1): exponential, capped at
// maxDelay, plus up to 10% jitter.
func (b *Backoff) Delay(retry int) time.Duration {
	if retry < 1 {
		return 0
	}
	// baseDelay * 2^(retry-1)
	multiplier := math.Pow(2, float64(retry-1))
	delay := time.Duration(float64(b.baseDelay) * multiplier)

	if delay > b.maxDelay || delay <= 0 {
		delay = b.maxDelay
	}

	jitter := time.Duration(rand.Float64() * 0.1 * float64(delay))
	return delay + jitter
}

// Sleep waits Delay(retry) or until ctx ends.
func (b *Backoff) Sleep(ctx context.Context, retry int) error {
	d := b.Delay(retry)
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
