package request

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestBackoff_ExponentialDelay(t *testing.T) {
	tests := []struct {
		name      string
		retry     int
		baseDelay time.Duration
		maxDelay  time.Duration
		wantMinMs int64
		wantMaxMs int64
	}{
		{"No retry", 0, 1 * time.Second, 60 * time.Second, 0, 0},
		{"First retry", 1, 1 * time.Second, 60 * time.Second, 1000, 1100},
		{"Second retry", 2, 1 * time.Second, 60 * time.Second, 2000, 2200},
		{"Third retry", 3, 1 * time.Second, 60 * time.Second, 4000, 4400},
		{"Max cap hit", 10, 1 * time.Second, 60 * time.Second, 60000, 66000},
		{"Overflow capped", 200, 1 * time.Second, 60 * time.Second, 60000, 66000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBackoff(tt.baseDelay, tt.maxDelay)

			delayMs := b.Delay(tt.retry).Milliseconds()
			if delayMs < tt.wantMinMs || delayMs > tt.wantMaxMs {
				t.Errorf("delay = %dms, want between %dms and %dms", delayMs, tt.wantMinMs, tt.wantMaxMs)
			}
		})
	}
}

func TestBackoff_SleepHonorsContext(t *testing.T) {
	b := NewBackoff(10*time.Second, 60*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := b.Sleep(ctx, 1)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Sleep() error = %v, want deadline exceeded", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Error("Sleep() ignored context cancellation")
	}

	// Retry 0 never waits
	if err := b.Sleep(context.Background(), 0); err != nil {
		t.Errorf("Sleep(0) = %v", err)
	}
}
