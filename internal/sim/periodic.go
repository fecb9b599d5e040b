package sim

import (
	"context"
	"time"
)

// Every calls fn once per period until ctx is cancelled. It returns nil on
// cancellation so it can run inside an errgroup next to other tasks.
func Every(ctx context.Context, period time.Duration, fn func(context.Context)) error {
	if period <= 0 {
		period = 16 * time.Millisecond
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			fn(ctx)
		}
	}
}
