package batch

import (
	"context"
	"time"
)

// Throttle is the pause schedule between calls. Zero values mean no pause.
type Throttle struct {
	// BetweenChains is the pause after each chain's mutation attempt
	// within a row.
	BetweenChains time.Duration
	// BetweenRows is the pause after a row's chains are all processed.
	BetweenRows time.Duration
	// AfterRowFailure replaces BetweenRows when the row's resolution
	// failed or found nothing, if set. The Solana sheet historically
	// backed off less after misses than after mutations.
	AfterRowFailure time.Duration
}

func (t Throttle) rowPause(failed bool) time.Duration {
	if failed && t.AfterRowFailure > 0 {
		return t.AfterRowFailure
	}
	return t.BetweenRows
}

// sleep blocks for d or until the context is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
