package notify

import (
	"context"
	"time"

	"tableflip.dev/dayplan/pkg/clock"
)

// DefaultPeriod is the reminder check cadence.
const DefaultPeriod = 10 * time.Second

// Run calls tick with the clock's time immediately and then every period
// until ctx is done.
func Run(ctx context.Context, c clock.Clock, period time.Duration, tick func(context.Context, time.Time)) error {
	if period <= 0 {
		period = DefaultPeriod
	}
	if c == nil {
		c = clock.Real{}
	}
	tick(ctx, c.Now())

	t := time.NewTicker(period)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			tick(ctx, c.Now())
		}
	}
}
