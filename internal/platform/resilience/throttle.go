package resilience

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"
)

// Throttle spaces calls to a dependency at least interval apart.
type Throttle struct {
	limiter  *rate.Limiter
	clock    clockwork.Clock
	interval time.Duration
}

func NewThrottle(interval time.Duration, clock clockwork.Clock) *Throttle {
	if interval <= 0 {
		interval = time.Second
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Throttle{
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		clock:    clock,
		interval: interval,
	}
}

func (t *Throttle) Interval() time.Duration {
	return t.interval
}

// Wait blocks until the next call is permitted or ctx is done.
func (t *Throttle) Wait(ctx context.Context) error {
	now := t.clock.Now()
	reservation := t.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return fmt.Errorf("throttle reservation rejected")
	}

	delay := reservation.DelayFrom(now)
	if delay <= 0 {
		return nil
	}

	timer := t.clock.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		reservation.CancelAt(t.clock.Now())
		return ctx.Err()
	case <-timer.Chan():
		return nil
	}
}
