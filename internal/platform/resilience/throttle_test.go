package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestThrottle_SpacesCalls(t *testing.T) {
	clock := clockwork.NewFakeClock()
	throttle := NewThrottle(1100*time.Millisecond, clock)
	ctx := context.Background()

	if err := throttle.Wait(ctx); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- throttle.Wait(ctx) }()

	waitCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := clock.BlockUntilContext(waitCtx, 1); err != nil {
		t.Fatalf("second wait never blocked: %v", err)
	}

	select {
	case <-done:
		t.Fatalf("second call passed before interval elapsed")
	default:
	}

	clock.Advance(1100 * time.Millisecond)
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("second wait: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("second wait did not release after advancing clock")
	}
}

func TestThrottle_ContextCancelled(t *testing.T) {
	clock := clockwork.NewFakeClock()
	throttle := NewThrottle(time.Minute, clock)

	if err := throttle.Wait(context.Background()); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := throttle.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
