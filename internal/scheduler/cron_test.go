package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/awaygame-sync/internal/platform/logging"
)

func TestNew_RejectsInvalidSpec(t *testing.T) {
	t.Parallel()

	_, err := New(Config{Spec: "not a cron"}, func(context.Context) error { return nil }, logging.NewNop())
	if err == nil {
		t.Fatalf("expected invalid spec error")
	}
	if _, err := New(Config{Spec: "0 6 * * *"}, nil, logging.NewNop()); err == nil {
		t.Fatalf("expected missing job error")
	}
}

func TestScheduler_NextUsesLocation(t *testing.T) {
	t.Parallel()

	location, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	s, err := New(Config{Spec: "0 6 * * *", Location: location}, func(context.Context) error { return nil }, logging.NewNop())
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	s.Start()
	defer func() { _ = s.Stop(context.Background()) }()

	next := s.Next().In(location)
	if next.Hour() != 6 || next.Minute() != 0 {
		t.Fatalf("expected next run at 06:00 local, got %s", next)
	}
}

func TestScheduler_SkipsOverlappingRuns(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	release := make(chan struct{})
	entered := make(chan struct{})

	s, err := New(Config{Spec: "0 6 * * *"}, func(context.Context) error {
		calls.Add(1)
		close(entered)
		<-release
		return nil
	}, logging.NewNop())
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}

	done := make(chan struct{})
	go func() {
		s.Trigger()
		close(done)
	}()
	<-entered

	s.Trigger()
	close(release)
	<-done

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected overlapping trigger to be skipped, got %d calls", got)
	}
}

func TestScheduler_StopCancelsRunningJob(t *testing.T) {
	t.Parallel()

	entered := make(chan struct{})
	result := make(chan error, 1)

	s, err := New(Config{Spec: "0 6 * * *"}, func(ctx context.Context) error {
		close(entered)
		<-ctx.Done()
		result <- ctx.Err()
		return ctx.Err()
	}, logging.NewNop())
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	s.Start()

	go s.Trigger()
	<-entered

	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if err := <-result; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected job context to be cancelled, got %v", err)
	}
}

func TestScheduler_StopWaitsForTriggeredRun(t *testing.T) {
	t.Parallel()

	entered := make(chan struct{})
	var finished atomic.Bool

	s, err := New(Config{Spec: "0 6 * * *"}, func(ctx context.Context) error {
		close(entered)
		<-ctx.Done()
		// rollback after cancellation still takes a while
		time.Sleep(300 * time.Millisecond)
		finished.Store(true)
		return ctx.Err()
	}, logging.NewNop())
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	s.Start()

	s.TriggerAsync()
	<-entered

	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if !finished.Load() {
		t.Fatalf("expected triggered run to have returned before Stop")
	}
}

func TestScheduler_StopTimesOutOnStuckRun(t *testing.T) {
	t.Parallel()

	entered := make(chan struct{})
	release := make(chan struct{})

	s, err := New(Config{Spec: "0 6 * * *"}, func(context.Context) error {
		close(entered)
		<-release
		return nil
	}, logging.NewNop())
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	s.Start()
	defer close(release)

	s.TriggerAsync()
	<-entered

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := s.Stop(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}
