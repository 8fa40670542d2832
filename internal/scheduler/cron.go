package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/awaygame-sync/internal/platform/logging"
	"github.com/robfig/cron/v3"
)

// Job is the work triggered on every schedule tick.
type Job func(ctx context.Context) error

type Config struct {
	// Spec is a standard five-field cron expression.
	Spec     string
	Location *time.Location
}

// Scheduler triggers a Job on a cron schedule. A tick that fires while the
// previous run is still going is skipped.
type Scheduler struct {
	cron    *cron.Cron
	entryID cron.EntryID
	logger  *logging.Logger

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc

	// triggered counts runs started by Trigger; cron only tracks its own ticks.
	triggered sync.WaitGroup
}

func New(cfg Config, job Job, logger *logging.Logger) (*Scheduler, error) {
	if job == nil {
		return nil, fmt.Errorf("scheduler job is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	location := cfg.Location
	if location == nil {
		location = time.UTC
	}

	cronLogger := cronLogAdapter{logger: logger.Named("cron")}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(location),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		logger: logger,
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())

	id, err := s.cron.AddFunc(cfg.Spec, func() { s.run(job) })
	if err != nil {
		return nil, fmt.Errorf("parse cron spec %q: %w", cfg.Spec, err)
	}
	s.entryID = id

	return s, nil
}

func (s *Scheduler) run(job Job) {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()

	started := time.Now()
	s.logger.InfoContext(ctx, "scheduled run starting")
	if err := job(ctx); err != nil {
		s.logger.ErrorContext(ctx, "scheduled run failed", "error", err, "duration", time.Since(started).String())
		return
	}
	s.logger.InfoContext(ctx, "scheduled run finished", "duration", time.Since(started).String())
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "next_run", s.Next().Format(time.RFC3339))
}

// Next returns the next activation time, or the zero time before Start.
func (s *Scheduler) Next() time.Time {
	return s.cron.Entry(s.entryID).Next
}

// Trigger runs the job now through the same skip-if-running chain as the
// scheduled ticks. Stop waits for a triggered run as it does for a tick.
func (s *Scheduler) Trigger() {
	s.triggered.Add(1)
	defer s.triggered.Done()
	s.cron.Entry(s.entryID).WrappedJob.Run()
}

// TriggerAsync is Trigger in a new goroutine. The run is registered before
// TriggerAsync returns, so a following Stop always waits for it.
func (s *Scheduler) TriggerAsync() {
	s.triggered.Add(1)
	go func() {
		defer s.triggered.Done()
		s.cron.Entry(s.entryID).WrappedJob.Run()
	}()
}

// Stop cancels the running job's context and waits for it to return or for
// ctx to expire. Both scheduled and triggered runs are waited for.
func (s *Scheduler) Stop(ctx context.Context) error {
	cronDone := s.cron.Stop()

	s.mu.Lock()
	s.cancel()
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		<-cronDone.Done()
		s.triggered.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for running job: %w", ctx.Err())
	}
}

// cronLogAdapter routes cron's internal logging into the structured logger.
type cronLogAdapter struct {
	logger *logging.Logger
}

func (a cronLogAdapter) Info(msg string, keysAndValues ...any) {
	a.logger.Debug(msg, keysAndValues...)
}

func (a cronLogAdapter) Error(err error, msg string, keysAndValues ...any) {
	a.logger.Error(msg, append(keysAndValues, "error", err)...)
}
