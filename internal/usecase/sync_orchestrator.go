package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/awaygame-sync/internal/domain/feed"
	"github.com/riskibarqy/awaygame-sync/internal/domain/league"
	"github.com/riskibarqy/awaygame-sync/internal/domain/unitofwork"
	"github.com/riskibarqy/awaygame-sync/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type RunState string

const (
	RunStateIdle             RunState = "idle"
	RunStateLoadingConfig    RunState = "loading_config"
	RunStateUpsertingLeagues RunState = "upserting_leagues"
	RunStateSyncing          RunState = "syncing"
	RunStateCommitted        RunState = "committed"
	RunStateRolledBack       RunState = "rolled_back"
	RunStateDone             RunState = "done"
	RunStateFatalFailure     RunState = "fatal_failure"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
)

const DefaultScheduleHorizonDays = 180

type LeagueReport struct {
	LeagueCode string
	State      RunState
	Err        error
	Teams      TeamSyncResult
	Games      ScheduleSyncResult
	Duration   time.Duration
}

type RunReport struct {
	State           RunState
	Window          feed.DateRange
	LeaguesUpserted int
	Leagues         []LeagueReport
	StartedAt       time.Time
	Duration        time.Duration
}

// Failed returns the reports of leagues that were rolled back.
func (r RunReport) Failed() []LeagueReport {
	out := make([]LeagueReport, 0)
	for _, item := range r.Leagues {
		if item.State == RunStateRolledBack {
			out = append(out, item)
		}
	}
	return out
}

type SyncOrchestratorConfig struct {
	ScheduleHorizonDays int
}

// SyncOrchestrator drives one run: league metadata first, then one unit of
// work per active league. A league failure never reaches another league.
type SyncOrchestrator struct {
	factory  unitofwork.Factory
	teams    *TeamReconciler
	schedule *ScheduleReconciler
	cfg      SyncOrchestratorConfig
	clock    clockwork.Clock
	metrics  SyncRecorder
	logger   *logging.Logger
}

func NewSyncOrchestrator(
	factory unitofwork.Factory,
	teams *TeamReconciler,
	schedule *ScheduleReconciler,
	cfg SyncOrchestratorConfig,
	clock clockwork.Clock,
	metrics SyncRecorder,
	logger *logging.Logger,
) *SyncOrchestrator {
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if metrics == nil {
		metrics = nopSyncRecorder{}
	}
	if cfg.ScheduleHorizonDays <= 0 {
		cfg.ScheduleHorizonDays = DefaultScheduleHorizonDays
	}

	return &SyncOrchestrator{
		factory:  factory,
		teams:    teams,
		schedule: schedule,
		cfg:      cfg,
		clock:    clock,
		metrics:  metrics,
		logger:   logger.Named("sync"),
	}
}

// Run syncs the configured leagues. The returned error is non-nil only for
// fatal failures and always wraps ErrFatalRun.
func (o *SyncOrchestrator) Run(ctx context.Context, leagues []league.League) (report RunReport, err error) {
	ctx, span := startRootSpan(ctx, "usecase.SyncOrchestrator.Run")
	defer span.End()

	report = RunReport{State: RunStateIdle, StartedAt: o.clock.Now()}
	o.transition(ctx, &report, RunStateIdle)
	defer func() {
		report.Duration = o.clock.Since(report.StartedAt)
		outcome := OutcomeSuccess
		if err != nil {
			outcome = OutcomeFailed
			recordSpanError(span, err)
			o.transition(ctx, &report, RunStateFatalFailure, "error", err)
		} else {
			o.transition(ctx, &report, RunStateDone,
				"leagues", len(report.Leagues),
				"failed", len(report.Failed()),
				"duration", report.Duration.String(),
			)
		}
		o.metrics.ObserveRun(outcome, report.Duration)
	}()

	if o.factory == nil || o.teams == nil || o.schedule == nil {
		return report, fmt.Errorf("%w: %w: sync orchestrator is not fully configured", ErrFatalRun, ErrDependencyUnavailable)
	}

	o.transition(ctx, &report, RunStateLoadingConfig, "configured", len(leagues))
	normalized, err := normalizeLeagues(leagues)
	if err != nil {
		return report, fmt.Errorf("%w: %w", ErrFatalRun, err)
	}

	o.transition(ctx, &report, RunStateUpsertingLeagues)
	if err := o.upsertLeagues(ctx, normalized); err != nil {
		return report, fmt.Errorf("%w: upsert leagues: %w", ErrFatalRun, err)
	}
	report.LeaguesUpserted = len(normalized)

	active, err := o.listActive(ctx)
	if err != nil {
		return report, fmt.Errorf("%w: list active leagues: %w", ErrFatalRun, err)
	}

	report.Window = feed.NewForwardWindow(o.clock.Now(), o.cfg.ScheduleHorizonDays)
	span.SetAttributes(
		attribute.Int("active_leagues", len(active)),
		attribute.String("dates", report.Window.String()),
	)

	for _, lg := range active {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return report, fmt.Errorf("%w: %w", ErrFatalRun, ctxErr)
		}
		report.Leagues = append(report.Leagues, o.syncLeague(ctx, lg, report.Window))
	}

	return report, nil
}

func (o *SyncOrchestrator) syncLeague(ctx context.Context, lg league.League, window feed.DateRange) (out LeagueReport) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncOrchestrator.syncLeague", attribute.String("league_code", lg.Code))
	defer span.End()

	started := o.clock.Now()
	out = LeagueReport{LeagueCode: lg.Code, State: RunStateSyncing}
	o.logger.InfoContext(ctx, "run state", "state", RunStateSyncing, "league_code", lg.Code)

	var uow unitofwork.UnitOfWork
	defer func() {
		if recovered := recover(); recovered != nil {
			out.Err = fmt.Errorf("panic during league sync: %v", recovered)
		}
		if uow != nil && out.Err != nil {
			if rbErr := uow.Rollback(); rbErr != nil {
				o.logger.ErrorContext(ctx, "rollback failed", "league_code", lg.Code, "error", rbErr)
			}
		}

		out.Duration = o.clock.Since(started)
		outcome := OutcomeSuccess
		if out.Err != nil {
			outcome = OutcomeFailed
			out.State = RunStateRolledBack
			recordSpanError(span, out.Err)
			o.logger.ErrorContext(ctx, "league sync failed",
				"state", RunStateRolledBack,
				"league_code", lg.Code,
				"error", out.Err,
			)
		} else {
			out.State = RunStateCommitted
			o.logger.InfoContext(ctx, "run state", "state", RunStateCommitted, "league_code", lg.Code, "duration", out.Duration.String())
			o.recordEntities(lg.Code, out)
		}
		o.metrics.ObserveLeague(lg.Code, outcome, out.Duration)
	}()

	var err error
	uow, err = o.factory.Begin(ctx)
	if err != nil {
		out.Err = fmt.Errorf("begin unit of work: %w", err)
		return out
	}

	out.Teams, err = o.teams.Reconcile(ctx, uow, lg)
	if err != nil {
		out.Err = err
		return out
	}

	out.Games, err = o.schedule.Reconcile(ctx, uow, lg, window)
	if err != nil {
		out.Err = err
		return out
	}

	if err := uow.Commit(); err != nil {
		out.Err = fmt.Errorf("commit league=%s: %w", lg.Code, err)
	}
	return out
}

func (o *SyncOrchestrator) upsertLeagues(ctx context.Context, leagues []league.League) (err error) {
	uow, err := o.factory.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin unit of work: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := uow.Rollback(); rbErr != nil {
				o.logger.ErrorContext(ctx, "rollback failed", "error", rbErr)
			}
		}
	}()

	for _, lg := range leagues {
		if err := uow.Leagues().Upsert(ctx, lg); err != nil {
			return fmt.Errorf("league=%s: %w", lg.Code, err)
		}
		o.logger.InfoContext(ctx, "league upserted", "league_code", lg.Code, "active", lg.Active)
	}

	return uow.Commit()
}

func (o *SyncOrchestrator) listActive(ctx context.Context) ([]league.League, error) {
	uow, err := o.factory.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin unit of work: %w", err)
	}
	defer func() {
		_ = uow.Rollback()
	}()

	active, err := uow.Leagues().ListActive(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(active, func(i, j int) bool { return active[i].Code < active[j].Code })
	return active, nil
}

func (o *SyncOrchestrator) recordEntities(leagueCode string, out LeagueReport) {
	o.metrics.AddEntities(leagueCode, EntityTeam, ActionCreated, out.Teams.Created)
	o.metrics.AddEntities(leagueCode, EntityTeam, ActionExisting, out.Teams.Existing)
	o.metrics.AddEntities(leagueCode, EntityTeam, ActionSkipped, out.Teams.Skipped)
	o.metrics.AddEntities(leagueCode, EntityVenue, ActionCreated, out.Teams.VenuesStored+out.Games.VenuesStored)
	o.metrics.AddEntities(leagueCode, EntityGame, ActionCreated, out.Games.Created)
	o.metrics.AddEntities(leagueCode, EntityGame, ActionUpdated, out.Games.Updated)
	o.metrics.AddEntities(leagueCode, EntityGame, ActionUnchanged, out.Games.Unchanged)
	o.metrics.AddEntities(leagueCode, EntityGame, ActionSkipped, out.Games.Skipped)
}

func (o *SyncOrchestrator) transition(ctx context.Context, report *RunReport, state RunState, args ...any) {
	report.State = state
	fields := append([]any{"state", state}, args...)
	if state == RunStateFatalFailure {
		o.logger.ErrorContext(ctx, "run state", fields...)
		return
	}
	o.logger.InfoContext(ctx, "run state", fields...)
}

// normalizeLeagues validates the descriptors and canonicalizes their codes.
// Duplicate codes are rejected.
func normalizeLeagues(leagues []league.League) ([]league.League, error) {
	if len(leagues) == 0 {
		return nil, fmt.Errorf("%w: no leagues configured", ErrInvalidInput)
	}

	seen := make(map[string]struct{}, len(leagues))
	out := make([]league.League, 0, len(leagues))
	var errs []error
	for _, lg := range leagues {
		lg.Code = league.NormalizeCode(lg.Code)
		if err := lg.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := seen[lg.Code]; dup {
			errs = append(errs, fmt.Errorf("duplicate league code %s", lg.Code))
			continue
		}
		seen[lg.Code] = struct{}{}
		out = append(out, lg)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, errors.Join(errs...))
	}

	return out, nil
}
