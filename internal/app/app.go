package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/awaygame-sync/external/espn"
	"github.com/riskibarqy/awaygame-sync/external/nominatim"
	"github.com/riskibarqy/awaygame-sync/internal/config"
	"github.com/riskibarqy/awaygame-sync/internal/domain/unitofwork"
	"github.com/riskibarqy/awaygame-sync/internal/domain/venue"
	"github.com/riskibarqy/awaygame-sync/internal/geocoding"
	"github.com/riskibarqy/awaygame-sync/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/awaygame-sync/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/awaygame-sync/internal/platform/logging"
	"github.com/riskibarqy/awaygame-sync/internal/platform/resilience"
	"github.com/riskibarqy/awaygame-sync/internal/usecase"
)

// SyncJob is one fully wired sync pipeline. Run may be called repeatedly;
// each call is an independent run.
type SyncJob struct {
	cfg          config.Config
	orchestrator *usecase.SyncOrchestrator
	resolver     *geocoding.Resolver
	db           *sqlx.DB
	logger       *logging.Logger
}

// Recorder receives run and geocoding metrics.
type Recorder interface {
	usecase.SyncRecorder
	geocoding.LookupRecorder
}

func NewSyncJob(cfg config.Config, metrics Recorder, logger *logging.Logger) (*SyncJob, error) {
	if logger == nil {
		logger = logging.Default()
	}
	clock := clockwork.NewRealClock()

	factory, db, err := newStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	provider := espn.NewClient(espn.ClientConfig{
		BaseURL:       cfg.ESPNBaseURL,
		Timeout:       cfg.ESPNTimeout,
		MaxRetries:    cfg.ESPNMaxRetries,
		ScheduleLimit: cfg.ESPNScheduleLimit,
		Logger:        logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ESPNCircuitEnabled,
			FailureThreshold: cfg.ESPNCircuitFailureCount,
			OpenTimeout:      cfg.ESPNCircuitOpenTimeout,
		},
		Clock: clock,
	})

	var (
		resolver *geocoding.Resolver
		geocoder venue.Geocoder
	)
	if cfg.GeocodeEnabled {
		resolver = geocoding.NewResolver(geocoding.ResolverConfig{
			Provider: nominatim.NewClient(nominatim.ClientConfig{
				BaseURL:   cfg.GeocodeBaseURL,
				UserAgent: cfg.GeocodeUserAgent,
				Timeout:   cfg.GeocodeTimeout,
				Logger:    logger,
			}),
			Throttle: resilience.NewThrottle(cfg.GeocodeInterval, clock),
			Logger:   logger,
			Metrics:  metrics,
			Clock:    clock,
		})
		geocoder = resolver
	} else {
		logger.Info("geocoding disabled", "reason", "GEOCODE_ENABLED=false")
	}

	orchestrator := usecase.NewSyncOrchestrator(
		factory,
		usecase.NewTeamReconciler(provider, geocoder, logger.Named("teams")),
		usecase.NewScheduleReconciler(provider, geocoder, usecase.ScheduleReconcilerConfig{
			GeocodeVenues: cfg.ScheduleGeocodeVenues,
		}, logger.Named("schedule")),
		usecase.SyncOrchestratorConfig{ScheduleHorizonDays: cfg.ScheduleHorizonDays},
		clock,
		metrics,
		logger,
	)

	return &SyncJob{
		cfg:          cfg,
		orchestrator: orchestrator,
		resolver:     resolver,
		db:           db,
		logger:       logger,
	}, nil
}

// Run executes one sync run bounded by SYNC_RUN_TIMEOUT.
func (j *SyncJob) Run(ctx context.Context) (usecase.RunReport, error) {
	if j.cfg.SyncRunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.cfg.SyncRunTimeout)
		defer cancel()
	}
	if j.resolver != nil {
		j.resolver.Reset()
	}

	return j.orchestrator.Run(ctx, j.cfg.Leagues)
}

func (j *SyncJob) Close() error {
	if j.db == nil {
		return nil
	}
	return j.db.Close()
}

func newStore(cfg config.Config, logger *logging.Logger) (unitofwork.Factory, *sqlx.DB, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		logger.Warn("using in-memory store, changes are discarded on exit")
		return memory.NewStore(), nil, nil
	case config.StoreDriverPostgres, "":
		db, err := openDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("database connected", "db_name", dbNameFromURL(cfg.DBURL), "max_open_conns", cfg.DBMaxOpenConns)
		return postgres.NewStore(db), db, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}
