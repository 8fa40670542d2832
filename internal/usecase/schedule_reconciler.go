package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/awaygame-sync/internal/domain/feed"
	"github.com/riskibarqy/awaygame-sync/internal/domain/game"
	"github.com/riskibarqy/awaygame-sync/internal/domain/league"
	"github.com/riskibarqy/awaygame-sync/internal/domain/unitofwork"
	"github.com/riskibarqy/awaygame-sync/internal/domain/venue"
	"github.com/riskibarqy/awaygame-sync/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type ScheduleSyncResult struct {
	Fetched      int
	Created      int
	Updated      int
	Unchanged    int
	Skipped      int
	VenuesStored int
}

type ScheduleReconcilerConfig struct {
	// GeocodeVenues enables lookups for venues first seen in the schedule.
	GeocodeVenues bool
}

// ScheduleReconciler upserts the games in a forward window of the feed.
type ScheduleReconciler struct {
	provider feed.Provider
	venues   venueSync
	cfg      ScheduleReconcilerConfig
	logger   *logging.Logger
}

func NewScheduleReconciler(provider feed.Provider, geocoder venue.Geocoder, cfg ScheduleReconcilerConfig, logger *logging.Logger) *ScheduleReconciler {
	if logger == nil {
		logger = logging.Default()
	}

	return &ScheduleReconciler{
		provider: provider,
		venues:   venueSync{geocoder: geocoder, logger: logger},
		cfg:      cfg,
		logger:   logger,
	}
}

func (r *ScheduleReconciler) Reconcile(ctx context.Context, uow unitofwork.UnitOfWork, lg league.League, window feed.DateRange) (ScheduleSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleReconciler.Reconcile",
		attribute.String("league_code", lg.Code),
		attribute.String("dates", window.String()),
	)
	defer span.End()

	var result ScheduleSyncResult
	if r.provider == nil {
		return result, fmt.Errorf("%w: schedule feed is not configured", ErrDependencyUnavailable)
	}

	r.logger.InfoContext(ctx, "scraping schedule", "league_code", lg.Code, "dates", window.String())
	items, err := r.provider.FetchSchedule(ctx, lg.SportTag, lg.LeagueTag, window)
	if err != nil {
		recordSpanError(span, err)
		return result, fmt.Errorf("fetch schedule league=%s: %w", lg.Code, err)
	}
	result.Fetched = len(items)

	stored, err := uow.Teams().ListByLeague(ctx, lg.Code)
	if err != nil {
		return result, fmt.Errorf("list teams league=%s: %w", lg.Code, err)
	}
	teams := indexTeams(stored)
	knownVenues := make(map[int64]struct{})

	for _, item := range items {
		if item.HomeTeamExternalID <= 0 || item.AwayTeamExternalID <= 0 {
			result.Skipped++
			r.logger.WarnContext(ctx, "skipping game: missing team data", "league_code", lg.Code, "game_id", item.ExternalID)
			continue
		}

		home, homeOK := teams.lookup(lg.Code, item.HomeTeamExternalID)
		away, awayOK := teams.lookup(lg.Code, item.AwayTeamExternalID)
		if !homeOK || !awayOK {
			result.Skipped++
			r.logger.WarnContext(ctx, "skipping game: team not found",
				"league_code", lg.Code,
				"game_id", item.ExternalID,
				"home_external_team_id", item.HomeTeamExternalID,
				"away_external_team_id", item.AwayTeamExternalID,
			)
			continue
		}

		var venueID *int64
		if item.Venue != nil && item.Venue.ExternalID > 0 {
			id := item.Venue.ExternalID
			if _, seen := knownVenues[id]; !seen {
				_, written, err := r.venues.ensure(ctx, uow.Venues(), *item.Venue, r.cfg.GeocodeVenues)
				if err != nil {
					recordSpanError(span, err)
					return result, fmt.Errorf("venue league=%s game_id=%d: %w", lg.Code, item.ExternalID, err)
				}
				if written {
					result.VenuesStored++
				}
				knownVenues[id] = struct{}{}
			}
			venueID = &id
		}

		outcome, err := uow.Games().Upsert(ctx, game.Game{
			ID:         item.ExternalID,
			LeagueCode: lg.Code,
			HomeTeamID: home.ID,
			AwayTeamID: away.ID,
			VenueID:    venueID,
			DateTime:   item.KickoffAt.UTC(),
		})
		if err != nil {
			recordSpanError(span, err)
			return result, fmt.Errorf("upsert game league=%s game_id=%d: %w", lg.Code, item.ExternalID, err)
		}

		switch outcome {
		case game.UpsertCreated:
			result.Created++
		case game.UpsertUpdated:
			result.Updated++
			r.logger.DebugContext(ctx, "game updated", "league_code", lg.Code, "game_id", item.ExternalID)
		default:
			result.Unchanged++
		}
	}

	r.logger.InfoContext(ctx, "games processed",
		"league_code", lg.Code,
		"fetched", result.Fetched,
		"created", result.Created,
		"updated", result.Updated,
		"unchanged", result.Unchanged,
		"skipped", result.Skipped,
		"venues_stored", result.VenuesStored,
	)
	return result, nil
}
