package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/awaygame-sync/internal/domain/feed"
	"github.com/riskibarqy/awaygame-sync/internal/domain/league"
	"github.com/riskibarqy/awaygame-sync/internal/domain/unitofwork"
	"github.com/riskibarqy/awaygame-sync/internal/domain/venue"
	"github.com/riskibarqy/awaygame-sync/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type TeamSyncResult struct {
	Fetched        int
	Created        int
	Existing       int
	Skipped        int
	VenuesStored   int
	DetailFailures int
}

// TeamReconciler creates teams the store has not seen. Stored teams are
// never updated.
type TeamReconciler struct {
	provider feed.Provider
	venues   venueSync
	logger   *logging.Logger
}

func NewTeamReconciler(provider feed.Provider, geocoder venue.Geocoder, logger *logging.Logger) *TeamReconciler {
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamReconciler{
		provider: provider,
		venues:   venueSync{geocoder: geocoder, logger: logger},
		logger:   logger,
	}
}

func (r *TeamReconciler) Reconcile(ctx context.Context, uow unitofwork.UnitOfWork, lg league.League) (TeamSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamReconciler.Reconcile", attribute.String("league_code", lg.Code))
	defer span.End()

	var result TeamSyncResult
	if r.provider == nil {
		return result, fmt.Errorf("%w: team feed is not configured", ErrDependencyUnavailable)
	}

	r.logger.InfoContext(ctx, "scraping teams", "league_code", lg.Code)
	items, err := r.provider.FetchTeams(ctx, lg.SportTag, lg.LeagueTag)
	if err != nil {
		recordSpanError(span, err)
		return result, fmt.Errorf("fetch teams league=%s: %w", lg.Code, err)
	}
	result.Fetched = len(items)

	stored, err := uow.Teams().ListByLeague(ctx, lg.Code)
	if err != nil {
		return result, fmt.Errorf("list teams league=%s: %w", lg.Code, err)
	}
	index := indexTeams(stored)
	r.logger.InfoContext(ctx, "team counts", "league_code", lg.Code, "stored", len(stored), "feed", len(items))

	for _, item := range items {
		if _, ok := index.lookup(lg.Code, item.ExternalID); ok {
			result.Existing++
			continue
		}

		if item.Name == "" && item.DisplayName == "" {
			result.Skipped++
			r.logger.WarnContext(ctx, "skipping team without a name", "league_code", lg.Code, "external_team_id", item.ExternalID)
			continue
		}

		homeVenueID, err := r.resolveHomeVenue(ctx, uow, lg, item, &result)
		if err != nil {
			recordSpanError(span, err)
			return result, err
		}

		created, isNew, err := uow.Teams().Create(ctx, teamFromFeed(lg.Code, item, homeVenueID))
		if err != nil {
			recordSpanError(span, err)
			return result, fmt.Errorf("create team league=%s external_team_id=%d: %w", lg.Code, item.ExternalID, err)
		}
		index[created.Key()] = created
		if !isNew {
			result.Existing++
			continue
		}

		result.Created++
		r.logger.InfoContext(ctx, "team created",
			"league_code", lg.Code,
			"external_team_id", item.ExternalID,
			"team_id", created.ID,
			"display_name", created.DisplayName,
			"home_venue_id", homeVenueID,
		)
	}

	r.logger.InfoContext(ctx, "teams processed",
		"league_code", lg.Code,
		"fetched", result.Fetched,
		"created", result.Created,
		"existing", result.Existing,
		"skipped", result.Skipped,
	)
	return result, nil
}

// resolveHomeVenue looks up a new team's home venue. Feed failures are
// logged and yield no venue; only persistence failures and cancellation
// are returned.
func (r *TeamReconciler) resolveHomeVenue(ctx context.Context, uow unitofwork.UnitOfWork, lg league.League, item feed.Team, result *TeamSyncResult) (*int64, error) {
	detail, err := r.provider.FetchTeamDetail(ctx, lg.SportTag, lg.LeagueTag, item.ExternalID)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		result.DetailFailures++
		r.logger.WarnContext(ctx, "could not fetch venue for team",
			"league_code", lg.Code,
			"external_team_id", item.ExternalID,
			"error", err,
		)
		return nil, nil
	}
	if detail.HomeVenue == nil || detail.HomeVenue.ExternalID <= 0 {
		return nil, nil
	}

	stored, written, err := r.venues.ensure(ctx, uow.Venues(), *detail.HomeVenue, true)
	if err != nil {
		return nil, fmt.Errorf("home venue league=%s external_team_id=%d: %w", lg.Code, item.ExternalID, err)
	}
	if written {
		result.VenuesStored++
	}
	venueID := stored.ID
	return &venueID, nil
}
