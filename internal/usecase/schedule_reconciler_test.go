package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/awaygame-sync/internal/domain/feed"
	"github.com/riskibarqy/awaygame-sync/internal/domain/unitofwork"
	feedmock "github.com/riskibarqy/awaygame-sync/internal/mocks/domain/feed"
	venuemock "github.com/riskibarqy/awaygame-sync/internal/mocks/domain/venue"
	"github.com/riskibarqy/awaygame-sync/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func seedTeams(t *testing.T, uow unitofwork.UnitOfWork, items ...feed.Team) {
	t.Helper()

	for _, item := range items {
		if _, _, err := uow.Teams().Create(context.Background(), teamFromFeed("NFL", item, nil)); err != nil {
			t.Fatalf("seed team %d: %v", item.ExternalID, err)
		}
	}
}

func TestScheduleReconciler_MergesVenueOncePerLeague(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uow := beginMemory(t)
	seedTeams(t, uow, giants, cowboys)

	window := feed.NewForwardWindow(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), 30)
	provider := feedmock.NewProvider(t)
	geocoder := venuemock.NewGeocoder(t)
	provider.On("FetchSchedule", mock.Anything, "football", "nfl", window).Return([]feed.Game{
		{ExternalID: 1, KickoffAt: time.Date(2026, 9, 13, 17, 0, 0, 0, time.UTC), HomeTeamExternalID: 19, AwayTeamExternalID: 6, Venue: &metLife},
		{ExternalID: 2, KickoffAt: time.Date(2026, 9, 27, 17, 0, 0, 0, time.UTC), HomeTeamExternalID: 19, AwayTeamExternalID: 6, Venue: &metLife},
	}, nil).Once()
	geocoder.On("Resolve", mock.Anything, metLifeQuery).Return(metLifeAt, true).Once()

	sut := NewScheduleReconciler(provider, geocoder, ScheduleReconcilerConfig{GeocodeVenues: true}, logging.NewNop())
	result, err := sut.Reconcile(ctx, uow, nfl, window)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if result.Created != 2 || result.VenuesStored != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	games, err := uow.Games().ListByLeague(ctx, "NFL")
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(games) != 2 || games[0].VenueID == nil || *games[0].VenueID != 3839 {
		t.Fatalf("unexpected games: %+v", games)
	}
}

func TestScheduleReconciler_SkipsMissingCompetitor(t *testing.T) {
	t.Parallel()

	uow := beginMemory(t)
	seedTeams(t, uow, giants)

	provider := feedmock.NewProvider(t)
	provider.On("FetchSchedule", mock.Anything, "football", "nfl", mock.Anything).Return([]feed.Game{
		{ExternalID: 3, KickoffAt: time.Date(2026, 9, 14, 0, 20, 0, 0, time.UTC), HomeTeamExternalID: 19},
	}, nil).Once()

	sut := NewScheduleReconciler(provider, nil, ScheduleReconcilerConfig{}, logging.NewNop())
	result, err := sut.Reconcile(context.Background(), uow, nfl, feed.DateRange{})
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if result.Skipped != 1 || result.Created != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestScheduleReconciler_GeocodingDisabled(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uow := beginMemory(t)
	seedTeams(t, uow, giants, cowboys)

	provider := feedmock.NewProvider(t)
	geocoder := venuemock.NewGeocoder(t)
	provider.On("FetchSchedule", mock.Anything, "football", "nfl", mock.Anything).Return([]feed.Game{
		{ExternalID: 1, KickoffAt: time.Date(2026, 9, 13, 17, 0, 0, 0, time.UTC), HomeTeamExternalID: 19, AwayTeamExternalID: 6, Venue: &metLife},
	}, nil).Once()

	sut := NewScheduleReconciler(provider, geocoder, ScheduleReconcilerConfig{GeocodeVenues: false}, logging.NewNop())
	result, err := sut.Reconcile(ctx, uow, nfl, feed.DateRange{})
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if result.Created != 1 || result.VenuesStored != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	geocoder.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestScheduleReconciler_UsesStoredTeamIDs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uow := beginMemory(t)
	seedTeams(t, uow, cowboys, giants)

	provider := feedmock.NewProvider(t)
	provider.On("FetchSchedule", mock.Anything, "football", "nfl", mock.Anything).Return([]feed.Game{
		{ExternalID: 1, KickoffAt: time.Date(2026, 9, 13, 17, 0, 0, 0, time.UTC), HomeTeamExternalID: 19, AwayTeamExternalID: 6},
	}, nil).Once()

	sut := NewScheduleReconciler(provider, nil, ScheduleReconcilerConfig{}, logging.NewNop())
	if _, err := sut.Reconcile(ctx, uow, nfl, feed.DateRange{}); err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	home, _, err := uow.Teams().GetByExternalID(ctx, "NFL", 19)
	if err != nil {
		t.Fatalf("get home: %v", err)
	}
	stored, ok, err := uow.Games().GetByID(ctx, 1)
	if err != nil || !ok {
		t.Fatalf("expected stored game, ok=%v err=%v", ok, err)
	}
	if stored.HomeTeamID != home.ID || stored.LeagueCode != "NFL" || stored.VenueID != nil {
		t.Fatalf("unexpected game: %+v (home %+v)", stored, home)
	}
}
