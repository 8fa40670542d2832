//go:build integration

package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/awaygame-sync/internal/domain/game"
	"github.com/riskibarqy/awaygame-sync/internal/domain/league"
	"github.com/riskibarqy/awaygame-sync/internal/domain/team"
	"github.com/riskibarqy/awaygame-sync/internal/domain/unitofwork"
	"github.com/riskibarqy/awaygame-sync/internal/domain/venue"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	_ "github.com/lib/pq"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("awaygame"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	schema, err := os.ReadFile("../../../../db/schema.sql")
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		t.Fatalf("apply schema: %v", err)
	}

	return NewStore(db)
}

func inTx(t *testing.T, store *Store, fn func(uow unitofwork.UnitOfWork)) {
	t.Helper()

	uow, err := store.Begin(context.Background())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	fn(uow)
	if err := uow.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
}

func strPtr(value string) *string { return &value }

func TestStore_VenueUpsertFillsMissingOnly(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	metLife := venue.Venue{ID: 3839, Name: "MetLife Stadium", City: strPtr("East Rutherford"), Country: strPtr("USA")}
	inTx(t, store, func(uow unitofwork.UnitOfWork) {
		if _, err := uow.Venues().Upsert(ctx, metLife); err != nil {
			t.Fatalf("insert venue: %v", err)
		}
	})

	located := metLife
	located.Name = "Giants Stadium"
	located.City = strPtr("Newark")
	located.Region = strPtr("NJ")
	located = located.WithCoordinates(venue.Coordinates{Latitude: 40.8135, Longitude: -74.0745})
	inTx(t, store, func(uow unitofwork.UnitOfWork) {
		if _, err := uow.Venues().Upsert(ctx, located); err != nil {
			t.Fatalf("fill venue: %v", err)
		}
	})

	moved := metLife.WithCoordinates(venue.Coordinates{Latitude: 1, Longitude: 2})
	inTx(t, store, func(uow unitofwork.UnitOfWork) {
		if _, err := uow.Venues().Upsert(ctx, moved); err != nil {
			t.Fatalf("re-upsert venue: %v", err)
		}
	})

	inTx(t, store, func(uow unitofwork.UnitOfWork) {
		stored, ok, err := uow.Venues().GetByID(ctx, 3839)
		if err != nil || !ok {
			t.Fatalf("get venue: ok=%v err=%v", ok, err)
		}
		if stored.Name != "MetLife Stadium" || *stored.City != "East Rutherford" {
			t.Fatalf("stored values were overwritten: %+v", stored)
		}
		if stored.Region == nil || *stored.Region != "NJ" {
			t.Fatalf("expected region to be filled, got %v", stored.Region)
		}
		if !stored.HasCoordinates() || *stored.Latitude != 40.8135 || *stored.Longitude != -74.0745 {
			t.Fatalf("expected first coordinates to be kept, got %v,%v", stored.Latitude, stored.Longitude)
		}
	})
}

func TestStore_GameUpsertReportsOutcome(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	var home, away team.Team
	inTx(t, store, func(uow unitofwork.UnitOfWork) {
		if err := uow.Leagues().Upsert(ctx, league.League{Code: "NFL", SportTag: "football", LeagueTag: "nfl", Name: "National Football League", Active: true}); err != nil {
			t.Fatalf("upsert league: %v", err)
		}
		var err error
		if home, _, err = uow.Teams().Create(ctx, team.Team{LeagueCode: "NFL", ExternalTeamID: 19, Location: "New York", Name: "Giants", DisplayName: "New York Giants"}); err != nil {
			t.Fatalf("create home: %v", err)
		}
		if away, _, err = uow.Teams().Create(ctx, team.Team{LeagueCode: "NFL", ExternalTeamID: 6, Location: "Dallas", Name: "Cowboys", DisplayName: "Dallas Cowboys"}); err != nil {
			t.Fatalf("create away: %v", err)
		}
		if _, created, err := uow.Teams().Create(ctx, team.Team{LeagueCode: "NFL", ExternalTeamID: 19, Location: "New York", Name: "Giants", DisplayName: "NY"}); err != nil || created {
			t.Fatalf("expected duplicate create to return existing team, created=%v err=%v", created, err)
		}
	})

	kickoff := time.Date(2026, 9, 13, 17, 0, 0, 0, time.UTC)
	item := game.Game{ID: 401547403, LeagueCode: "NFL", HomeTeamID: home.ID, AwayTeamID: away.ID, DateTime: kickoff}

	steps := []struct {
		name string
		in   game.Game
		want game.UpsertResult
	}{
		{name: "insert", in: item, want: game.UpsertCreated},
		{name: "same kickoff", in: item, want: game.UpsertUnchanged},
		{name: "new kickoff", in: func() game.Game { g := item; g.DateTime = kickoff.Add(3 * time.Hour); return g }(), want: game.UpsertUpdated},
	}
	for _, step := range steps {
		inTx(t, store, func(uow unitofwork.UnitOfWork) {
			got, err := uow.Games().Upsert(ctx, step.in)
			if err != nil {
				t.Fatalf("%s: %v", step.name, err)
			}
			if got != step.want {
				t.Fatalf("%s: expected %s, got %s", step.name, step.want, got)
			}
		})
	}

	inTx(t, store, func(uow unitofwork.UnitOfWork) {
		games, err := uow.Games().ListByLeague(ctx, "NFL")
		if err != nil {
			t.Fatalf("list games: %v", err)
		}
		if len(games) != 1 || !games[0].DateTime.Equal(kickoff.Add(3*time.Hour)) {
			t.Fatalf("unexpected games: %+v", games)
		}
		teams, err := uow.Teams().ListByLeague(ctx, "NFL")
		if err != nil {
			t.Fatalf("list teams: %v", err)
		}
		if len(teams) != 2 {
			t.Fatalf("expected two teams, got %d", len(teams))
		}
	})
}
