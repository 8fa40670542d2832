package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/awaygame-sync/internal/domain/game"
	qb "github.com/riskibarqy/awaygame-sync/internal/platform/querybuilder"
)

type GameRepository struct {
	db sqlx.ExtContext
}

func NewGameRepository(db sqlx.ExtContext) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) GetByID(ctx context.Context, gameID int64) (game.Game, bool, error) {
	query, args, err := qb.Select("*").From("games").
		Where(qb.Eq("game_id", gameID)).
		ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build get game by id query: %w", err)
	}

	var row gameTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("get game by id: %w", err)
	}

	return gameFromRow(row), true, nil
}

func (r *GameRepository) ListByLeague(ctx context.Context, leagueCode string) ([]game.Game, error) {
	query, args, err := qb.Select("*").From("games").
		Where(qb.Eq("league_id", leagueCode)).
		OrderBy("date_time", "game_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select games by league query: %w", err)
	}

	var rows []gameTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select games by league: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameFromRow(row))
	}
	return out, nil
}

// Upsert inserts the game or revises its kickoff and venue. The conflict
// update is guarded so an unchanged row is neither written nor returned.
func (r *GameRepository) Upsert(ctx context.Context, item game.Game) (game.UpsertResult, error) {
	if err := item.Validate(); err != nil {
		return "", fmt.Errorf("upsert game: %w", err)
	}

	insertModel := gameInsertModel{
		ID:         item.ID,
		LeagueCode: item.LeagueCode,
		HomeTeamID: item.HomeTeamID,
		AwayTeamID: item.AwayTeamID,
		VenueID:    item.VenueID,
		DateTime:   item.DateTime.UTC(),
	}

	suffix := qb.OnConflict("game_id").
		SetExcluded("date_time").
		Set("venue_id", "COALESCE(EXCLUDED.venue_id, games.venue_id)").
		Set("updated_at", "NOW()").
		Where("(games.date_time IS DISTINCT FROM EXCLUDED.date_time OR (EXCLUDED.venue_id IS NOT NULL AND games.venue_id IS DISTINCT FROM EXCLUDED.venue_id))").
		Returning("(xmax = 0) AS inserted").
		String()
	query, args, err := qb.InsertModel("games", insertModel, suffix)
	if err != nil {
		return "", fmt.Errorf("build upsert game query: %w", err)
	}

	var inserted bool
	if err := sqlx.GetContext(ctx, r.db, &inserted, query, args...); err != nil {
		if isNotFound(err) {
			return game.UpsertUnchanged, nil
		}
		return "", fmt.Errorf("upsert game %d: %w", item.ID, err)
	}
	if inserted {
		return game.UpsertCreated, nil
	}
	return game.UpsertUpdated, nil
}

func gameFromRow(row gameTableModel) game.Game {
	return game.Game{
		ID:         row.ID,
		LeagueCode: row.LeagueCode,
		HomeTeamID: row.HomeTeamID,
		AwayTeamID: row.AwayTeamID,
		VenueID:    nullInt64ToPtr(row.VenueID),
		DateTime:   row.DateTime.UTC(),
	}
}
