package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/awaygame-sync/internal/domain/team"
	qb "github.com/riskibarqy/awaygame-sync/internal/platform/querybuilder"
)

type TeamRepository struct {
	db sqlx.ExtContext
}

func NewTeamRepository(db sqlx.ExtContext) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueCode string) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("league_id", leagueCode)).
		OrderBy("team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams by league query: %w", err)
	}

	var rows []teamTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams by league: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func (r *TeamRepository) GetByExternalID(ctx context.Context, leagueCode string, externalTeamID int64) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(
			qb.Eq("league_id", leagueCode),
			qb.Eq("espn_team_id", externalTeamID),
		).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team by external id query: %w", err)
	}

	var row teamTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by external id: %w", err)
	}

	return teamFromRow(row), true, nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) (team.Team, bool, error) {
	insertModel := teamInsertModel{
		LeagueCode:     item.LeagueCode,
		ExternalTeamID: item.ExternalTeamID,
		Location:       item.Location,
		Name:           item.Name,
		DisplayName:    item.DisplayName,
		LogoURL:        optionalString(item.LogoURL),
		HomeVenueID:    item.HomeVenueID,
	}

	suffix := qb.OnConflict("espn_team_id", "league_id").DoNothing().Returning("*").String()
	query, args, err := qb.InsertModel("teams", insertModel, suffix)
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build insert team query: %w", err)
	}

	var row teamTableModel
	err = sqlx.GetContext(ctx, r.db, &row, query, args...)
	switch {
	case err == nil:
		return teamFromRow(row), true, nil
	case isNotFound(err):
		// the identity already exists; DO NOTHING returns no row
		stored, ok, getErr := r.GetByExternalID(ctx, item.LeagueCode, item.ExternalTeamID)
		if getErr != nil {
			return team.Team{}, false, getErr
		}
		if !ok {
			return team.Team{}, false, fmt.Errorf("insert team %s/%d: conflicting row not found", item.LeagueCode, item.ExternalTeamID)
		}
		return stored, false, nil
	default:
		return team.Team{}, false, fmt.Errorf("insert team %s/%d: %w", item.LeagueCode, item.ExternalTeamID, err)
	}
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:             row.ID,
		LeagueCode:     row.LeagueCode,
		ExternalTeamID: row.ExternalTeamID,
		Location:       row.Location,
		Name:           row.Name,
		DisplayName:    row.DisplayName,
		LogoURL:        row.LogoURL.String,
		HomeVenueID:    nullInt64ToPtr(row.HomeVenueID),
	}
}
