package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/awaygame-sync/internal/domain/league"
	qb "github.com/riskibarqy/awaygame-sync/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db sqlx.ExtContext
}

func NewLeagueRepository(db sqlx.ExtContext) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) Upsert(ctx context.Context, item league.League) error {
	insertModel := leagueInsertModel{
		Code:      league.NormalizeCode(item.Code),
		SportTag:  item.SportTag,
		LeagueTag: item.LeagueTag,
		Name:      item.Name,
		Active:    item.Active,
	}

	suffix := qb.OnConflict("league_code").
		SetExcluded("espn_sport", "espn_league", "league_name", "is_active").
		Set("updated_at", "NOW()").
		String()
	query, args, err := qb.InsertModel("leagues", insertModel, suffix)
	if err != nil {
		return fmt.Errorf("build upsert league query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert league %s: %w", insertModel.Code, err)
	}
	return nil
}

func (r *LeagueRepository) GetByCode(ctx context.Context, code string) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(qb.Eq("league_code", league.NormalizeCode(code))).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league by code query: %w", err)
	}

	var row leagueTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league by code: %w", err)
	}

	return leagueFromRow(row), true, nil
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	return r.list(ctx)
}

func (r *LeagueRepository) ListActive(ctx context.Context) ([]league.League, error) {
	return r.list(ctx, qb.Eq("is_active", true))
}

func (r *LeagueRepository) list(ctx context.Context, conditions ...qb.Condition) ([]league.League, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(conditions...).
		OrderBy("league_code").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leagues query: %w", err)
	}

	var rows []leagueTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leagues: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, leagueFromRow(row))
	}
	return out, nil
}

func leagueFromRow(row leagueTableModel) league.League {
	return league.League{
		Code:      row.Code,
		SportTag:  row.SportTag,
		LeagueTag: row.LeagueTag,
		Name:      row.Name,
		Active:    row.Active,
	}
}
