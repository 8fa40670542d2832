package postgres

import (
	"database/sql"
	"time"
)

type leagueTableModel struct {
	Code      string       `db:"league_code"`
	SportTag  string       `db:"espn_sport"`
	LeagueTag string       `db:"espn_league"`
	Name      string       `db:"league_name"`
	Active    bool         `db:"is_active"`
	CreatedAt time.Time    `db:"created_at"`
	UpdatedAt sql.NullTime `db:"updated_at"`
}

type leagueInsertModel struct {
	Code      string `db:"league_code"`
	SportTag  string `db:"espn_sport"`
	LeagueTag string `db:"espn_league"`
	Name      string `db:"league_name"`
	Active    bool   `db:"is_active"`
}
