package postgres

import (
	"database/sql"
	"time"
)

type gameTableModel struct {
	ID         int64         `db:"game_id"`
	LeagueCode string        `db:"league_id"`
	HomeTeamID int64         `db:"home_team_id"`
	AwayTeamID int64         `db:"away_team_id"`
	VenueID    sql.NullInt64 `db:"venue_id"`
	DateTime   time.Time     `db:"date_time"`
	CreatedAt  time.Time     `db:"created_at"`
	UpdatedAt  sql.NullTime  `db:"updated_at"`
}

type gameInsertModel struct {
	ID         int64     `db:"game_id"`
	LeagueCode string    `db:"league_id"`
	HomeTeamID int64     `db:"home_team_id"`
	AwayTeamID int64     `db:"away_team_id"`
	VenueID    *int64    `db:"venue_id"`
	DateTime   time.Time `db:"date_time"`
}
