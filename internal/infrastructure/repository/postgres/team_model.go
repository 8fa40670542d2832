package postgres

import (
	"database/sql"
	"time"
)

type teamTableModel struct {
	ID             int64          `db:"team_id"`
	LeagueCode     string         `db:"league_id"`
	ExternalTeamID int64          `db:"espn_team_id"`
	Location       string         `db:"home_location"`
	Name           string         `db:"team_name"`
	DisplayName    string         `db:"display_name"`
	LogoURL        sql.NullString `db:"logo_url"`
	HomeVenueID    sql.NullInt64  `db:"home_venue_id"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      sql.NullTime   `db:"updated_at"`
}

type teamInsertModel struct {
	LeagueCode     string  `db:"league_id"`
	ExternalTeamID int64   `db:"espn_team_id"`
	Location       string  `db:"home_location"`
	Name           string  `db:"team_name"`
	DisplayName    string  `db:"display_name"`
	LogoURL        *string `db:"logo_url"`
	HomeVenueID    *int64  `db:"home_venue_id"`
}
