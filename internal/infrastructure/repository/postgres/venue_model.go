package postgres

import (
	"database/sql"
	"time"
)

type venueTableModel struct {
	ID          int64           `db:"venue_id"`
	Name        string          `db:"name"`
	DisplayName string          `db:"display_name"`
	City        sql.NullString  `db:"city"`
	Region      sql.NullString  `db:"state_region"`
	Country     sql.NullString  `db:"country"`
	Latitude    sql.NullFloat64 `db:"latitude"`
	Longitude   sql.NullFloat64 `db:"longitude"`
	Indoor      sql.NullBool    `db:"is_indoor"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   sql.NullTime    `db:"updated_at"`
}

type venueInsertModel struct {
	ID          int64    `db:"venue_id"`
	Name        string   `db:"name"`
	DisplayName string   `db:"display_name"`
	City        *string  `db:"city"`
	Region      *string  `db:"state_region"`
	Country     *string  `db:"country"`
	Latitude    *float64 `db:"latitude"`
	Longitude   *float64 `db:"longitude"`
	Indoor      *bool    `db:"is_indoor"`
}
