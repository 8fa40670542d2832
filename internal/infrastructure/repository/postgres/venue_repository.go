package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/awaygame-sync/internal/domain/venue"
	qb "github.com/riskibarqy/awaygame-sync/internal/platform/querybuilder"
)

// venueFillMissing mirrors venue.Merge: stored values win, blanks are filled,
// and coordinates are only written as a complete pair onto an empty pair.
const venueFillMissing = `ON CONFLICT (venue_id)
DO UPDATE SET
    name = COALESCE(NULLIF(BTRIM(venues.name), ''), EXCLUDED.name),
    display_name = COALESCE(NULLIF(BTRIM(venues.display_name), ''), EXCLUDED.display_name),
    city = COALESCE(NULLIF(BTRIM(venues.city), ''), NULLIF(BTRIM(EXCLUDED.city), ''), venues.city),
    state_region = COALESCE(NULLIF(BTRIM(venues.state_region), ''), NULLIF(BTRIM(EXCLUDED.state_region), ''), venues.state_region),
    country = COALESCE(NULLIF(BTRIM(venues.country), ''), NULLIF(BTRIM(EXCLUDED.country), ''), venues.country),
    is_indoor = COALESCE(venues.is_indoor, EXCLUDED.is_indoor),
    latitude = CASE
        WHEN (venues.latitude IS NULL OR venues.longitude IS NULL)
            AND EXCLUDED.latitude IS NOT NULL AND EXCLUDED.longitude IS NOT NULL
        THEN EXCLUDED.latitude
        ELSE venues.latitude
    END,
    longitude = CASE
        WHEN (venues.latitude IS NULL OR venues.longitude IS NULL)
            AND EXCLUDED.latitude IS NOT NULL AND EXCLUDED.longitude IS NOT NULL
        THEN EXCLUDED.longitude
        ELSE venues.longitude
    END,
    updated_at = NOW()
RETURNING *`

type VenueRepository struct {
	db sqlx.ExtContext
}

func NewVenueRepository(db sqlx.ExtContext) *VenueRepository {
	return &VenueRepository{db: db}
}

func (r *VenueRepository) GetByID(ctx context.Context, venueID int64) (venue.Venue, bool, error) {
	query, args, err := qb.Select("*").From("venues").
		Where(qb.Eq("venue_id", venueID)).
		ToSQL()
	if err != nil {
		return venue.Venue{}, false, fmt.Errorf("build get venue by id query: %w", err)
	}

	var row venueTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return venue.Venue{}, false, nil
		}
		return venue.Venue{}, false, fmt.Errorf("get venue by id: %w", err)
	}

	return venueFromRow(row), true, nil
}

func (r *VenueRepository) Upsert(ctx context.Context, item venue.Venue) (venue.Venue, error) {
	if err := item.Validate(); err != nil {
		return venue.Venue{}, fmt.Errorf("upsert venue: %w", err)
	}

	insertModel := venueInsertModel{
		ID:          item.ID,
		Name:        item.Name,
		DisplayName: item.Name,
		City:        item.City,
		Region:      item.Region,
		Country:     item.Country,
		Latitude:    item.Latitude,
		Longitude:   item.Longitude,
		Indoor:      item.Indoor,
	}

	query, args, err := qb.InsertModel("venues", insertModel, venueFillMissing)
	if err != nil {
		return venue.Venue{}, fmt.Errorf("build upsert venue query: %w", err)
	}

	var row venueTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		return venue.Venue{}, fmt.Errorf("upsert venue %d: %w", item.ID, err)
	}
	return venueFromRow(row), nil
}

func venueFromRow(row venueTableModel) venue.Venue {
	return venue.Venue{
		ID:        row.ID,
		Name:      row.Name,
		City:      nullStringToPtr(row.City),
		Region:    nullStringToPtr(row.Region),
		Country:   nullStringToPtr(row.Country),
		Latitude:  nullFloat64ToPtr(row.Latitude),
		Longitude: nullFloat64ToPtr(row.Longitude),
		Indoor:    nullBoolToPtr(row.Indoor),
	}
}
