package venue

import "context"

// Repository describes venue persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, venueID int64) (Venue, bool, error)
	// Upsert inserts the venue or fills the stored row's missing fields.
	Upsert(ctx context.Context, item Venue) (Venue, error)
}
