package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/awaygame-sync/internal/domain/feed"
	"github.com/riskibarqy/awaygame-sync/internal/domain/venue"
	"github.com/riskibarqy/awaygame-sync/internal/platform/logging"
)

// venueSync stores venue descriptors with fill-missing semantics and
// geocodes venues that have no coordinates yet.
type venueSync struct {
	geocoder venue.Geocoder
	logger   *logging.Logger
}

// ensure returns the stored venue for item, writing only when the row is new
// or gains a missing field. written reports whether a write happened.
func (s venueSync) ensure(ctx context.Context, repo venue.Repository, item feed.Venue, geocode bool) (stored venue.Venue, written bool, err error) {
	if item.ExternalID <= 0 {
		return venue.Venue{}, false, fmt.Errorf("%w: venue id must be greater than zero", ErrInvalidInput)
	}

	current, exists, err := repo.GetByID(ctx, item.ExternalID)
	if err != nil {
		return venue.Venue{}, false, fmt.Errorf("get venue %d: %w", item.ExternalID, err)
	}

	incoming := venueFromFeed(item)
	if geocode && s.geocoder != nil && (!exists || !current.HasCoordinates()) {
		if coords, ok := s.geocoder.Resolve(ctx, incoming.Query()); ok {
			incoming = incoming.WithCoordinates(coords)
		}
	}

	if exists {
		if _, changed := venue.Merge(current, incoming); !changed {
			return current, false, nil
		}
	}

	stored, err = repo.Upsert(ctx, incoming)
	if err != nil {
		return venue.Venue{}, false, fmt.Errorf("upsert venue %d: %w", item.ExternalID, err)
	}

	s.logger.InfoContext(ctx, "venue stored",
		"venue_id", stored.ID,
		"name", stored.Name,
		"new", !exists,
		"has_coordinates", stored.HasCoordinates(),
	)
	return stored, true, nil
}
