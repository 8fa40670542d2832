package memory

import (
	"context"

	"github.com/riskibarqy/awaygame-sync/internal/domain/venue"
)

type VenueRepository struct {
	uow *unitOfWork
}

func (r *VenueRepository) GetByID(_ context.Context, venueID int64) (venue.Venue, bool, error) {
	var (
		out   venue.Venue
		found bool
	)
	err := r.uow.read(func(s *state) error {
		item, ok := s.venues[venueID]
		if ok {
			out, found = copyVenue(item), true
		}
		return nil
	})
	return out, found, err
}

func (r *VenueRepository) Upsert(_ context.Context, item venue.Venue) (venue.Venue, error) {
	if err := item.Validate(); err != nil {
		return venue.Venue{}, err
	}

	var out venue.Venue
	err := r.uow.write(func(s *state) error {
		stored, ok := s.venues[item.ID]
		if !ok {
			s.venues[item.ID] = copyVenue(item)
			out = copyVenue(item)
			return nil
		}

		merged, changed := venue.Merge(stored, item)
		if changed {
			s.venues[item.ID] = copyVenue(merged)
		}
		out = copyVenue(merged)
		return nil
	})
	return out, err
}

func copyVenue(item venue.Venue) venue.Venue {
	item.City = cloneString(item.City)
	item.Region = cloneString(item.Region)
	item.Country = cloneString(item.Country)
	item.Latitude = cloneFloat64(item.Latitude)
	item.Longitude = cloneFloat64(item.Longitude)
	item.Indoor = cloneBool(item.Indoor)
	return item
}
