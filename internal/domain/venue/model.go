package venue

import (
	"fmt"
	"strings"
)

const DefaultCountry = "USA"

// Venue is a stadium or arena, keyed by the feed's venue id.
type Venue struct {
	ID        int64
	Name      string
	City      *string
	Region    *string
	Country   *string
	Latitude  *float64
	Longitude *float64
	Indoor    *bool
}

// Coordinates is a resolved latitude/longitude pair.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

func (v Venue) Validate() error {
	if v.ID <= 0 {
		return fmt.Errorf("venue id must be greater than zero")
	}
	if v.Latitude != nil && (*v.Latitude < -90 || *v.Latitude > 90) {
		return fmt.Errorf("venue %d latitude out of range", v.ID)
	}
	if v.Longitude != nil && (*v.Longitude < -180 || *v.Longitude > 180) {
		return fmt.Errorf("venue %d longitude out of range", v.ID)
	}
	if (v.Latitude == nil) != (v.Longitude == nil) {
		return fmt.Errorf("venue %d coordinates must be set as a pair", v.ID)
	}

	return nil
}

// HasCoordinates reports whether both latitude and longitude are recorded.
func (v Venue) HasCoordinates() bool {
	return v.Latitude != nil && v.Longitude != nil
}

func (v Venue) WithCoordinates(c Coordinates) Venue {
	lat, lng := c.Latitude, c.Longitude
	v.Latitude = &lat
	v.Longitude = &lng
	return v
}

// Query returns the geocoding lookup for this venue.
func (v Venue) Query() Query {
	return Query{
		Name:   v.Name,
		City:   deref(v.City),
		Region: deref(v.Region),
	}
}

// Merge fills fields missing on stored from incoming. Values already present
// on stored are never replaced; coordinates only move as a complete pair.
func Merge(stored, incoming Venue) (Venue, bool) {
	out := stored
	changed := false

	if strings.TrimSpace(out.Name) == "" && strings.TrimSpace(incoming.Name) != "" {
		out.Name = incoming.Name
		changed = true
	}
	if fillString(&out.City, incoming.City) {
		changed = true
	}
	if fillString(&out.Region, incoming.Region) {
		changed = true
	}
	if fillString(&out.Country, incoming.Country) {
		changed = true
	}
	if out.Indoor == nil && incoming.Indoor != nil {
		indoor := *incoming.Indoor
		out.Indoor = &indoor
		changed = true
	}
	if !out.HasCoordinates() && incoming.HasCoordinates() {
		out = out.WithCoordinates(Coordinates{Latitude: *incoming.Latitude, Longitude: *incoming.Longitude})
		changed = true
	}

	return out, changed
}

func fillString(dst **string, src *string) bool {
	if *dst != nil && strings.TrimSpace(**dst) != "" {
		return false
	}
	if src == nil || strings.TrimSpace(*src) == "" {
		return false
	}
	value := *src
	*dst = &value
	return true
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
