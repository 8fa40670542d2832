package venue

import (
	"context"
	"strings"
)

// Query is the free-text description used to locate a venue.
type Query struct {
	Name   string
	City   string
	Region string
}

// Key normalizes the query for memoization.
func (q Query) Key() string {
	parts := []string{
		strings.ToLower(strings.TrimSpace(q.Name)),
		strings.ToLower(strings.TrimSpace(q.City)),
		strings.ToLower(strings.TrimSpace(q.Region)),
	}
	return strings.Join(parts, "|")
}

// Geocoder resolves a venue query to coordinates. Lookups that fail or find
// nothing report false; they never return an error to the caller.
type Geocoder interface {
	Resolve(ctx context.Context, query Query) (Coordinates, bool)
}
