package game

import (
	"fmt"
	"time"
)

// Game is a scheduled event between two teams, keyed by the feed's event id.
type Game struct {
	ID         int64
	LeagueCode string
	HomeTeamID int64
	AwayTeamID int64
	VenueID    *int64
	DateTime   time.Time
}

type UpsertResult string

const (
	UpsertCreated   UpsertResult = "created"
	UpsertUpdated   UpsertResult = "updated"
	UpsertUnchanged UpsertResult = "unchanged"
)

func (g Game) Validate() error {
	if g.ID <= 0 {
		return fmt.Errorf("game id must be greater than zero")
	}
	if g.LeagueCode == "" {
		return fmt.Errorf("game %d league code is required", g.ID)
	}
	if g.HomeTeamID <= 0 || g.AwayTeamID <= 0 {
		return fmt.Errorf("game %d requires home and away teams", g.ID)
	}
	if g.DateTime.IsZero() {
		return fmt.Errorf("game %d date time is required", g.ID)
	}

	return nil
}

// Merge applies the mutable fields of incoming onto stored. Only the kickoff
// time and venue are revised; an absent incoming venue keeps the stored one.
func Merge(stored, incoming Game) (Game, bool) {
	out := stored
	changed := false

	if !incoming.DateTime.IsZero() && !out.DateTime.Equal(incoming.DateTime) {
		out.DateTime = incoming.DateTime.UTC()
		changed = true
	}
	if incoming.VenueID != nil && (out.VenueID == nil || *out.VenueID != *incoming.VenueID) {
		venueID := *incoming.VenueID
		out.VenueID = &venueID
		changed = true
	}

	return out, changed
}
