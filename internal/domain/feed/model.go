package feed

import (
	"fmt"
	"time"
)

const dateLayout = "20060102"

// Team is a team summary as listed by the feed for one league.
type Team struct {
	ExternalID  int64
	Location    string
	Name        string
	DisplayName string
	LogoURL     string
}

// Venue is a venue descriptor embedded in team detail or schedule payloads.
type Venue struct {
	ExternalID int64
	Name       string
	City       string
	Region     string
	Country    string
	Indoor     *bool
}

// TeamDetail carries what the team summary omits, notably the home venue.
type TeamDetail struct {
	ExternalID int64
	HomeVenue  *Venue
}

// Game is one scheduled event. A zero team id means the feed omitted that side.
type Game struct {
	ExternalID         int64
	KickoffAt          time.Time
	HomeTeamExternalID int64
	AwayTeamExternalID int64
	Venue              *Venue
}

// DateRange is an inclusive window of calendar days.
type DateRange struct {
	From time.Time
	To   time.Time
}

// NewForwardWindow covers the day of now through horizonDays later.
func NewForwardWindow(now time.Time, horizonDays int) DateRange {
	if horizonDays < 0 {
		horizonDays = 0
	}
	return DateRange{
		From: now,
		To:   now.AddDate(0, 0, horizonDays),
	}
}

// String renders the range as YYYYMMDD-YYYYMMDD.
func (r DateRange) String() string {
	return fmt.Sprintf("%s-%s", r.From.Format(dateLayout), r.To.Format(dateLayout))
}
