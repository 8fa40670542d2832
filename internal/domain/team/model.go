package team

import "fmt"

// Team is a club inside a league, keyed by its feed id within that league.
type Team struct {
	ID             int64
	LeagueCode     string
	ExternalTeamID int64
	Location       string
	Name           string
	DisplayName    string
	LogoURL        string
	HomeVenueID    *int64
}

// Key is the reconciliation identity of a team.
type Key struct {
	ExternalTeamID int64
	LeagueCode     string
}

func (t Team) Key() Key {
	return Key{ExternalTeamID: t.ExternalTeamID, LeagueCode: t.LeagueCode}
}

func (t Team) Validate() error {
	if t.LeagueCode == "" {
		return fmt.Errorf("team league code is required")
	}
	if t.ExternalTeamID <= 0 {
		return fmt.Errorf("team external id must be greater than zero")
	}
	if t.DisplayName == "" && t.Name == "" {
		return fmt.Errorf("team %d name is required", t.ExternalTeamID)
	}

	return nil
}
