package usecase

import (
	"strings"

	"github.com/riskibarqy/awaygame-sync/internal/domain/feed"
	"github.com/riskibarqy/awaygame-sync/internal/domain/team"
	"github.com/riskibarqy/awaygame-sync/internal/domain/venue"
)

// teamIndex maps a league's reconciliation keys to stored teams.
type teamIndex map[team.Key]team.Team

func indexTeams(teams []team.Team) teamIndex {
	out := make(teamIndex, len(teams))
	for _, item := range teams {
		out[item.Key()] = item
	}
	return out
}

func (idx teamIndex) lookup(leagueCode string, externalTeamID int64) (team.Team, bool) {
	if externalTeamID <= 0 {
		return team.Team{}, false
	}
	item, ok := idx[teamKey(leagueCode, externalTeamID)]
	return item, ok
}

func teamKey(leagueCode string, externalTeamID int64) team.Key {
	return team.Key{ExternalTeamID: externalTeamID, LeagueCode: leagueCode}
}

func teamFromFeed(leagueCode string, item feed.Team, homeVenueID *int64) team.Team {
	return team.Team{
		LeagueCode:     leagueCode,
		ExternalTeamID: item.ExternalID,
		Location:       item.Location,
		Name:           item.Name,
		DisplayName:    item.DisplayName,
		LogoURL:        item.LogoURL,
		HomeVenueID:    homeVenueID,
	}
}

// venueFromFeed maps a descriptor to a venue row. The venue id is the feed id
// and a missing country defaults to venue.DefaultCountry.
func venueFromFeed(item feed.Venue) venue.Venue {
	country := strings.TrimSpace(item.Country)
	if country == "" {
		country = venue.DefaultCountry
	}

	return venue.Venue{
		ID:      item.ExternalID,
		Name:    strings.TrimSpace(item.Name),
		City:    optionalTrimmed(item.City),
		Region:  optionalTrimmed(item.Region),
		Country: &country,
		Indoor:  item.Indoor,
	}
}

func optionalTrimmed(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
