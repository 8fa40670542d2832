package espn

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/awaygame-sync/internal/domain/feed"
)

// externalID accepts ids encoded either as JSON strings or numbers.
type externalID string

func (id *externalID) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if bytes.Equal(raw, []byte("null")) {
		*id = ""
		return nil
	}
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := sonic.Unmarshal(raw, &s); err != nil {
			return err
		}
		*id = externalID(strings.TrimSpace(s))
		return nil
	}
	*id = externalID(raw)
	return nil
}

func (id externalID) Int64() (int64, bool) {
	if id == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// TeamsPayload is the body of GET /{sport}/{league}/teams.
type TeamsPayload struct {
	Sports *[]sportNode `json:"sports"`
}

type sportNode struct {
	Leagues []leagueNode `json:"leagues"`
}

type leagueNode struct {
	Teams []teamEntry `json:"teams"`
}

type teamEntry struct {
	Team *teamNode `json:"team"`
}

type teamNode struct {
	ID          externalID `json:"id"`
	Location    string     `json:"location"`
	Name        string     `json:"name"`
	DisplayName string     `json:"displayName"`
	Logos       []logoNode `json:"logos"`
	Franchise   *franchise `json:"franchise"`
}

type logoNode struct {
	Href string `json:"href"`
}

type franchise struct {
	Venue *venueNode `json:"venue"`
}

type venueNode struct {
	ID       externalID  `json:"id"`
	FullName string      `json:"fullName"`
	Address  addressNode `json:"address"`
	Indoor   *bool       `json:"indoor"`
}

type addressNode struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// TeamDetailPayload is the body of GET /{sport}/{league}/teams/{id}.
type TeamDetailPayload struct {
	Team *teamNode `json:"team"`
}

// SchedulePayload is the body of GET /{sport}/{league}/scoreboard.
type SchedulePayload struct {
	Events *[]eventNode `json:"events"`
}

type eventNode struct {
	ID           externalID        `json:"id"`
	Date         string            `json:"date"`
	Competitions []competitionNode `json:"competitions"`
}

type competitionNode struct {
	Competitors []competitorNode `json:"competitors"`
	Venue       *venueNode       `json:"venue"`
}

type competitorNode struct {
	HomeAway string `json:"homeAway"`
	Team     *struct {
		ID externalID `json:"id"`
	} `json:"team"`
}

func ParseTeamsPayload(raw []byte) ([]feed.Team, error) {
	var payload TeamsPayload
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil, crerr.Wrap(err, "decode teams payload")
	}
	if payload.Sports == nil {
		return nil, shapeError("teams payload: missing sports")
	}

	out := make([]feed.Team, 0, 32)
	for si, sport := range *payload.Sports {
		for li, league := range sport.Leagues {
			for ti, entry := range league.Teams {
				path := "sports[" + strconv.Itoa(si) + "].leagues[" + strconv.Itoa(li) + "].teams[" + strconv.Itoa(ti) + "]"
				if entry.Team == nil {
					return nil, shapeError("teams payload: %s missing team", path)
				}
				id, ok := entry.Team.ID.Int64()
				if !ok {
					return nil, shapeError("teams payload: %s has invalid id %q", path, string(entry.Team.ID))
				}
				out = append(out, mapTeam(id, entry.Team))
			}
		}
	}
	return out, nil
}

func ParseTeamDetailPayload(raw []byte) (feed.TeamDetail, error) {
	var payload TeamDetailPayload
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return feed.TeamDetail{}, crerr.Wrap(err, "decode team detail payload")
	}
	if payload.Team == nil {
		return feed.TeamDetail{}, shapeError("team detail payload: missing team")
	}
	id, ok := payload.Team.ID.Int64()
	if !ok {
		return feed.TeamDetail{}, shapeError("team detail payload: invalid team id %q", string(payload.Team.ID))
	}

	detail := feed.TeamDetail{ExternalID: id}
	if payload.Team.Franchise != nil {
		venue, err := mapVenue(payload.Team.Franchise.Venue)
		if err != nil {
			return feed.TeamDetail{}, crerr.Wrap(err, "team detail payload: team.franchise.venue")
		}
		detail.HomeVenue = venue
	}
	return detail, nil
}

func ParseSchedulePayload(raw []byte) ([]feed.Game, error) {
	var payload SchedulePayload
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil, crerr.Wrap(err, "decode schedule payload")
	}
	if payload.Events == nil {
		return nil, shapeError("schedule payload: missing events")
	}

	out := make([]feed.Game, 0, len(*payload.Events))
	for i, event := range *payload.Events {
		id, ok := event.ID.Int64()
		if !ok {
			return nil, shapeError("schedule payload: events[%d] has invalid id %q", i, string(event.ID))
		}
		kickoff, ok := parseKickoff(event.Date)
		if !ok {
			return nil, shapeError("schedule payload: event %d has invalid date %q", id, event.Date)
		}
		if len(event.Competitions) == 0 {
			return nil, shapeError("schedule payload: event %d has no competitions", id)
		}

		competition := event.Competitions[0]
		game := feed.Game{ExternalID: id, KickoffAt: kickoff}
		for _, competitor := range competition.Competitors {
			if competitor.Team == nil {
				continue
			}
			teamID, ok := competitor.Team.ID.Int64()
			if !ok {
				return nil, shapeError("schedule payload: event %d has invalid competitor id %q", id, string(competitor.Team.ID))
			}
			switch strings.ToLower(competitor.HomeAway) {
			case "home":
				game.HomeTeamExternalID = teamID
			case "away":
				game.AwayTeamExternalID = teamID
			}
		}

		venue, err := mapVenue(competition.Venue)
		if err != nil {
			return nil, crerr.Wrapf(err, "schedule payload: event %d venue", id)
		}
		game.Venue = venue
		out = append(out, game)
	}
	return out, nil
}

func mapTeam(id int64, node *teamNode) feed.Team {
	item := feed.Team{
		ExternalID:  id,
		Location:    strings.TrimSpace(node.Location),
		Name:        strings.TrimSpace(node.Name),
		DisplayName: strings.TrimSpace(node.DisplayName),
	}
	if len(node.Logos) > 0 {
		item.LogoURL = strings.TrimSpace(node.Logos[0].Href)
	}
	return item
}

// mapVenue returns nil for an absent venue or one without an id.
func mapVenue(node *venueNode) (*feed.Venue, error) {
	if node == nil || node.ID == "" {
		return nil, nil
	}
	id, ok := node.ID.Int64()
	if !ok {
		return nil, shapeError("invalid venue id %q", string(node.ID))
	}
	return &feed.Venue{
		ExternalID: id,
		Name:       strings.TrimSpace(node.FullName),
		City:       strings.TrimSpace(node.Address.City),
		Region:     strings.TrimSpace(node.Address.State),
		Country:    strings.TrimSpace(node.Address.Country),
		Indoor:     node.Indoor,
	}, nil
}

func parseKickoff(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}

	layouts := []string{
		"2006-01-02T15:04Z07:00",
		time.RFC3339,
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}
