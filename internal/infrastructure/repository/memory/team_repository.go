package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/awaygame-sync/internal/domain/team"
)

type TeamRepository struct {
	uow *unitOfWork
}

func (r *TeamRepository) ListByLeague(_ context.Context, leagueCode string) ([]team.Team, error) {
	var out []team.Team
	err := r.uow.read(func(s *state) error {
		for _, item := range s.teams {
			if item.LeagueCode == leagueCode {
				out = append(out, copyTeam(item))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *TeamRepository) GetByExternalID(_ context.Context, leagueCode string, externalTeamID int64) (team.Team, bool, error) {
	var (
		out   team.Team
		found bool
	)
	err := r.uow.read(func(s *state) error {
		id, ok := s.teamIndex[team.Key{ExternalTeamID: externalTeamID, LeagueCode: leagueCode}]
		if !ok {
			return nil
		}
		out, found = copyTeam(s.teams[id]), true
		return nil
	})
	return out, found, err
}

func (r *TeamRepository) Create(_ context.Context, item team.Team) (team.Team, bool, error) {
	if err := item.Validate(); err != nil {
		return team.Team{}, false, err
	}

	var (
		out     team.Team
		created bool
	)
	err := r.uow.write(func(s *state) error {
		if id, ok := s.teamIndex[item.Key()]; ok {
			out = copyTeam(s.teams[id])
			return nil
		}
		if item.HomeVenueID != nil {
			if _, ok := s.venues[*item.HomeVenueID]; !ok {
				return fmt.Errorf("insert team %s/%d: home venue %d does not exist", item.LeagueCode, item.ExternalTeamID, *item.HomeVenueID)
			}
		}

		s.nextTeamID++
		stored := copyTeam(item)
		stored.ID = s.nextTeamID
		s.teams[stored.ID] = stored
		s.teamIndex[stored.Key()] = stored.ID
		out, created = copyTeam(stored), true
		return nil
	})
	return out, created, err
}

func copyTeam(item team.Team) team.Team {
	item.HomeVenueID = cloneInt64(item.HomeVenueID)
	return item
}
