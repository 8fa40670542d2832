package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/awaygame-sync/internal/domain/game"
)

type GameRepository struct {
	uow *unitOfWork
}

func (r *GameRepository) GetByID(_ context.Context, gameID int64) (game.Game, bool, error) {
	var (
		out   game.Game
		found bool
	)
	err := r.uow.read(func(s *state) error {
		item, ok := s.games[gameID]
		if ok {
			out, found = copyGame(item), true
		}
		return nil
	})
	return out, found, err
}

func (r *GameRepository) ListByLeague(_ context.Context, leagueCode string) ([]game.Game, error) {
	var out []game.Game
	err := r.uow.read(func(s *state) error {
		for _, item := range s.games {
			if item.LeagueCode == leagueCode {
				out = append(out, copyGame(item))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].DateTime.Equal(out[j].DateTime) {
			return out[i].DateTime.Before(out[j].DateTime)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *GameRepository) Upsert(_ context.Context, item game.Game) (game.UpsertResult, error) {
	if err := item.Validate(); err != nil {
		return "", err
	}
	item.DateTime = item.DateTime.UTC()

	var result game.UpsertResult
	err := r.uow.write(func(s *state) error {
		for _, teamID := range []int64{item.HomeTeamID, item.AwayTeamID} {
			if _, ok := s.teams[teamID]; !ok {
				return fmt.Errorf("upsert game %d: team %d does not exist", item.ID, teamID)
			}
		}
		if item.VenueID != nil {
			if _, ok := s.venues[*item.VenueID]; !ok {
				return fmt.Errorf("upsert game %d: venue %d does not exist", item.ID, *item.VenueID)
			}
		}

		stored, ok := s.games[item.ID]
		if !ok {
			s.games[item.ID] = copyGame(item)
			result = game.UpsertCreated
			return nil
		}

		merged, changed := game.Merge(stored, item)
		if !changed {
			result = game.UpsertUnchanged
			return nil
		}
		s.games[item.ID] = copyGame(merged)
		result = game.UpsertUpdated
		return nil
	})
	return result, err
}

func copyGame(item game.Game) game.Game {
	item.VenueID = cloneInt64(item.VenueID)
	return item
}
