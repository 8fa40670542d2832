package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/awaygame-sync/internal/domain/game"
	"github.com/riskibarqy/awaygame-sync/internal/domain/league"
	"github.com/riskibarqy/awaygame-sync/internal/domain/team"
	"github.com/riskibarqy/awaygame-sync/internal/domain/unitofwork"
	"github.com/riskibarqy/awaygame-sync/internal/domain/venue"
)

type state struct {
	leagues    map[string]league.League
	teams      map[int64]team.Team
	teamIndex  map[team.Key]int64
	venues     map[int64]venue.Venue
	games      map[int64]game.Game
	nextTeamID int64
}

func newState() *state {
	return &state{
		leagues:   make(map[string]league.League),
		teams:     make(map[int64]team.Team),
		teamIndex: make(map[team.Key]int64),
		venues:    make(map[int64]venue.Venue),
		games:     make(map[int64]game.Game),
	}
}

func (s *state) clone() *state {
	out := &state{
		leagues:    make(map[string]league.League, len(s.leagues)),
		teams:      make(map[int64]team.Team, len(s.teams)),
		teamIndex:  make(map[team.Key]int64, len(s.teamIndex)),
		venues:     make(map[int64]venue.Venue, len(s.venues)),
		games:      make(map[int64]game.Game, len(s.games)),
		nextTeamID: s.nextTeamID,
	}
	for k, v := range s.leagues {
		out.leagues[k] = v
	}
	for k, v := range s.teams {
		out.teams[k] = v
	}
	for k, v := range s.teamIndex {
		out.teamIndex[k] = v
	}
	for k, v := range s.venues {
		out.venues[k] = v
	}
	for k, v := range s.games {
		out.games[k] = v
	}
	return out
}

// Store is an in-process store for dry runs and tests. Each unit of work
// edits a private copy that replaces the committed state on Commit.
type Store struct {
	mu        sync.Mutex
	committed *state
}

var _ unitofwork.Factory = (*Store)(nil)

func NewStore() *Store {
	return &Store{committed: newState()}
}

func (s *Store) Begin(ctx context.Context) (unitofwork.UnitOfWork, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("begin unit of work: %w", err)
	}

	s.mu.Lock()
	working := s.committed.clone()
	s.mu.Unlock()

	u := &unitOfWork{store: s, state: working}
	u.leagues = &LeagueRepository{uow: u}
	u.teams = &TeamRepository{uow: u}
	u.venues = &VenueRepository{uow: u}
	u.games = &GameRepository{uow: u}
	return u, nil
}

type unitOfWork struct {
	mu      sync.RWMutex
	store   *Store
	state   *state
	done    bool
	leagues *LeagueRepository
	teams   *TeamRepository
	venues  *VenueRepository
	games   *GameRepository
}

func (u *unitOfWork) Leagues() league.Repository { return u.leagues }
func (u *unitOfWork) Teams() team.Repository     { return u.teams }
func (u *unitOfWork) Venues() venue.Repository   { return u.venues }
func (u *unitOfWork) Games() game.Repository     { return u.games }

func (u *unitOfWork) Commit() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.done {
		return fmt.Errorf("commit: unit of work already finished")
	}
	u.store.mu.Lock()
	u.store.committed = u.state
	u.store.mu.Unlock()
	u.done = true
	return nil
}

func (u *unitOfWork) Rollback() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.done = true
	return nil
}

func (u *unitOfWork) read(fn func(s *state) error) error {
	u.mu.RLock()
	defer u.mu.RUnlock()

	if u.done {
		return fmt.Errorf("unit of work already finished")
	}
	return fn(u.state)
}

func (u *unitOfWork) write(fn func(s *state) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.done {
		return fmt.Errorf("unit of work already finished")
	}
	return fn(u.state)
}

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneFloat64(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneBool(v *bool) *bool {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
