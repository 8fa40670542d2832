package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/awaygame-sync/internal/domain/league"
)

type LeagueRepository struct {
	uow *unitOfWork
}

func (r *LeagueRepository) Upsert(_ context.Context, item league.League) error {
	item.Code = league.NormalizeCode(item.Code)
	if err := item.Validate(); err != nil {
		return err
	}

	return r.uow.write(func(s *state) error {
		s.leagues[item.Code] = item
		return nil
	})
}

func (r *LeagueRepository) GetByCode(_ context.Context, code string) (league.League, bool, error) {
	var (
		out   league.League
		found bool
	)
	err := r.uow.read(func(s *state) error {
		out, found = s.leagues[league.NormalizeCode(code)]
		return nil
	})
	return out, found, err
}

func (r *LeagueRepository) List(_ context.Context) ([]league.League, error) {
	return r.list(func(league.League) bool { return true })
}

func (r *LeagueRepository) ListActive(_ context.Context) ([]league.League, error) {
	return r.list(func(l league.League) bool { return l.Active })
}

func (r *LeagueRepository) list(keep func(league.League) bool) ([]league.League, error) {
	var out []league.League
	err := r.uow.read(func(s *state) error {
		out = make([]league.League, 0, len(s.leagues))
		for _, item := range s.leagues {
			if keep(item) {
				out = append(out, item)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}
