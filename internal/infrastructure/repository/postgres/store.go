package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/awaygame-sync/internal/domain/game"
	"github.com/riskibarqy/awaygame-sync/internal/domain/league"
	"github.com/riskibarqy/awaygame-sync/internal/domain/team"
	"github.com/riskibarqy/awaygame-sync/internal/domain/unitofwork"
	"github.com/riskibarqy/awaygame-sync/internal/domain/venue"
)

// Store opens one database transaction per unit of work.
type Store struct {
	db *sqlx.DB
}

var _ unitofwork.Factory = (*Store)(nil)

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Begin(ctx context.Context) (unitofwork.UnitOfWork, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}

	return &txUnitOfWork{
		tx:      tx,
		leagues: NewLeagueRepository(tx),
		teams:   NewTeamRepository(tx),
		venues:  NewVenueRepository(tx),
		games:   NewGameRepository(tx),
	}, nil
}

type txUnitOfWork struct {
	tx        *sqlx.Tx
	leagues   *LeagueRepository
	teams     *TeamRepository
	venues    *VenueRepository
	games     *GameRepository
	committed bool
}

func (u *txUnitOfWork) Leagues() league.Repository { return u.leagues }
func (u *txUnitOfWork) Teams() team.Repository     { return u.teams }
func (u *txUnitOfWork) Venues() venue.Repository   { return u.venues }
func (u *txUnitOfWork) Games() game.Repository     { return u.games }

func (u *txUnitOfWork) Commit() error {
	if err := u.tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	u.committed = true
	return nil
}

func (u *txUnitOfWork) Rollback() error {
	if u.committed {
		return nil
	}
	if err := u.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rollback tx: %w", err)
	}
	return nil
}
