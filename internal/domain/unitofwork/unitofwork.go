package unitofwork

import (
	"context"

	"github.com/riskibarqy/awaygame-sync/internal/domain/game"
	"github.com/riskibarqy/awaygame-sync/internal/domain/league"
	"github.com/riskibarqy/awaygame-sync/internal/domain/team"
	"github.com/riskibarqy/awaygame-sync/internal/domain/venue"
)

// UnitOfWork scopes repository writes to one transaction. Rollback after a
// successful Commit is a no-op, so callers may always defer it.
type UnitOfWork interface {
	Leagues() league.Repository
	Teams() team.Repository
	Venues() venue.Repository
	Games() game.Repository
	Commit() error
	Rollback() error
}

// Factory opens units of work against one store.
type Factory interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}
