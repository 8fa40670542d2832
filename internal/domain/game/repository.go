package game

import "context"

// Repository describes game persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, gameID int64) (Game, bool, error)
	ListByLeague(ctx context.Context, leagueCode string) ([]Game, error)
	Upsert(ctx context.Context, item Game) (UpsertResult, error)
}
