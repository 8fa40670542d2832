package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	ListByLeague(ctx context.Context, leagueCode string) ([]Team, error)
	GetByExternalID(ctx context.Context, leagueCode string, externalTeamID int64) (Team, bool, error)
	// Create inserts the team unless its (external id, league) pair already
	// exists; created is false and the stored row is returned in that case.
	Create(ctx context.Context, item Team) (stored Team, created bool, err error)
}
