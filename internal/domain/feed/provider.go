package feed

import "context"

// Provider is the read-only sports data source.
type Provider interface {
	FetchTeams(ctx context.Context, sportTag, leagueTag string) ([]Team, error)
	FetchTeamDetail(ctx context.Context, sportTag, leagueTag string, externalTeamID int64) (TeamDetail, error)
	FetchSchedule(ctx context.Context, sportTag, leagueTag string, window DateRange) ([]Game, error)
}
