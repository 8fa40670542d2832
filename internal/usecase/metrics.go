package usecase

import "time"

const (
	EntityTeam  = "team"
	EntityVenue = "venue"
	EntityGame  = "game"

	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionUnchanged = "unchanged"
	ActionExisting  = "existing"
	ActionSkipped   = "skipped"
)

// SyncRecorder receives run, league and entity counts.
type SyncRecorder interface {
	ObserveRun(outcome string, duration time.Duration)
	ObserveLeague(leagueCode, outcome string, duration time.Duration)
	AddEntities(leagueCode, entity, action string, count int)
}

type nopSyncRecorder struct{}

func (nopSyncRecorder) ObserveRun(string, time.Duration)            {}
func (nopSyncRecorder) ObserveLeague(string, string, time.Duration) {}
func (nopSyncRecorder) AddEntities(string, string, string, int)     {}
