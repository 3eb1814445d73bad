package standings

import (
	"context"

	"github.com/mauv0809/scorekeeper/internal/records"
)

// Source is the part of the record store the engine reads from.
type Source interface {
	Snapshot(ctx context.Context) (*records.Snapshot, error)
}

// Engine computes the leaderboard from the record store.
type Engine struct {
	source Source
}

// PlayerStanding is one leaderboard row: a registered player plus counters
// folded from every match that names them.
type PlayerStanding struct {
	ID            int64
	Name          string
	Photo         []byte
	MatchesPlayed int
	MatchesWon    int
	MatchesLost   int
	TotalDuration float64
}

type tally struct {
	played   int
	won      int
	lost     int
	duration float64
}
