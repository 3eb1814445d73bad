package records

import "context"

// RecordStore defines the interface for interacting with players and matches.
type RecordStore interface {
	InsertMatch(ctx context.Context, winner, loser, date, duration string) (int64, error)
	ListMatches(ctx context.Context) ([]Match, error)
	InsertPlayer(ctx context.Context, name string, photo []byte, date string) (*Player, error)
	ListPlayers(ctx context.Context) ([]Player, error)
	Snapshot(ctx context.Context) (*Snapshot, error)
}
