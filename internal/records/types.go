package records

import (
	"errors"
	"sync"

	"github.com/jmoiron/sqlx"
)

var (
	// ErrValidation marks input that was rejected before anything was written.
	ErrValidation = errors.New("validation failed")
	// ErrStorage marks a fault in the underlying database.
	ErrStorage = errors.New("storage failure")
)

// store handles all database operations for players and matches.
type store struct {
	db *sqlx.DB
	mu sync.RWMutex
}

// Player is a registered player profile. Matches refer to players by Name,
// not by ID, so a player only ever sees matches recorded under its exact name.
type Player struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	Photo     []byte `db:"photo"`
	CreatedAt string `db:"created_at"`
}

// Match is a single recorded result. WinnerName and LoserName are free text
// and may name players that were never registered.
type Match struct {
	ID         int64  `db:"id" json:"id"`
	WinnerName string `db:"winner_name" json:"winner_name"`
	LoserName  string `db:"loser_name" json:"loser_name"`
	Date       string `db:"date" json:"date"`
	Duration   string `db:"duration" json:"duration"`
}

// Snapshot is a consistent view of both tables taken in a single read.
type Snapshot struct {
	Players []Player
	Matches []Match
}
