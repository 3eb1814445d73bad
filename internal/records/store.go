package records

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
)

// New creates a new RecordStore on top of an initialized database.
func New(db *sql.DB) RecordStore {
	return &store{
		db: sqlx.NewDb(db, "sqlite3"),
	}
}

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", ErrValidation, field)
	}
	return nil
}

// InsertMatch appends a match and returns its id. Winner and loser are not
// checked against registered players and may be equal.
func (s *store) InsertMatch(ctx context.Context, winner, loser, date, duration string) (int64, error) {
	for _, f := range []struct{ name, value string }{
		{"winner", winner},
		{"loser", loser},
		{"date", date},
		{"duration", duration},
	} {
		if err := required(f.name, f.value); err != nil {
			return 0, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO matches (winner_name, loser_name, date, duration) VALUES (?, ?, ?, ?)",
		winner, loser, date, duration,
	)
	if err != nil {
		return 0, storageError("insert match", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageError("read match id", err)
	}
	log.Debug("Inserted match", "matchID", id, "winner", winner, "loser", loser)
	return id, nil
}

// ListMatches returns every match in the order it was recorded.
func (s *store) ListMatches(ctx context.Context) ([]Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := []Match{}
	if err := s.db.SelectContext(ctx, &matches, selectMatches); err != nil {
		return nil, storageError("list matches", err)
	}
	return matches, nil
}

// InsertPlayer stores a new player and returns the row as persisted, read back
// inside the same transaction as the insert.
func (s *store) InsertPlayer(ctx context.Context, name string, photo []byte, date string) (*Player, error) {
	if err := required("name", name); err != nil {
		return nil, err
	}
	if err := required("date", date); err != nil {
		return nil, err
	}
	if len(photo) == 0 {
		return nil, fmt.Errorf("%w: photo is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, storageError("begin transaction", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "INSERT INTO players (name, photo, created_at) VALUES (?, ?, ?)", name, photo, date)
	if err != nil {
		return nil, storageError("insert player", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, storageError("read player id", err)
	}

	var player Player
	if err := tx.GetContext(ctx, &player, "SELECT id, name, photo, created_at FROM players WHERE id = ?", id); err != nil {
		return nil, storageError("read back player", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, storageError("commit player", err)
	}

	log.Info("Added new player to the store", "playerID", player.ID, "name", player.Name, "photo_bytes", len(player.Photo))
	return &player, nil
}

// ListPlayers returns every player in registration order, photos included.
func (s *store) ListPlayers(ctx context.Context) ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := []Player{}
	if err := s.db.SelectContext(ctx, &players, selectPlayers); err != nil {
		return nil, storageError("list players", err)
	}
	return players, nil
}

// Snapshot reads both tables inside one transaction so that a concurrent
// insert can never show up in one list and not the other.
func (s *store) Snapshot(ctx context.Context) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, storageError("begin snapshot", err)
	}
	defer tx.Rollback()

	snap := &Snapshot{Players: []Player{}, Matches: []Match{}}
	if err := tx.SelectContext(ctx, &snap.Players, selectPlayers); err != nil {
		return nil, storageError("snapshot players", err)
	}
	if err := tx.SelectContext(ctx, &snap.Matches, selectMatches); err != nil {
		return nil, storageError("snapshot matches", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, storageError("finish snapshot", err)
	}
	return snap, nil
}

const (
	selectPlayers = "SELECT id, name, photo, created_at FROM players ORDER BY id"
	selectMatches = "SELECT id, winner_name, loser_name, date, duration FROM matches ORDER BY id"
)
