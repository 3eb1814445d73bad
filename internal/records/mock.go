package records

import (
	"context"
	"sync"
)

var _ RecordStore = (*Mock)(nil)

// Mock is a mock implementation of RecordStore for testing.
// It is safe for concurrent use. Unset funcs return zero values.
type Mock struct {
	mu sync.Mutex

	InsertMatchFunc  func(ctx context.Context, winner, loser, date, duration string) (int64, error)
	ListMatchesFunc  func(ctx context.Context) ([]Match, error)
	InsertPlayerFunc func(ctx context.Context, name string, photo []byte, date string) (*Player, error)
	ListPlayersFunc  func(ctx context.Context) ([]Player, error)
	SnapshotFunc     func(ctx context.Context) (*Snapshot, error)

	InsertMatchCalls  int
	InsertPlayerCalls int
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) InsertMatch(ctx context.Context, winner, loser, date, duration string) (int64, error) {
	m.mu.Lock()
	m.InsertMatchCalls++
	m.mu.Unlock()
	if m.InsertMatchFunc != nil {
		return m.InsertMatchFunc(ctx, winner, loser, date, duration)
	}
	return 0, nil
}

func (m *Mock) ListMatches(ctx context.Context) ([]Match, error) {
	if m.ListMatchesFunc != nil {
		return m.ListMatchesFunc(ctx)
	}
	return []Match{}, nil
}

func (m *Mock) InsertPlayer(ctx context.Context, name string, photo []byte, date string) (*Player, error) {
	m.mu.Lock()
	m.InsertPlayerCalls++
	m.mu.Unlock()
	if m.InsertPlayerFunc != nil {
		return m.InsertPlayerFunc(ctx, name, photo, date)
	}
	return &Player{Name: name, Photo: photo, CreatedAt: date}, nil
}

func (m *Mock) ListPlayers(ctx context.Context) ([]Player, error) {
	if m.ListPlayersFunc != nil {
		return m.ListPlayersFunc(ctx)
	}
	return []Player{}, nil
}

func (m *Mock) Snapshot(ctx context.Context) (*Snapshot, error) {
	if m.SnapshotFunc != nil {
		return m.SnapshotFunc(ctx)
	}
	return &Snapshot{Players: []Player{}, Matches: []Match{}}, nil
}
