package notifier

import (
	"sync"

	"github.com/mauv0809/scorekeeper/internal/records"
	"github.com/mauv0809/scorekeeper/internal/standings"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendMatchResultCalls []records.Match
	SendStandingsCalls   [][]standings.PlayerStanding

	// Spies
	SendMatchResultFunc         func(match records.Match, dryRun bool) error
	SendStandingsFunc           func(rows []standings.PlayerStanding, dryRun bool) error
	FormatStandingsResponseFunc func(rows []standings.PlayerStanding) (any, error)

	LastStandingsResponse any
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchResultCalls = nil
	m.SendStandingsCalls = nil
	m.LastStandingsResponse = nil
}

func (m *Mock) SendMatchResult(match records.Match, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchResultCalls = append(m.SendMatchResultCalls, match)
	if m.SendMatchResultFunc != nil {
		return m.SendMatchResultFunc(match, dryRun)
	}
	return nil
}

func (m *Mock) SendStandings(rows []standings.PlayerStanding, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendStandingsCalls = append(m.SendStandingsCalls, rows)
	if m.SendStandingsFunc != nil {
		return m.SendStandingsFunc(rows, dryRun)
	}
	return nil
}

func (m *Mock) FormatStandingsResponse(rows []standings.PlayerStanding) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatStandingsResponseFunc != nil {
		resp, err := m.FormatStandingsResponseFunc(rows)
		m.LastStandingsResponse = resp
		return resp, err
	}
	return "formatted_standings", nil
}

// MatchResultCalls returns how many result notifications were requested.
func (m *Mock) MatchResultCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SendMatchResultCalls)
}

// StandingsCalls returns how many standings posts were requested.
func (m *Mock) StandingsCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SendStandingsCalls)
}
