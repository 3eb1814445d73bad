package metrics

import "sync"

var _ Metrics = (*Mock)(nil)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                 sync.Mutex
	matchesRecorded    int
	playersRegistered  int
	standingsDurations []float64
	requests           int
	slackNotifSent     int
	slackNotifFailed   int
	eventsPublished    int
	eventsFailed       int
	startupTime        float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		standingsDurations: make([]float64, 0),
	}
}

func (m *Mock) IncMatchesRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesRecorded++
}

func (m *Mock) IncPlayersRegistered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playersRegistered++
}

func (m *Mock) ObserveStandingsDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.standingsDurations = append(m.standingsDurations, seconds)
}

func (m *Mock) ObserveRequest(method, route string, status int, seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) IncEventsPublished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsPublished++
}

func (m *Mock) IncEventsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// MatchesRecorded returns the number of times IncMatchesRecorded was called.
func (m *Mock) MatchesRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesRecorded
}

// PlayersRegistered returns the number of times IncPlayersRegistered was called.
func (m *Mock) PlayersRegistered() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playersRegistered
}

// StandingsComputations returns the number of standings durations observed.
func (m *Mock) StandingsComputations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.standingsDurations)
}

// Requests returns the number of requests observed.
func (m *Mock) Requests() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// EventsPublished returns the number of times IncEventsPublished was called.
func (m *Mock) EventsPublished() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsPublished
}

// EventsFailed returns the number of times IncEventsFailed was called.
func (m *Mock) EventsFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsFailed
}
