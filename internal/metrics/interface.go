package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncMatchesRecorded()
	IncPlayersRegistered()
	ObserveStandingsDuration(seconds float64)
	ObserveRequest(method, route string, status int, seconds float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	IncEventsPublished()
	IncEventsFailed()
	SetStartupTime(duration float64)
}
