package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	MatchesRecorded    prometheus.Counter
	PlayersRegistered  prometheus.Counter
	StandingsDuration  prometheus.Histogram
	RequestDuration    *prometheus.HistogramVec
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	EventsPublished    prometheus.Counter
	EventsFailed       prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
