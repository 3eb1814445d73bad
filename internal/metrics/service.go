package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		MatchesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scorekeeper_matches_recorded_total",
			Help: "The total number of matches recorded.",
		}),
		PlayersRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scorekeeper_players_registered_total",
			Help: "The total number of players registered.",
		}),
		StandingsDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scorekeeper_standings_compute_duration_seconds",
			Help:    "The duration of computing the standings.",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scorekeeper_http_request_duration_seconds",
			Help:    "The duration of HTTP requests by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scorekeeper_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scorekeeper_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scorekeeper_events_published_total",
			Help: "The total number of events published.",
		}),
		EventsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scorekeeper_events_failed_total",
			Help: "The total number of events that failed to publish.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scorekeeper_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.MatchesRecorded,
		s.PlayersRegistered,
		s.StandingsDuration,
		s.RequestDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.EventsPublished,
		s.EventsFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncMatchesRecorded() {
	s.MatchesRecorded.Inc()
}

func (s *Service) IncPlayersRegistered() {
	s.PlayersRegistered.Inc()
}

func (s *Service) ObserveStandingsDuration(seconds float64) {
	s.StandingsDuration.Observe(seconds)
}

func (s *Service) ObserveRequest(method, route string, status int, seconds float64) {
	s.RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(seconds)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) IncEventsPublished() {
	s.EventsPublished.Inc()
}

func (s *Service) IncEventsFailed() {
	s.EventsFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
