package http

import (
	"net/http"

	"github.com/mauv0809/scorekeeper/internal/config"
	"github.com/mauv0809/scorekeeper/internal/metrics"
	"github.com/mauv0809/scorekeeper/internal/notifier"
	"github.com/mauv0809/scorekeeper/internal/processor"
	"github.com/mauv0809/scorekeeper/internal/records"
	"github.com/mauv0809/scorekeeper/internal/standings"
	"github.com/mauv0809/scorekeeper/internal/uploads"
)

type Server struct {
	Store          records.RecordStore
	Standings      *standings.Engine
	Uploads        *uploads.Stager
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Processor      processor.SideEffects
	Router         *http.ServeMux
}

// recordMatchRequest is the body of POST /api/matches.
type recordMatchRequest struct {
	Winner   flexibleText `json:"winner"`
	Loser    flexibleText `json:"loser"`
	Date     flexibleText `json:"date"`
	Duration flexibleText `json:"duration"`
}

type recordMatchResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type registeredPlayerResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Photo     *string `json:"photo"`
	CreatedAt string  `json:"created_at"`
}

type playerResponse struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Photo *string `json:"photo"`
}

type standingResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Photo         *string `json:"photo"`
	MatchesPlayed int     `json:"matches_played"`
	MatchesWon    int     `json:"matches_won"`
	MatchesLost   int     `json:"matches_lost"`
	TotalDuration float64 `json:"total_duration"`
}

type errorResponse struct {
	Error string `json:"error"`
}
