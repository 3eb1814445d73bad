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
	"github.com/rs/cors"
)

func NewServer(store records.RecordStore, engine *standings.Engine, stager *uploads.Stager, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, processor processor.SideEffects) *Server {
	server := &Server{
		Store:          store,
		Standings:      engine,
		Uploads:        stager,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Processor:      processor,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), requestIDMiddleware, paramsMiddleware))

	s.Router.Handle("POST /api/matches", s.api("/api/matches", s.RecordMatchHandler()))
	s.Router.Handle("GET /api/matches", s.api("/api/matches", s.ListMatchesHandler()))
	s.Router.Handle("POST /api/players", s.api("/api/players", s.RegisterPlayerHandler()))
	s.Router.Handle("GET /api/players", s.api("/api/players", s.ListPlayersHandler()))
	s.Router.Handle("GET /api/standings", s.api("/api/standings", s.StandingsHandler()))
	s.Router.Handle("POST /api/standings/notify", s.api("/api/standings/notify", s.PostStandingsHandler()))

	s.Router.Handle("POST /slack/command/standings", Chain(s.StandingsCommandHandler(), requestIDMiddleware, paramsMiddleware, s.verifySlackRequest))
}

// api applies the middleware shared by every REST route.
func (s *Server) api(route string, h http.Handler) http.Handler {
	return Chain(h, requestIDMiddleware, s.instrument(route), paramsMiddleware)
}

// Handler returns the router wrapped with CORS handling.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: s.Cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
	})
	return c.Handler(s.Router)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
