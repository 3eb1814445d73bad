package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scorekeeper/internal/config"
	"github.com/mauv0809/scorekeeper/internal/database"
	server "github.com/mauv0809/scorekeeper/internal/http"
	"github.com/mauv0809/scorekeeper/internal/metrics"
	"github.com/mauv0809/scorekeeper/internal/notifier/slack"
	"github.com/mauv0809/scorekeeper/internal/processor"
	"github.com/mauv0809/scorekeeper/internal/pubsub"
	"github.com/mauv0809/scorekeeper/internal/records"
	"github.com/mauv0809/scorekeeper/internal/standings"
	"github.com/mauv0809/scorekeeper/internal/uploads"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.Warn("Unknown log level, keeping default", "level", cfg.LogLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	stager, err := uploads.NewStager(cfg.UploadDir, cfg.MaxUploadBytes)
	if err != nil {
		log.Fatalf("Failed to prepare upload directory: %s", err)
	}

	pubsubClient, err := pubsub.New(ctx, cfg.ProjectID)
	if err != nil {
		log.Error("Failed to initialize pubsub, events disabled", "error", err)
		pubsubClient = pubsub.NewNoop()
	}
	defer pubsubClient.Close()

	store := records.New(db)
	engine := standings.New(store)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	notifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	if !cfg.Slack.Enabled() {
		log.Info("Slack notifications disabled")
	}
	processor := processor.New(notifier, metricsSvc, pubsubClient)

	s := server.NewServer(
		store,
		engine,
		stager,
		metricsSvc,
		metricsHandler,
		cfg,
		notifier,
		processor,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown failed", "error", err)
			return err
		}
		log.Info("Server gracefully stopped")
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("Server error", "error", err)
	}
	log.Info("Server process shutting down")
}
