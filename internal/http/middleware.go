package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/slack-go/slack"
)

// Middleware defines the standard signature for an HTTP middleware.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middlewares into a single handler.
// The middlewares are applied in the order they are passed.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// contextKey is a custom type to avoid key collisions in context.
type contextKey string

const (
	dryRunKey    contextKey = "dryRun"
	requestIDKey contextKey = "requestID"
)

const requestIDHeader = "X-Request-ID"

// requestIDMiddleware reuses the caller's X-Request-ID or assigns a new one.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestIDFromContext(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey).(string)
	return id
}

// verboseLevel raises the process log level while at least one verbose
// request is in flight and restores it when the last one finishes.
type verboseLevel struct {
	mu       sync.Mutex
	active   int
	previous log.Level
}

var verbose verboseLevel

func (v *verboseLevel) enter() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.active == 0 {
		v.previous = log.GetLevel()
		log.SetLevel(log.DebugLevel)
	}
	v.active++
}

func (v *verboseLevel) exit() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.active--
	if v.active == 0 {
		log.SetLevel(v.previous)
	}
}

// paramsMiddleware handles common query parameters like 'verbose' and 'dry_run'.
func paramsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Info("incoming request", "method", r.Method, "url", r.URL.String(), "requestID", requestIDFromContext(r))
		// Handle 'verbose' for request-scoped verbose logging.
		if r.URL.Query().Get("verbose") == "true" {
			verbose.enter()
			defer verbose.exit()
		}

		// Handle 'dry_run' and add it to the request context.
		isDryRun := r.URL.Query().Get("dry_run") == "true"
		ctx := context.WithValue(r.Context(), dryRunKey, isDryRun)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// isDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func isDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(dryRunKey).(bool)
	return ok && dryRun
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument records request latency per route and status.
func (s *Server) instrument(route string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			elapsed := time.Since(start).Seconds()
			s.Metrics.ObserveRequest(r.Method, route, rec.status, elapsed)
			log.Debug("request finished", "method", r.Method, "route", route, "status", rec.status, "seconds", elapsed, "requestID", requestIDFromContext(r))
		})
	}
}

// verifySlackRequest rejects requests without a valid Slack signature.
func (s *Server) verifySlackRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secret := s.Cfg.Slack.SigningSecret
		if secret == "" {
			log.Warn("Slack command received but no signing secret is configured")
			http.Error(w, "Slack commands are not configured", http.StatusServiceUnavailable)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read Slack request body", "error", err)
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		verifier, err := slack.NewSecretsVerifier(r.Header, secret)
		if err != nil {
			log.Warn("Invalid Slack request headers", "error", err)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if _, err := verifier.Write(body); err != nil {
			log.Error("Failed to hash Slack request body", "error", err)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if err := verifier.Ensure(); err != nil {
			log.Warn("Slack signature mismatch", "error", err)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
