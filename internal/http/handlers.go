package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scorekeeper/internal/records"
	"github.com/mauv0809/scorekeeper/internal/standings"
	"github.com/mauv0809/scorekeeper/internal/uploads"
	"github.com/slack-go/slack"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// RecordMatchHandler stores a match result.
func (s *Server) RecordMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxJSONBytes)
		var req recordMatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			status := http.StatusBadRequest
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				status = http.StatusRequestEntityTooLarge
			}
			log.Warn("Invalid match payload", "error", err)
			writeError(w, status, "invalid request body: "+err.Error())
			return
		}
		winner, loser, date := string(req.Winner), string(req.Loser), string(req.Date)
		duration := string(req.Duration)
		if _, err := records.ParseDuration(duration); err != nil && duration != "" {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		id, err := s.Store.InsertMatch(r.Context(), winner, loser, date, duration)
		if err != nil {
			status := statusFor(err)
			if status == http.StatusInternalServerError {
				log.Error("Failed to record match", "error", err)
			}
			writeError(w, status, err.Error())
			return
		}
		s.Metrics.IncMatchesRecorded()
		log.Info("Match recorded", "matchID", id, "winner", winner, "loser", loser)

		s.Processor.MatchRecorded(r.Context(), records.Match{
			ID:         id,
			WinnerName: winner,
			LoserName:  loser,
			Date:       date,
			Duration:   duration,
		}, isDryRunFromContext(r))

		writeJSON(w, http.StatusOK, recordMatchResponse{Message: "match recorded", ID: id})
	}
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := s.Store.ListMatches(r.Context())
		if err != nil {
			log.Error("Failed to get matches from store", "error", err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if matches == nil {
			matches = []records.Match{}
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

// RegisterPlayerHandler reads a multipart form with name, date and one
// photo file. The photo is staged on disk and the staged file is always removed.
func (s *Server) RegisterPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, s.Cfg.MaxUploadBytes+maxFieldBytes*8)
		mr, err := r.MultipartReader()
		if err != nil {
			writeError(w, http.StatusBadRequest, "expected a multipart/form-data body")
			return
		}

		var name, date string
		var staged *uploads.Staged
		defer func() { staged.Release() }()

		for {
			part, err := mr.NextPart()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				s.uploadFailed(w, err)
				return
			}

			switch part.FormName() {
			case "name":
				name, err = readField(part, "name")
			case "date":
				date, err = readField(part, "date")
			case "photo":
				if staged != nil {
					err = fmt.Errorf("%w: only one photo may be uploaded", records.ErrValidation)
					break
				}
				staged, err = s.Uploads.Stage(part)
			}
			part.Close()
			if err != nil {
				s.uploadFailed(w, err)
				return
			}
		}

		var photo []byte
		if staged != nil {
			photo, err = staged.ReadAll()
			if err != nil {
				log.Error("Failed to read staged photo", "error", err)
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
		}

		player, err := s.Store.InsertPlayer(r.Context(), name, photo, date)
		if err != nil {
			s.uploadFailed(w, err)
			return
		}
		s.Metrics.IncPlayersRegistered()
		log.Info("Player registered", "playerID", player.ID, "name", player.Name, "photoBytes", len(player.Photo))

		s.Processor.PlayerRegistered(r.Context(), *player, isDryRunFromContext(r))

		writeJSON(w, http.StatusOK, registeredPlayerResponse{
			ID:        player.ID,
			Name:      player.Name,
			Photo:     encodePhoto(player.Photo),
			CreatedAt: player.CreatedAt,
		})
	}
}

func (s *Server) uploadFailed(w http.ResponseWriter, err error) {
	status := statusFor(err)
	switch status {
	case http.StatusInternalServerError:
		if errors.Is(err, records.ErrStorage) || errors.Is(err, uploads.ErrStaging) {
			log.Error("Failed to register player", "error", err)
			break
		}
		// Anything else here came from parsing the request.
		status = http.StatusBadRequest
		log.Warn("Malformed player registration", "error", err)
	case http.StatusRequestEntityTooLarge:
		log.Warn("Player photo too large", "error", err)
	}
	writeError(w, status, err.Error())
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Store.ListPlayers(r.Context())
		if err != nil {
			log.Error("Failed to get players from store", "error", err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp := make([]playerResponse, 0, len(players))
		for _, p := range players {
			resp = append(resp, playerResponse{ID: p.ID, Name: p.Name, Photo: encodePhoto(p.Photo)})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// StandingsHandler serves per-player aggregates in player order.
func (s *Server) StandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := s.computeStandings(r)
		if err != nil {
			log.Error("Failed to compute standings", "error", err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp := make([]standingResponse, 0, len(rows))
		for _, row := range rows {
			resp = append(resp, standingResponse{
				ID:            row.ID,
				Name:          row.Name,
				Photo:         encodePhoto(row.Photo),
				MatchesPlayed: row.MatchesPlayed,
				MatchesWon:    row.MatchesWon,
				MatchesLost:   row.MatchesLost,
				TotalDuration: row.TotalDuration,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) computeStandings(r *http.Request) ([]standings.PlayerStanding, error) {
	start := time.Now()
	rows, err := s.Standings.Compute(r.Context())
	s.Metrics.ObserveStandingsDuration(time.Since(start).Seconds())
	return rows, err
}

// PostStandingsHandler posts the current standings to the Slack channel.
func (s *Server) PostStandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := s.computeStandings(r)
		if err != nil {
			log.Error("Failed to compute standings", "error", err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if err := s.Notifier.SendStandings(rows, isDryRunFromContext(r)); err != nil {
			log.Error("Failed to post standings", "error", err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		log.Info("Standings posted", "players", len(rows))
		writeJSON(w, http.StatusOK, messageResponse{Message: "standings posted"})
	}
}

// StandingsCommandHandler returns a handler for the /standings Slack command.
func (s *Server) StandingsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := s.computeStandings(r)
		if err != nil {
			http.Error(w, "Failed to get standings", http.StatusInternalServerError)
			log.Error("Failed to compute standings", "error", err)
			return
		}

		msg, err := s.Notifier.FormatStandingsResponse(rows)
		if err != nil {
			http.Error(w, "Failed to format standings", http.StatusInternalServerError)
			log.Error("Failed to format standings", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}

		respondWithSlackMsg(w, slackMsg)
	}
}
