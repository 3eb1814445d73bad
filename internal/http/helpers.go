package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scorekeeper/internal/records"
	"github.com/mauv0809/scorekeeper/internal/uploads"
	"github.com/slack-go/slack"
)

// maxFieldBytes caps plain multipart fields such as name and date.
const maxFieldBytes = 4 << 10

// maxJSONBytes caps JSON request bodies.
const maxJSONBytes = maxFieldBytes * 8

// flexibleText accepts a JSON string or a JSON number and keeps the text verbatim.
type flexibleText string

func (f *flexibleText) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexibleText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected a number or a string, got %s", b)
	}
	*f = flexibleText(bytes.TrimSpace(b))
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor maps store and upload errors to HTTP status codes.
func statusFor(err error) int {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.Is(err, records.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, uploads.ErrTooLarge), errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// encodePhoto renders a stored photo for JSON output; nil when absent.
func encodePhoto(photo []byte) *string {
	if len(photo) == 0 {
		return nil
	}
	encoded := base64.StdEncoding.EncodeToString(photo)
	return &encoded
}

// readField reads a small multipart value.
func readField(r io.Reader, name string) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxFieldBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read field %s: %w", name, err)
	}
	if len(data) > maxFieldBytes {
		return "", fmt.Errorf("%w: %s exceeds %d bytes", records.ErrValidation, name, maxFieldBytes)
	}
	return string(data), nil
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}
