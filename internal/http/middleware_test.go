package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestVerboseLevelOverlappingRequests(t *testing.T) {
	original := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	defer log.SetLevel(original)

	verbose.enter()
	verbose.enter()
	assert.Equal(t, log.DebugLevel, log.GetLevel())

	verbose.exit()
	assert.Equal(t, log.DebugLevel, log.GetLevel(), "still one verbose request in flight")

	verbose.exit()
	assert.Equal(t, log.InfoLevel, log.GetLevel())
}

func TestParamsMiddlewareVerbose(t *testing.T) {
	original := log.GetLevel()
	log.SetLevel(log.WarnLevel)
	defer log.SetLevel(original)

	var during log.Level
	var dryRun bool
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		during = log.GetLevel()
		dryRun = isDryRunFromContext(r)
	}), paramsMiddleware)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health?verbose=true&dry_run=true", nil))

	assert.Equal(t, log.DebugLevel, during)
	assert.True(t, dryRun)
	assert.Equal(t, log.WarnLevel, log.GetLevel())
}
