package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"DB_NAME", "PORT", "LOG_LEVEL", "MAX_UPLOAD_BYTES", "CORS_ALLOWED_ORIGINS", "SLACK_BOT_TOKEN", "SLACK_CHANNEL_ID", "GCP_PROJECT", "TURSO_PRIMARY_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, ":memory:", cfg.DBName)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, int64(defaultMaxUploadBytes), cfg.MaxUploadBytes)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Empty(t, cfg.Turso.PrimaryURL)
	assert.False(t, cfg.Slack.Enabled())
	assert.Empty(t, cfg.ProjectID)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_NAME", "scores.db")
	t.Setenv("MAX_UPLOAD_BYTES", "2048")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("SLACK_CHANNEL_ID", "C123")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "scores.db", cfg.DBName)
	assert.Equal(t, int64(2048), cfg.MaxUploadBytes)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.True(t, cfg.Slack.Enabled())
}

func TestLoad_InvalidUploadLimitFallsBack(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES", "lots")

	cfg := Load()
	assert.Equal(t, int64(defaultMaxUploadBytes), cfg.MaxUploadBytes)
}
