package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const defaultMaxUploadBytes = 10 << 20

// Load reads configuration from environment variables and .env file.
// Everything has a default so the server starts with an empty environment.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	getEnv := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			return value
		}
		return fallback
	}

	maxUpload := int64(defaultMaxUploadBytes)
	if raw := getEnv("MAX_UPLOAD_BYTES", ""); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			log.Warn("Invalid MAX_UPLOAD_BYTES, using default", "value", raw, "default", maxUpload)
		} else {
			maxUpload = parsed
		}
	}

	cfg := Config{
		DBName:         getEnv("DB_NAME", ":memory:"),
		Port:           getEnv("PORT", "5000"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		UploadDir:      getEnv("UPLOAD_DIR", filepath.Join(os.TempDir(), "scorekeeper-uploads")),
		MaxUploadBytes: maxUpload,
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		Turso: TursoConfig{
			PrimaryURL: getEnv("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnv("TURSO_AUTH_TOKEN", ""),
		},
		Slack: SlackConfig{
			Token:         getEnv("SLACK_BOT_TOKEN", ""),
			ChannelID:     getEnv("SLACK_CHANNEL_ID", ""),
			SigningSecret: getEnv("SLACK_SIGNING_SECRET", ""),
		},
		ProjectID: getEnv("GCP_PROJECT", ""),
	}
	return cfg
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
