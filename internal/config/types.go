package config

// Config holds all configuration for the application.
type Config struct {
	DBName         string
	Port           string
	LogLevel       string
	UploadDir      string
	MaxUploadBytes int64
	AllowedOrigins []string
	Turso          TursoConfig
	Slack          SlackConfig
	ProjectID      string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}

// Enabled reports whether result notifications can be posted.
func (c SlackConfig) Enabled() bool {
	return c.Token != "" && c.ChannelID != ""
}
