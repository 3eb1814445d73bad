package notifier

import (
	"github.com/mauv0809/scorekeeper/internal/records"
	"github.com/mauv0809/scorekeeper/internal/standings"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For recorded matches
	SendMatchResult(match records.Match, dryRun bool) error
	// For slash commands
	SendStandings(rows []standings.PlayerStanding, dryRun bool) error
	FormatStandingsResponse(rows []standings.PlayerStanding) (any, error)
}
