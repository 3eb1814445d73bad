package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scorekeeper/internal/metrics"
	"github.com/mauv0809/scorekeeper/internal/notifier"
	"github.com/mauv0809/scorekeeper/internal/records"
	"github.com/mauv0809/scorekeeper/internal/standings"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier. With an empty token or channel the
// notifier still formats slash command responses but never posts.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	var api slackClient
	if token != "" {
		api = slack.New(token)
	}
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}
	if s.api == nil || s.channelID == "" {
		log.Debug("Slack is not configured, skipping message")
		return "", "", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendMatchResult(match records.Match, dryRun bool) error {
	msg := s.formatMatchResult(match)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendStandings(rows []standings.PlayerStanding, dryRun bool) error {
	msg := s.formatStandings(rows)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// FormatStandingsResponse formats the standings for a slash command response.
func (s *Notifier) FormatStandingsResponse(rows []standings.PlayerStanding) (any, error) {
	return s.formatStandings(rows), nil
}

// formatMatchResult creates the Slack message for a recorded match using Block Kit.
func (s *Notifier) formatMatchResult(match records.Match) slack.Message {
	blocks := make([]slack.Block, 0, 3)

	headerText := slack.NewTextBlockObject("plain_text", "🏓 Match recorded! 🏓", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	var resultText string
	if match.WinnerName == match.LoserName {
		resultText = fmt.Sprintf("%s played against themselves 🤔", match.WinnerName)
	} else {
		resultText = fmt.Sprintf("🏆 %s beat %s", match.WinnerName, match.LoserName)
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", resultText, true, false), nil, nil))

	contextText := fmt.Sprintf("Date: %s | Duration: %s", match.Date, match.Duration)
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", contextText, true, false)))

	return slack.NewBlockMessage(blocks...)
}

// rankForDisplay orders standings by wins, then win rate, then fewest
// matches, then name. The engine itself never ranks.
func rankForDisplay(rows []standings.PlayerStanding) []standings.PlayerStanding {
	ranked := make([]standings.PlayerStanding, len(rows))
	copy(ranked, rows)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.MatchesWon != b.MatchesWon {
			return a.MatchesWon > b.MatchesWon
		}
		if wa, wb := winPercentage(a), winPercentage(b); wa != wb {
			return wa > wb
		}
		if a.MatchesPlayed != b.MatchesPlayed {
			return a.MatchesPlayed < b.MatchesPlayed
		}
		return a.Name < b.Name
	})
	return ranked
}

func winPercentage(row standings.PlayerStanding) float64 {
	if row.MatchesPlayed == 0 {
		return 0
	}
	return float64(row.MatchesWon) / float64(row.MatchesPlayed) * 100
}

// formatStandings creates a Slack message to display the standings.
func (s *Notifier) formatStandings(rows []standings.PlayerStanding) slack.Message {
	blocks := make([]slack.Block, 0, len(rows)+1)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 Standings 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(rows) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No players registered yet.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for i, row := range rankForDisplay(rows) {
		rank := i + 1
		var medal string
		switch rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}

		playerText := fmt.Sprintf("%d. %s %s\n> Won %d/%d (%.0f%%) | Lost: %d | Time played: %s",
			rank,
			medal,
			row.Name,
			row.MatchesWon,
			row.MatchesPlayed,
			winPercentage(row),
			row.MatchesLost,
			strconv.FormatFloat(row.TotalDuration, 'f', -1, 64),
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playerText, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}
