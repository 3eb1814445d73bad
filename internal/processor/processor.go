package processor

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scorekeeper/internal/metrics"
	"github.com/mauv0809/scorekeeper/internal/pubsub"
	"github.com/mauv0809/scorekeeper/internal/records"
)

var _ SideEffects = (*Processor)(nil)

// New creates a new Processor.
func New(notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient) *Processor {
	return &Processor{
		notifier: notifier,
		metrics:  metrics,
		pubsub:   pubsub,
	}
}

// MatchRecorded publishes the match event and posts the result to Slack.
// Failures are logged and counted; the match is already stored.
func (p *Processor) MatchRecorded(ctx context.Context, match records.Match, dryRun bool) {
	log.Debug("Processing recorded match", "matchID", match.ID)
	p.publish(ctx, pubsub.EventMatchRecorded, pubsub.MatchRecorded{
		MatchID:  match.ID,
		Winner:   match.WinnerName,
		Loser:    match.LoserName,
		Date:     match.Date,
		Duration: match.Duration,
	}, dryRun)

	if err := p.notifier.SendMatchResult(match, dryRun); err != nil {
		log.Error("Failed to send match result notification", "error", err, "matchID", match.ID)
	}
}

// PlayerRegistered publishes the registration event.
func (p *Processor) PlayerRegistered(ctx context.Context, player records.Player, dryRun bool) {
	log.Debug("Processing registered player", "playerID", player.ID)
	p.publish(ctx, pubsub.EventPlayerRegistered, pubsub.PlayerRegistered{
		PlayerID:  player.ID,
		Name:      player.Name,
		CreatedAt: player.CreatedAt,
	}, dryRun)
}

func (p *Processor) publish(ctx context.Context, topic pubsub.EventType, data any, dryRun bool) {
	if dryRun {
		log.Info("[Dry Run] Would publish event", "topic", topic)
		return
	}
	if err := p.pubsub.SendMessage(ctx, topic, data); err != nil {
		p.metrics.IncEventsFailed()
		log.Error("Failed to publish event", "error", err, "topic", topic)
		return
	}
	p.metrics.IncEventsPublished()
}
