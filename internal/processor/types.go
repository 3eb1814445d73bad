package processor

import (
	"github.com/mauv0809/scorekeeper/internal/metrics"
	"github.com/mauv0809/scorekeeper/internal/pubsub"
)

// Processor fans committed writes out to the event bus and Slack.
type Processor struct {
	notifier Notifier
	metrics  metrics.Metrics
	pubsub   pubsub.PubSubClient
}
