package processor

import (
	"context"

	"github.com/mauv0809/scorekeeper/internal/notifier"
	"github.com/mauv0809/scorekeeper/internal/records"
)

// Notifier defines the notification operations required by the processor.
// This is an alias for the main notifier interface for decoupling.
type Notifier interface {
	notifier.Notifier
}

// SideEffects is what the HTTP layer calls after a write has committed.
type SideEffects interface {
	MatchRecorded(ctx context.Context, match records.Match, dryRun bool)
	PlayerRegistered(ctx context.Context, player records.Player, dryRun bool)
}
