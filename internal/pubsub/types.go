package pubsub

import (
	"sync"

	"cloud.google.com/go/pubsub"
)

type client struct {
	client *pubsub.Client
	mu     sync.Mutex
	topics map[EventType]*pubsub.Topic
}

type noopClient struct{}

// EventType represents the type of event/message sent via pubsub. It doubles
// as the topic name.
type EventType string

const (
	EventMatchRecorded    EventType = "match-recorded"
	EventPlayerRegistered EventType = "player-registered"
)

// MatchRecorded is published after a match is stored.
type MatchRecorded struct {
	MatchID  int64  `msgpack:"match_id"`
	Winner   string `msgpack:"winner"`
	Loser    string `msgpack:"loser"`
	Date     string `msgpack:"date"`
	Duration string `msgpack:"duration"`
}

// PlayerRegistered is published after a player is stored. The photo is not
// part of the event.
type PlayerRegistered struct {
	PlayerID  int64  `msgpack:"player_id"`
	Name      string `msgpack:"name"`
	CreatedAt string `msgpack:"created_at"`
}
