package pubsub

import (
	"context"
	"fmt"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// New connects to Google Cloud Pub/Sub. An empty projectID yields a client
// that only logs, so the service runs without any cloud setup.
func New(ctx context.Context, projectID string) (PubSubClient, error) {
	if projectID == "" {
		log.Info("No GCP project configured, events will only be logged")
		return NewNoop(), nil
	}
	pubSubC, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}
	return &client{
		client: pubSubC,
		topics: make(map[EventType]*pubsub.Topic),
	}, nil
}

// NewNoop returns a client that logs events instead of publishing them.
func NewNoop() PubSubClient {
	return noopClient{}
}

// encode serializes an event payload the way SendMessage puts it on the wire.
func encode(data any) ([]byte, error) {
	return msgpack.Marshal(data)
}

func (c *client) topic(name EventType) *pubsub.Topic {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.topics[name]
	if !ok {
		t = c.client.Topic(string(name))
		c.topics[name] = t
	}
	return t
}

func (c *client) SendMessage(ctx context.Context, topic EventType, data any) error {
	msgpackData, err := encode(data)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return err
	}
	result := c.topic(topic).Publish(ctx, &pubsub.Message{Data: msgpackData})
	serverID, err := result.Get(ctx)
	if err != nil {
		log.Error("Failed to publish message", "error", err, "topic", topic)
		return err
	}
	log.Info("SendMessage", "serverID", serverID, "topic", topic)
	return nil
}

func (c *client) Close() error {
	c.mu.Lock()
	for _, t := range c.topics {
		t.Stop()
	}
	c.topics = make(map[EventType]*pubsub.Topic)
	c.mu.Unlock()
	return c.client.Close()
}

func (noopClient) SendMessage(ctx context.Context, topic EventType, data any) error {
	if _, err := encode(data); err != nil {
		return err
	}
	log.Debug("Event not published, no GCP project configured", "topic", topic)
	return nil
}

func (noopClient) Close() error {
	return nil
}
