// Package pubsub publishes scan completion messages to a Google Pub/Sub
// topic, with retries because the topic hands work to the next stage.
package pubsub

import (
	"context"
	"encoding/json"
	"time"

	"cloud.google.com/go/pubsub"

	"github.com/reconvoy/reconvoy/internal/notify"
)

// Config holds Pub/Sub settings.
type Config struct {
	Project string `yaml:"project"`
	Topic   string `yaml:"topic"`
}

// Publisher implements notify.Publisher using a Pub/Sub topic.
type Publisher struct {
	client *pubsub.Client
	topic  *pubsub.Topic
}

// New creates a new Pub/Sub publisher.
func New(ctx context.Context, cfg Config) (*Publisher, error) {
	client, err := pubsub.NewClient(ctx, cfg.Project)
	if err != nil {
		return nil, err
	}
	return &Publisher{
		client: client,
		topic:  client.Topic(cfg.Topic),
	}, nil
}

// ScanComplete publishes {scan_id, target, status: recon_complete}. Up to
// five attempts with exponential backoff and jitter.
func (p *Publisher) ScanComplete(ctx context.Context, scanID, target string) error {
	data, err := json.Marshal(map[string]string{
		"scan_id": scanID,
		"target":  target,
		"status":  "recon_complete",
	})
	if err != nil {
		return err
	}

	return notify.Retry(ctx, 5, time.Second, 500*time.Millisecond, func() error {
		pubCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		_, err := p.topic.Publish(pubCtx, &pubsub.Message{Data: data}).Get(pubCtx)
		return err
	})
}

// Close stops the topic's publish goroutines and releases the client.
func (p *Publisher) Close() error {
	p.topic.Stop()
	return p.client.Close()
}
