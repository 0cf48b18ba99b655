package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// NotificationPublisher broadcasts events on Redis channels for the
// notification delivery workers to pick up.
type NotificationPublisher struct {
	client *redis.Client
}

// NewNotificationPublisher constructs the publisher.
func NewNotificationPublisher(client *redis.Client) *NotificationPublisher {
	return &NotificationPublisher{client: client}
}

// Publish marshals payload and sends it on channel.
func (p *NotificationPublisher) Publish(ctx context.Context, channel string, payload interface{}) error {
	if p.client == nil {
		return fmt.Errorf("notification publisher has no redis client")
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal notification for %s: %w", channel, err)
	}
	if err := p.client.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", channel, err)
	}
	return nil
}
