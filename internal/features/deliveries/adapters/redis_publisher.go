package adapters

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisEventPublisher implements ports.Publisher on Redis PUB/SUB.
// Fire-and-forget: a publish with zero subscribers is still a success.
type RedisEventPublisher struct {
	client *redis.Client
}

// NewRedisEventPublisher creates a publisher over an existing Redis client.
func NewRedisEventPublisher(client *redis.Client) *RedisEventPublisher {
	return &RedisEventPublisher{client: client}
}

// Publish marshals the event to JSON and publishes it on the topic channel.
func (p *RedisEventPublisher) Publish(ctx context.Context, topic string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event for %s: %w", topic, err)
	}

	if err := p.client.Publish(ctx, topic, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}
