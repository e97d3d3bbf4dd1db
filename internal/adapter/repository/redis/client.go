package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Namespace prefixes every key this service writes.
const Namespace = "bankledger:"

// Connect parses redisURL, opens a client and verifies it answers PING.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
