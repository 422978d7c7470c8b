package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is the shared backend for multi-instance deployments. Entries are
// stored as JSON with a per-key TTL; capacity is left to the Redis
// deployment's own eviction policy.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, email string) (*Entry, bool, error) {
	data, err := r.client.Get(ctx, key(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache read error: %w", err)
	}

	entry := &Entry{}
	if err := json.Unmarshal(data, entry); err != nil {
		return nil, false, fmt.Errorf("cache decode error: %w", err)
	}

	return entry, true, nil
}

func (r *Redis) Set(ctx context.Context, email string, entry *Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("cache encode error: %w", err)
	}

	if err := r.client.Set(ctx, key(email), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("cache write error: %w", err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, email string) error {
	if err := r.client.Del(ctx, key(email)).Err(); err != nil {
		return fmt.Errorf("cache delete error: %w", err)
	}
	return nil
}
