package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/steeldetailing/pm-dashboard/internal/core/ports"
)

const (
	keyPrefix     = "steeldash:session:"
	defaultTabTTL = 12 * time.Hour
)

// SessionTier stores the session-scoped identity record in Redis.
// Key format: steeldash:session:<record key>
// Every read and write slides the TTL, so only an idle tab expires.
type SessionTier struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionTier wraps client. A non-positive ttl falls back to defaultTabTTL.
func NewSessionTier(client *redis.Client, ttl time.Duration) *SessionTier {
	if ttl <= 0 {
		ttl = defaultTabTTL
	}
	return &SessionTier{client: client, ttl: ttl}
}

func (t *SessionTier) Name() string { return "redis" }

func (t *SessionTier) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := t.client.GetEx(ctx, keyPrefix+key, t.ttl).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ports.ErrTierMiss
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return b, nil
}

func (t *SessionTier) Set(ctx context.Context, key string, value []byte) error {
	if err := t.client.Set(ctx, keyPrefix+key, value, t.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (t *SessionTier) Delete(ctx context.Context, key string) error {
	if err := t.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
