package revocation

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "raffle:revoked:"

// RedisStore shares the revocation set across instances. Each key
// carries a TTL equal to the token's remaining lifetime, so the set
// cleans itself up.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
	}
}

func (s *RedisStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	if err := s.client.Set(ctx, keyPrefix+token, 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis.Set -> %w", err)
	}

	return nil
}

func (s *RedisStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, keyPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("redis.Exists -> %w", err)
	}

	return n > 0, nil
}
