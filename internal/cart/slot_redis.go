package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSlotStore keeps cart snapshots in redis. Slots expire after TTL so
// abandoned carts age out; a zero TTL keeps them forever.
type RedisSlotStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSlotStore(client *redis.Client, ttl time.Duration) *RedisSlotStore {
	return &RedisSlotStore{client: client, ttl: ttl}
}

func (s *RedisSlotStore) Load(ctx context.Context, key string) ([]byte, error) {
	snapshot, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to load cart slot: %w", err)
	}
	return snapshot, nil
}

func (s *RedisSlotStore) Save(ctx context.Context, key string, snapshot []byte) error {
	if err := s.client.Set(ctx, key, snapshot, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart slot: %w", err)
	}
	return nil
}

func (s *RedisSlotStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete cart slot: %w", err)
	}
	return nil
}
