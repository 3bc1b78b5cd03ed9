package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vietlinker/listing-service/internal/port/cache"
)

type CacheRedisRepository struct {
	client *redis.Client
}

func NewCacheRedisRepository(client *redis.Client) *CacheRedisRepository {
	return &CacheRedisRepository{client: client}
}

func (r *CacheRedisRepository) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, cache.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get key %s from redis: %w", key, err)
	}
	return data, nil
}

func (r *CacheRedisRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key %s in redis: %w", key, err)
	}
	return nil
}

func (r *CacheRedisRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete key %s from redis: %w", key, err)
	}
	return nil
}
