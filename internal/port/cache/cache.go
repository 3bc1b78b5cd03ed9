package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound signals a cache miss; any other error is an infrastructure
// failure and must not be treated as a miss by callers that care.
var ErrNotFound = errors.New("key not found in cache")

type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
