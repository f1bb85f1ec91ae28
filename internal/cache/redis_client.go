package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

type RedisClient[T any] struct {
	client redis.Cmdable
	logger zerolog.Logger
}

func NewRedisClient[T any](client redis.Cmdable, logger zerolog.Logger) *RedisClient[T] {
	return &RedisClient[T]{client: client, logger: logger.With().Str("component", "RedisClient").Logger()}
}

func (c *RedisClient[T]) Set(
	ctx context.Context,
	key string,
	value T,
	expiration time.Duration,
) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.logger.Debug().Ctx(ctx).Str("key", key).Int("bytes", len(data)).Msg("cache set")
	return c.client.Set(ctx, key, data, expiration).Err()
}

func (c *RedisClient[T]) Get(ctx context.Context, key string, returnValue *T) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(data, returnValue)
}

func (c *RedisClient[T]) Delete(ctx context.Context, keys ...string) error {
	c.logger.Debug().Ctx(ctx).Strs("keys", keys).Msg("cache delete")
	return c.client.Del(ctx, keys...).Err()
}
