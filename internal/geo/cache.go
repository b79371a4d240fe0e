package geo

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const countryKeyPrefix = "geo:country:"

// Cache stores resolved countries per IP.
type Cache interface {
	Get(ctx context.Context, ip string) (string, bool, error)
	Set(ctx context.Context, ip, country string, ttl time.Duration) error
}

// RedisCache is a go-redis backed Cache shared across instances.
type RedisCache struct {
	client redis.UniversalClient
}

// NewRedisCache constructs a Redis-backed country cache.
func NewRedisCache(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, ip string) (string, bool, error) {
	country, err := c.client.Get(ctx, countryKeyPrefix+ip).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return country, true, nil
}

func (c *RedisCache) Set(ctx context.Context, ip, country string, ttl time.Duration) error {
	return c.client.Set(ctx, countryKeyPrefix+ip, country, ttl).Err()
}
