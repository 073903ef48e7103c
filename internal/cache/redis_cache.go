package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ledgerlane/crm-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisReportCache stores JSON-encoded forecast responses in Redis
type RedisReportCache struct {
	client *redis.Client
}

func NewRedisReportCache(addr string, password string, db int) *RedisReportCache {
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 2 * time.Second,
	})

	return &RedisReportCache{client: client}
}

func (c *RedisReportCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisReportCache) Close() error {
	return c.client.Close()
}

func (c *RedisReportCache) Get(ctx context.Context, key string) (*domain.ForecastResponse, bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var resp domain.ForecastResponse
	if err := json.Unmarshal(val, &resp); err != nil {
		return nil, false, err
	}
	return &resp, true, nil
}

func (c *RedisReportCache) Set(ctx context.Context, key string, value *domain.ForecastResponse, ttl time.Duration) error {
	if value == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}
