package notifiedbody

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"en13813/pkg/platform/sentinel"
)

const (
	// Redis key prefix for cached registry records
	bodyKeyPrefix = "nb:body:"
)

// RedisCache shares registry records between instances. Expiry is left to
// Redis via the key TTL.
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisCache(client redis.UniversalClient, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Save(ctx context.Context, body *Body) error {
	if body == nil {
		return nil
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal notified body: %w", err)
	}
	if err := c.client.Set(ctx, bodyKeyPrefix+NormalizeNumber(body.Number), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache notified body: %w", err)
	}
	return nil
}

func (c *RedisCache) Find(ctx context.Context, number string) (*Body, error) {
	raw, err := c.client.Get(ctx, bodyKeyPrefix+NormalizeNumber(number)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read cached notified body: %w", err)
	}
	var b Body
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("unmarshal cached notified body: %w", err)
	}
	return &b, nil
}
