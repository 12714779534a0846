package schedule

import (
	"context"
	"encoding/json"
	"time"

	"shiftdesk/models"

	"github.com/go-redis/redis/v8"
)

const publishedKeyPrefix = "schedule:published:"

// RedisCache keeps the latest publication per date in Redis.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Save(ctx context.Context, p models.PublishedSchedule) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, publishedKeyPrefix+p.Date, b, c.ttl).Err()
}

func (c *RedisCache) Load(ctx context.Context, date string) (*models.PublishedSchedule, error) {
	data, err := c.client.Get(ctx, publishedKeyPrefix+date).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var p models.PublishedSchedule
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, err
	}
	return &p, nil
}
