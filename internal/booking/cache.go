package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CalendarCache holds the booked dates of a month.
type CalendarCache interface {
	Get(ctx context.Context, year, month int) ([]string, bool, error)
	Set(ctx context.Context, year, month int, dates []string) error
	Invalidate(ctx context.Context, year, month int) error
}

func calendarKey(year, month int) string {
	return fmt.Sprintf("calendar:%04d-%02d", year, month)
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) CalendarCache {
	return &redisCache{client: client, ttl: ttl}
}

func (c *redisCache) Get(ctx context.Context, year, month int) ([]string, bool, error) {
	data, err := c.client.Get(ctx, calendarKey(year, month)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var dates []string
	if err := json.Unmarshal(data, &dates); err != nil {
		return nil, false, err
	}
	return dates, true, nil
}

func (c *redisCache) Set(ctx context.Context, year, month int, dates []string) error {
	data, err := json.Marshal(dates)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, calendarKey(year, month), data, c.ttl).Err()
}

func (c *redisCache) Invalidate(ctx context.Context, year, month int) error {
	return c.client.Del(ctx, calendarKey(year, month)).Err()
}

type nopCache struct{}

// NopCache never holds anything. Used when no Redis is configured.
func NopCache() CalendarCache {
	return nopCache{}
}

func (nopCache) Get(context.Context, int, int) ([]string, bool, error) { return nil, false, nil }
func (nopCache) Set(context.Context, int, int, []string) error      { return nil }
func (nopCache) Invalidate(context.Context, int, int) error         { return nil }
