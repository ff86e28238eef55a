package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Client struct {
	*redis.Client
}

func NewClient(redisURL string) *Client {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{
			Addr: redisURL,
		}
	}

	return &Client{redis.NewClient(opt)}
}

// IncrDailySubmissions bumps the per-client contract submission counter
// for the current UTC day and returns the new total. The key expires at
// the next midnight, matching the upstream quota's reset boundary.
func (c *Client) IncrDailySubmissions(ctx context.Context, clientIP string, files int, now time.Time) (int64, error) {
	day := now.UTC().Format("2006-01-02")
	key := fmt.Sprintf("contracts:daily:%s:%s", clientIP, day)

	count, err := c.IncrBy(ctx, key, int64(files)).Result()
	if err != nil {
		return 0, err
	}

	midnight := now.UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
	if err := c.ExpireAt(ctx, key, midnight).Err(); err != nil {
		return count, err
	}

	return count, nil
}
