package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wadjakorntonsri/linkvault/pkg/ports"
)

const keyPrefix = "linkvault:ratelimit:"

// RedisLimiter is a fixed-window counter: INCR per hit, TTL set on the first hit.
type RedisLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, limit: int64(limit), window: window}
}

// NewClient accepts a redis:// URL or a bare host:port.
func NewClient(redisURL string) (*redis.Client, error) {
	var opt *redis.Options
	if strings.Contains(redisURL, "://") {
		parsed, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opt = parsed
	} else {
		opt = &redis.Options{Addr: redisURL}
	}
	opt.PoolSize = 10
	opt.MinIdleConns = 2

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// Allow reports whether key is still under the limit for the current window.
// On Redis errors it returns true along with the error so callers can fail open.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := keyPrefix + key
	count, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return true, fmt.Errorf("failed to increment key: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return true, fmt.Errorf("failed to set window: %w", err)
		}
	}
	return count <= l.limit, nil
}

// Window is the length of one counting window.
func (l *RedisLimiter) Window() time.Duration {
	return l.window
}

var _ ports.RateLimiter = (*RedisLimiter)(nil)
