package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter is a fixed-window per-IP rate limiter backed by Redis. Each
// purpose (login, register, password) counts in its own window.
type Limiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewLimiter(client *redis.Client, limit int, window time.Duration) *Limiter {
	return &Limiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

func (l *Limiter) key(ip, purpose string) string {
	return fmt.Sprintf("ratelimit:%s:%s", purpose, ip)
}

// CheckIP reports whether the IP has exhausted its window for the
// given purpose.
func (l *Limiter) CheckIP(ctx context.Context, ip, purpose string) (bool, error) {
	count, err := l.client.Get(ctx, l.key(ip, purpose)).Int()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get rate limit counter: %w", err)
	}

	return count >= l.limit, nil
}

// RecordIP counts one request against the IP's window. The TTL is set
// on the first request of the window only.
func (l *Limiter) RecordIP(ctx context.Context, ip, purpose string) error {
	key := l.key(ip, purpose)

	pipe := l.client.Pipeline()
	pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, l.window)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record request: %w", err)
	}

	return nil
}
