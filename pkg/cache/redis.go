package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter is a fixed-window request counter kept in Redis.
type Limiter struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
}

func NewLimiter(addr, password string, db, limit int, window time.Duration) (*Limiter, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}

	return &Limiter{rdb: rdb, limit: int64(limit), window: window}, nil
}

// Allow counts one hit for key and reports whether it is within the limit.
// Works on Redis versions without EXPIRE NX.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	key = "ratelimit:" + key

	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	ttl := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	if windowUnset(ttl.Val()) {
		if err := l.rdb.Expire(ctx, key, l.window).Err(); err != nil {
			return false, err
		}
	}

	return incr.Val() <= l.limit, nil
}

// windowUnset reports a counter without expiry: a fresh key, or one whose
// EXPIRE was lost after the increment.
func windowUnset(ttl time.Duration) bool {
	return ttl < 0
}

func (l *Limiter) Close() error {
	return l.rdb.Close()
}
