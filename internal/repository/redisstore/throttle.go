package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/domain"
)

// fixedWindowThrottle counts events per key with INCR and lets the key
// expire after the window.
type fixedWindowThrottle struct {
	redis  *redis.Client
	prefix string
	limit  int64
	window time.Duration
}

// NewThrottle allows at most limit events per key within window.
func NewThrottle(client *redis.Client, prefix string, limit int, window time.Duration) domain.Throttle {
	return &fixedWindowThrottle{redis: client, prefix: prefix, limit: int64(limit), window: window}
}

func (t *fixedWindowThrottle) Allow(ctx context.Context, key string) (bool, error) {
	if t.limit <= 0 {
		return true, nil
	}
	redisKey := t.prefix + ":" + key
	var incr *redis.IntCmd
	_, err := t.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.ExpireNX(ctx, redisKey, t.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to check throttle: %w", err)
	}
	return incr.Val() <= t.limit, nil
}
