package memory

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/domain"
)

// Throttle is a per-key token bucket held in process memory.
type Throttle struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

var _ domain.Throttle = (*Throttle)(nil)

// NewThrottle allows a burst of limit events per key, refilling one every window/limit.
func NewThrottle(limit int, window time.Duration) *Throttle {
	if limit <= 0 {
		return &Throttle{limit: rate.Inf, burst: 1, limiters: make(map[string]*rate.Limiter)}
	}
	return &Throttle{
		limit:    rate.Every(window / time.Duration(limit)),
		burst:    limit,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (t *Throttle) Allow(ctx context.Context, key string) (bool, error) {
	t.mu.Lock()
	limiter, ok := t.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(t.limit, t.burst)
		t.limiters[key] = limiter
	}
	t.mu.Unlock()
	return limiter.Allow(), nil
}
