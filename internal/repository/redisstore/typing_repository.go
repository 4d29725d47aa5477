package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/domain"
)

// DefaultTypingTTL keeps a status readable well past domain.TypingStaleAfter,
// so a stale flag reads as not typing rather than absent.
const DefaultTypingTTL = time.Minute

// typingRepository keeps typing flags as short-lived Redis keys so abandoned
// statuses expire without a sweeper.
type typingRepository struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewTypingRepository creates a Redis-backed TypingRepository. Keys live for ttl
// after their last update.
func NewTypingRepository(client *redis.Client, ttl time.Duration) domain.TypingRepository {
	return &typingRepository{redis: client, ttl: ttl}
}

func (r *typingRepository) GetTypingStatus(ctx context.Context, userID string) (*domain.TypingStatus, error) {
	raw, err := r.redis.Get(ctx, r.redisKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get typing status: %w: %w", domain.ErrStoreUnavailable, err)
	}
	var status domain.TypingStatus
	if err := json.Unmarshal(raw, &status); err != nil {
		return nil, fmt.Errorf("failed to decode typing status: %w", err)
	}
	return &status, nil
}

func (r *typingRepository) UpdateTypingStatus(ctx context.Context, status *domain.TypingStatus) error {
	raw, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("failed to encode typing status: %w", err)
	}
	if err := r.redis.Set(ctx, r.redisKey(status.UserID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to update typing status: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *typingRepository) redisKey(userID string) string {
	return "typing:" + userID
}
