package service

import (
	"context"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/domain"
	"github.com/nazzeldevelopment/nazzel-jean-website/pkg/logger"
	"github.com/nazzeldevelopment/nazzel-jean-website/pkg/metrics"
)

type userService struct {
	store  domain.Store
	log    *logger.Logger
	now    func() time.Time
	policy *bluemonday.Policy
}

func NewUserService(store domain.Store, log *logger.Logger, opts ...Option) domain.UserService {
	o := buildOptions(opts)
	return &userService{
		store:  store,
		log:    log.WithComponent("users"),
		now:    o.now,
		policy: bluemonday.StrictPolicy(),
	}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*domain.PublicProfile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domain.NewBadRequest("User ID is required")
	}
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewNotFound("User not found")
		}
		return nil, storeError(err)
	}
	profile := user.Public()
	return &profile, nil
}

// UpdateProfile changes only the fields present in req.
func (s *userService) UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error) {
	if req.RelationshipStatus != nil && !domain.ValidRelationshipStatus(*req.RelationshipStatus) {
		return nil, domain.NewBadRequest("Invalid relationship status")
	}
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewNotFound("User not found")
		}
		return nil, storeError(err)
	}
	if req.Location != nil {
		user.Location = plainText(s.policy, *req.Location)
	}
	if req.Bio != nil {
		user.Bio = plainText(s.policy, *req.Bio)
	}
	if req.RelationshipStatus != nil {
		user.RelationshipStatus = *req.RelationshipStatus
	}
	user.UpdatedAt = s.now()
	if err := s.store.SaveUser(ctx, user); err != nil {
		return nil, storeError(err)
	}
	return user, nil
}

func (s *userService) GetOnlineUsers(ctx context.Context) ([]domain.PublicProfile, error) {
	users, err := s.store.GetOnlineUsers(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	profiles := make([]domain.PublicProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Public())
	}
	return profiles, nil
}

func (s *userService) SetOnline(ctx context.Context, userID string, isOnline bool) error {
	if err := s.store.UpdateUserOnlineStatus(ctx, userID, isOnline, s.now()); err != nil {
		if domain.IsNotFound(err) {
			return domain.NewNotFound("User not found")
		}
		return storeError(err)
	}
	return nil
}

func (s *userService) GetStats(ctx context.Context) (*domain.Stats, error) {
	stats, err := s.store.GetStats(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return stats, nil
}

// PurgeExpiredSessions removes sessions past their expiry. The janitor calls it periodically.
func (s *userService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteExpiredSessions(ctx)
	if err != nil {
		return 0, storeError(err)
	}
	if n > 0 {
		metrics.ExpiredSessionsPurged.Add(float64(n))
		s.log.Info("purged expired sessions", zap.Int64("count", n))
	}
	return n, nil
}
