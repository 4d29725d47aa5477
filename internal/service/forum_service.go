package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/domain"
	"github.com/nazzeldevelopment/nazzel-jean-website/pkg/logger"
)

const replyNotificationKind = "New Reply"

type forumService struct {
	store    domain.Store
	notifier domain.Notifier
	log      *logger.Logger
	now      func() time.Time
	ugc      *bluemonday.Policy
	strict   *bluemonday.Policy
}

func NewForumService(store domain.Store, notifier domain.Notifier, log *logger.Logger, opts ...Option) domain.ForumService {
	o := buildOptions(opts)
	return &forumService{
		store:    store,
		notifier: notifier,
		log:      log.WithComponent("forum"),
		now:      o.now,
		ugc:      bluemonday.UGCPolicy(),
		strict:   bluemonday.StrictPolicy(),
	}
}

func (s *forumService) ListPosts(ctx context.Context, filter domain.PostFilter) ([]*domain.ForumPost, error) {
	var (
		posts []*domain.ForumPost
		err   error
	)
	switch {
	case filter.Category != "":
		posts, err = s.store.GetPostsByCategory(ctx, filter.Category)
		if err == nil && filter.UserID != "" {
			posts = filterPostsByUser(posts, filter.UserID)
		}
	case filter.UserID != "":
		posts, err = s.store.GetPostsByUser(ctx, filter.UserID)
	default:
		posts, err = s.store.GetPosts(ctx)
	}
	if err != nil {
		return nil, storeError(err)
	}
	return posts, nil
}

func filterPostsByUser(posts []*domain.ForumPost, userID string) []*domain.ForumPost {
	out := posts[:0]
	for _, p := range posts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out
}

func (s *forumService) CreatePost(ctx context.Context, author *domain.User, req domain.CreatePostRequest) (*domain.ForumPost, error) {
	title := plainText(s.strict, req.Title)
	content := strings.TrimSpace(s.ugc.Sanitize(req.Content))
	category := strings.TrimSpace(req.Category)
	if title == "" || content == "" || category == "" {
		return nil, domain.NewBadRequest("Title, content, and category are required")
	}
	if !domain.ValidCategory(category) {
		return nil, domain.NewBadRequest("Invalid category")
	}
	mood := strings.TrimSpace(req.Mood)
	if mood != "" && !domain.ValidMood(mood) {
		return nil, domain.NewBadRequest("Invalid mood")
	}
	tags := make([]string, 0, len(req.Tags))
	for _, tag := range req.Tags {
		if tag = plainText(s.strict, tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	now := s.now()
	post := &domain.ForumPost{
		ID:        uuid.NewString(),
		UserID:    author.ID,
		Username:  author.Username,
		Title:     title,
		Content:   content,
		Category:  category,
		Tags:      tags,
		Mood:      mood,
		SeenBy:    []string{},
		Reactions: []domain.PostReaction{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.SavePost(ctx, post); err != nil {
		return nil, storeError(err)
	}

	if err := s.incrementPostCount(ctx, author.ID, now); err != nil {
		s.log.Warn("failed to update post count", zap.String("user_id", author.ID), zap.Error(err))
	}
	s.log.Info("post created", zap.String("post_id", post.ID), zap.String("user_id", author.ID))
	s.notifier.AdminLog("New forum post", fmt.Sprintf("%s posted %q in %s.", author.Username, post.Title, post.Category))
	return post, nil
}

func (s *forumService) incrementPostCount(ctx context.Context, userID string, now time.Time) error {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	user.PostCount++
	user.UpdatedAt = now
	return s.store.SaveUser(ctx, user)
}

func (s *forumService) ReactToPost(ctx context.Context, user *domain.User, postID string, req domain.ReactRequest) ([]domain.PostReaction, error) {
	emoji := strings.TrimSpace(req.Emoji)
	if emoji == "" {
		return nil, domain.NewBadRequest("Emoji is required")
	}
	post, err := s.store.GetPostByID(ctx, postID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewNotFound("Post not found")
		}
		return nil, storeError(err)
	}
	now := s.now()
	post.Reactions = toggleReaction(post.Reactions, user, emoji, now)
	post.Likes = len(post.Reactions)
	post.UpdatedAt = now
	if err := s.store.SavePost(ctx, post); err != nil {
		return nil, storeError(err)
	}
	return post.Reactions, nil
}

func (s *forumService) ReactToReply(ctx context.Context, user *domain.User, replyID string, req domain.ReactRequest) ([]domain.PostReaction, error) {
	emoji := strings.TrimSpace(req.Emoji)
	if emoji == "" {
		return nil, domain.NewBadRequest("Emoji is required")
	}
	reply, err := s.store.GetReplyByID(ctx, replyID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewNotFound("Reply not found")
		}
		return nil, storeError(err)
	}
	now := s.now()
	reply.Reactions = toggleReaction(reply.Reactions, user, emoji, now)
	reply.Likes = len(reply.Reactions)
	reply.UpdatedAt = now
	if err := s.store.SaveReply(ctx, reply); err != nil {
		return nil, storeError(err)
	}
	return reply.Reactions, nil
}

// toggleReaction removes the (user, emoji) pair if present, otherwise appends it.
func toggleReaction(reactions []domain.PostReaction, user *domain.User, emoji string, now time.Time) []domain.PostReaction {
	out := make([]domain.PostReaction, 0, len(reactions)+1)
	removed := false
	for _, r := range reactions {
		if r.UserID == user.ID && r.Emoji == emoji {
			removed = true
			continue
		}
		out = append(out, r)
	}
	if !removed {
		out = append(out, domain.PostReaction{UserID: user.ID, Username: user.Username, Emoji: emoji, CreatedAt: now})
	}
	return out
}

func (s *forumService) ViewPost(ctx context.Context, postID string, req domain.ViewRequest) (*domain.ViewResult, error) {
	post, err := s.store.GetPostByID(ctx, postID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewNotFound("Post not found")
		}
		return nil, storeError(err)
	}
	post.Views++
	if viewer := strings.TrimSpace(req.UserID); viewer != "" && !containsString(post.SeenBy, viewer) {
		post.SeenBy = append(post.SeenBy, viewer)
	}
	if err := s.store.SavePost(ctx, post); err != nil {
		return nil, storeError(err)
	}
	return &domain.ViewResult{Success: true, Views: post.Views, SeenCount: len(post.SeenBy)}, nil
}

func (s *forumService) SharePost(ctx context.Context, postID string) (int, error) {
	post, err := s.store.GetPostByID(ctx, postID)
	if err != nil {
		if domain.IsNotFound(err) {
			return 0, domain.NewNotFound("Post not found")
		}
		return 0, storeError(err)
	}
	post.Shares++
	if err := s.store.SavePost(ctx, post); err != nil {
		return 0, storeError(err)
	}
	return post.Shares, nil
}

func (s *forumService) ListReplies(ctx context.Context, postID string) ([]*domain.ForumReply, error) {
	replies, err := s.store.GetReplies(ctx, postID)
	if err != nil {
		return nil, storeError(err)
	}
	return replies, nil
}

func (s *forumService) CreateReply(ctx context.Context, author *domain.User, postID string, req domain.CreateReplyRequest) (*domain.ForumReply, error) {
	content := strings.TrimSpace(s.ugc.Sanitize(req.Content))
	if content == "" {
		return nil, domain.NewBadRequest("Content is required")
	}
	post, err := s.store.GetPostByID(ctx, postID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewNotFound("Post not found")
		}
		return nil, storeError(err)
	}

	now := s.now()
	reply := &domain.ForumReply{
		ID:        uuid.NewString(),
		PostID:    post.ID,
		UserID:    author.ID,
		Username:  author.Username,
		Content:   content,
		Reactions: []domain.PostReaction{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.SaveReply(ctx, reply); err != nil {
		return nil, storeError(err)
	}
	post.Replies++
	post.UpdatedAt = now
	if err := s.store.SavePost(ctx, post); err != nil {
		return nil, storeError(err)
	}

	if post.UserID != author.ID {
		s.notifyPostAuthor(ctx, post)
	}
	return reply, nil
}

func (s *forumService) notifyPostAuthor(ctx context.Context, post *domain.ForumPost) {
	owner, err := s.store.GetUserByID(ctx, post.UserID)
	if err != nil {
		s.log.Warn("failed to load post author for notification", zap.String("post_id", post.ID), zap.Error(err))
		return
	}
	s.notifier.SendForumNotification(owner.Email, owner.Username, post.Title, replyNotificationKind)
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
