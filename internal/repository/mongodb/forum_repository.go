package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/domain"
)

func (s *store) GetPosts(ctx context.Context) ([]*domain.ForumPost, error) {
	return findMany[domain.ForumPost](ctx, s, postsCollection, bson.M{}, newestFirst, "get posts")
}

func (s *store) SavePost(ctx context.Context, post *domain.ForumPost) error {
	return s.upsert(ctx, postsCollection, bson.M{"id": post.ID}, post, "save post")
}

func (s *store) GetPostByID(ctx context.Context, id string) (*domain.ForumPost, error) {
	return findOne[domain.ForumPost](ctx, s, postsCollection, bson.M{"id": id}, "get post")
}

func (s *store) GetPostsByCategory(ctx context.Context, category string) ([]*domain.ForumPost, error) {
	return findMany[domain.ForumPost](ctx, s, postsCollection, bson.M{"category": category}, newestFirst, "get posts by category")
}

func (s *store) GetPostsByUser(ctx context.Context, userID string) ([]*domain.ForumPost, error) {
	return findMany[domain.ForumPost](ctx, s, postsCollection, bson.M{"userId": userID}, newestFirst, "get posts by user")
}

// GetReplies returns the replies of a post, oldest first.
func (s *store) GetReplies(ctx context.Context, postID string) ([]*domain.ForumReply, error) {
	return findMany[domain.ForumReply](ctx, s, repliesCollection, bson.M{"postId": postID}, oldestFirst, "get replies")
}

func (s *store) SaveReply(ctx context.Context, reply *domain.ForumReply) error {
	return s.upsert(ctx, repliesCollection, bson.M{"id": reply.ID}, reply, "save reply")
}

func (s *store) GetReplyByID(ctx context.Context, id string) (*domain.ForumReply, error) {
	return findOne[domain.ForumReply](ctx, s, repliesCollection, bson.M{"id": id}, "get reply")
}
