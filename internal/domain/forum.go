package domain

import (
	"context"
	"encoding/json"
	"strings"
	"time"
)

var Categories = []string{"Love Letters", "Memories", "Thoughts & Quotes", "Future Dreams", "Open Talks"}

var Moods = []string{"Happy", "Hopeful", "Sentimental", "Thoughtful", "Excited"}

func ValidCategory(category string) bool {
	return contains(Categories, category)
}

func ValidMood(mood string) bool {
	return contains(Moods, mood)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

type PostReaction struct {
	UserID    string    `json:"userId" bson:"userId"`
	Username  string    `json:"username" bson:"username"`
	Emoji     string    `json:"emoji" bson:"emoji"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type ForumPost struct {
	ID        string         `json:"id" bson:"id"`
	UserID    string         `json:"userId" bson:"userId"`
	Username  string         `json:"username" bson:"username"`
	Title     string         `json:"title" bson:"title"`
	Content   string         `json:"content" bson:"content"`
	Category  string         `json:"category" bson:"category"`
	Tags      []string       `json:"tags" bson:"tags"`
	Mood      string         `json:"mood,omitempty" bson:"mood,omitempty"`
	Likes     int            `json:"likes" bson:"likes"`
	Replies   int            `json:"replies" bson:"replies"`
	Views     int            `json:"views" bson:"views"`
	SeenBy    []string       `json:"seenBy" bson:"seenBy"`
	Shares    int            `json:"shares" bson:"shares"`
	Reactions []PostReaction `json:"reactions" bson:"reactions"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updatedAt"`
}

type ForumReply struct {
	ID        string         `json:"id" bson:"id"`
	PostID    string         `json:"postId" bson:"postId"`
	UserID    string         `json:"userId" bson:"userId"`
	Username  string         `json:"username" bson:"username"`
	Content   string         `json:"content" bson:"content"`
	Likes     int            `json:"likes" bson:"likes"`
	Reactions []PostReaction `json:"reactions" bson:"reactions"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// Tags accepts either a JSON array of strings or one comma-separated string.
type Tags []string

func (t *Tags) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = normalizeTags(list)
		return nil
	}
	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	*t = normalizeTags(strings.Split(joined, ","))
	return nil
}

func normalizeTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	for _, tag := range raw {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

type CreatePostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Tags     Tags   `json:"tags"`
	Mood     string `json:"mood,omitempty"`
}

type ReactRequest struct {
	Emoji string `json:"emoji"`
}

type ViewRequest struct {
	UserID string `json:"userId,omitempty"`
}

type CreateReplyRequest struct {
	Content string `json:"content"`
}

type PostFilter struct {
	Category string
	UserID   string
}

type ViewResult struct {
	Success   bool `json:"success"`
	Views     int  `json:"views"`
	SeenCount int  `json:"seenCount"`
}

type PostRepository interface {
	GetPosts(ctx context.Context) ([]*ForumPost, error)
	SavePost(ctx context.Context, post *ForumPost) error
	GetPostByID(ctx context.Context, id string) (*ForumPost, error)
	GetPostsByCategory(ctx context.Context, category string) ([]*ForumPost, error)
	GetPostsByUser(ctx context.Context, userID string) ([]*ForumPost, error)
}

type ReplyRepository interface {
	GetReplies(ctx context.Context, postID string) ([]*ForumReply, error)
	SaveReply(ctx context.Context, reply *ForumReply) error
	GetReplyByID(ctx context.Context, id string) (*ForumReply, error)
}

type ForumService interface {
	ListPosts(ctx context.Context, filter PostFilter) ([]*ForumPost, error)
	CreatePost(ctx context.Context, author *User, req CreatePostRequest) (*ForumPost, error)
	ReactToPost(ctx context.Context, user *User, postID string, req ReactRequest) ([]PostReaction, error)
	ReactToReply(ctx context.Context, user *User, replyID string, req ReactRequest) ([]PostReaction, error)
	ViewPost(ctx context.Context, postID string, req ViewRequest) (*ViewResult, error)
	SharePost(ctx context.Context, postID string) (int, error)
	ListReplies(ctx context.Context, postID string) ([]*ForumReply, error)
	CreateReply(ctx context.Context, author *User, postID string, req CreateReplyRequest) (*ForumReply, error)
}
