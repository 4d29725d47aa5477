package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/domain"
	"github.com/nazzeldevelopment/nazzel-jean-website/internal/repository/memory"
	"github.com/nazzeldevelopment/nazzel-jean-website/pkg/logger"
)

type forumFixture struct {
	clock    *clock
	store    *memory.Store
	notifier *recordingNotifier
	svc      domain.ForumService
	alice    *domain.User
	bob      *domain.User
}

func newForumFixture(t *testing.T) *forumFixture {
	t.Helper()
	c := newClock()
	store := newMemoryStore(c)
	n := &recordingNotifier{}
	return &forumFixture{
		clock:    c,
		store:    store,
		notifier: n,
		svc:      NewForumService(store, n, logger.Nop(), WithClock(c.Now)),
		alice:    seedUser(t, store, "alice-id", "alice", "alice@example.com", "pw"),
		bob:      seedUser(t, store, "bob-id", "bob", "bob@example.com", "pw"),
	}
}

func (f *forumFixture) createPost(t *testing.T, author *domain.User) *domain.ForumPost {
	t.Helper()
	post, err := f.svc.CreatePost(context.Background(), author, domain.CreatePostRequest{
		Title:    "First date",
		Content:  "We went to the beach.",
		Category: "Memories",
	})
	require.NoError(t, err)
	return post
}

func TestForum_CreatePost(t *testing.T) {
	ctx := context.Background()
	f := newForumFixture(t)

	post, err := f.svc.CreatePost(ctx, f.alice, domain.CreatePostRequest{
		Title:    "<b>Our</b> anniversary",
		Content:  `<p>One year!</p><script>alert("x")</script>`,
		Category: "Love Letters",
		Tags:     domain.Tags{" love ", "", "anniversary"},
		Mood:     "Happy",
	})
	require.NoError(t, err)
	assert.Equal(t, "Our anniversary", post.Title)
	assert.Equal(t, "<p>One year!</p>", post.Content)
	assert.Equal(t, []string{"love", "anniversary"}, post.Tags)
	assert.Equal(t, "alice", post.Username)
	assert.Empty(t, post.SeenBy)
	assert.Empty(t, post.Reactions)

	u, err := f.store.GetUserByID(ctx, f.alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, u.PostCount)
	assert.Equal(t, []string{"admin_log"}, f.notifier.kinds())
}

func TestForum_PlainTextFieldsAreNotEscaped(t *testing.T) {
	f := newForumFixture(t)
	post, err := f.svc.CreatePost(context.Background(), f.alice, domain.CreatePostRequest{
		Title:    "Tom & Jerry <i>forever</i>",
		Content:  "<p>Cats & mice</p>",
		Category: "Memories",
		Tags:     domain.Tags{"R&B", "<b>90's</b>"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Tom & Jerry forever", post.Title)
	assert.Equal(t, []string{"R&B", "90's"}, post.Tags)
}

func TestForum_CreatePostValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     domain.CreatePostRequest
		message string
	}{
		{"missing title", domain.CreatePostRequest{Content: "c", Category: "Memories"}, "Title, content, and category are required"},
		{"content only markup", domain.CreatePostRequest{Title: "t", Content: "<script></script>", Category: "Memories"}, "Title, content, and category are required"},
		{"unknown category", domain.CreatePostRequest{Title: "t", Content: "c", Category: "Gossip"}, "Invalid category"},
		{"unknown mood", domain.CreatePostRequest{Title: "t", Content: "c", Category: "Memories", Mood: "Grumpy"}, "Invalid mood"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newForumFixture(t)
			_, err := f.svc.CreatePost(context.Background(), f.alice, tt.req)
			requireAppError(t, err, http.StatusBadRequest, tt.message)
		})
	}
}

func TestForum_ListPostsFilters(t *testing.T) {
	ctx := context.Background()
	f := newForumFixture(t)
	first := f.createPost(t, f.alice)
	f.clock.Advance(time.Minute)
	second, err := f.svc.CreatePost(ctx, f.bob, domain.CreatePostRequest{Title: "Plans", Content: "Paris", Category: "Future Dreams"})
	require.NoError(t, err)
	f.clock.Advance(time.Minute)
	third, err := f.svc.CreatePost(ctx, f.bob, domain.CreatePostRequest{Title: "Trip", Content: "Rome", Category: "Memories"})
	require.NoError(t, err)

	all, err := f.svc.ListPosts(ctx, domain.PostFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{third.ID, second.ID, first.ID}, postIDsOf(all))

	memories, err := f.svc.ListPosts(ctx, domain.PostFilter{Category: "Memories"})
	require.NoError(t, err)
	assert.Equal(t, []string{third.ID, first.ID}, postIDsOf(memories))

	bobs, err := f.svc.ListPosts(ctx, domain.PostFilter{UserID: f.bob.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{third.ID, second.ID}, postIDsOf(bobs))

	both, err := f.svc.ListPosts(ctx, domain.PostFilter{Category: "Memories", UserID: f.bob.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{third.ID}, postIDsOf(both))
}

func TestForum_ReactionToggleIsIdempotentPerPair(t *testing.T) {
	ctx := context.Background()
	f := newForumFixture(t)
	post := f.createPost(t, f.alice)

	_, err := f.svc.ReactToPost(ctx, f.bob, post.ID, domain.ReactRequest{})
	requireAppError(t, err, http.StatusBadRequest, "Emoji is required")
	_, err = f.svc.ReactToPost(ctx, f.bob, "missing", domain.ReactRequest{Emoji: "❤️"})
	requireAppError(t, err, http.StatusNotFound, "Post not found")

	reactions, err := f.svc.ReactToPost(ctx, f.bob, post.ID, domain.ReactRequest{Emoji: "❤️"})
	require.NoError(t, err)
	require.Len(t, reactions, 1)
	assert.Equal(t, "bob", reactions[0].Username)

	reactions, err = f.svc.ReactToPost(ctx, f.alice, post.ID, domain.ReactRequest{Emoji: "❤️"})
	require.NoError(t, err)
	assert.Len(t, reactions, 2)

	reactions, err = f.svc.ReactToPost(ctx, f.bob, post.ID, domain.ReactRequest{Emoji: "😂"})
	require.NoError(t, err)
	assert.Len(t, reactions, 3)

	// Toggling the same pair twice returns to the prior state.
	reactions, err = f.svc.ReactToPost(ctx, f.bob, post.ID, domain.ReactRequest{Emoji: "❤️"})
	require.NoError(t, err)
	assert.Len(t, reactions, 2)
	reactions, err = f.svc.ReactToPost(ctx, f.bob, post.ID, domain.ReactRequest{Emoji: "❤️"})
	require.NoError(t, err)
	assert.Len(t, reactions, 3)

	pairs := map[string]int{}
	for _, r := range reactions {
		pairs[r.UserID+"|"+r.Emoji]++
	}
	for pair, n := range pairs {
		assert.Equal(t, 1, n, pair)
	}

	stored, err := f.store.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Likes)
}

func TestForum_ReactToReply(t *testing.T) {
	ctx := context.Background()
	f := newForumFixture(t)
	post := f.createPost(t, f.alice)
	reply, err := f.svc.CreateReply(ctx, f.bob, post.ID, domain.CreateReplyRequest{Content: "So sweet"})
	require.NoError(t, err)

	_, err = f.svc.ReactToReply(ctx, f.alice, "missing", domain.ReactRequest{Emoji: "👍"})
	requireAppError(t, err, http.StatusNotFound, "Reply not found")

	reactions, err := f.svc.ReactToReply(ctx, f.alice, reply.ID, domain.ReactRequest{Emoji: "👍"})
	require.NoError(t, err)
	assert.Len(t, reactions, 1)
	reactions, err = f.svc.ReactToReply(ctx, f.alice, reply.ID, domain.ReactRequest{Emoji: "👍"})
	require.NoError(t, err)
	assert.Empty(t, reactions)
}

func TestForum_ViewsAndSeenBy(t *testing.T) {
	ctx := context.Background()
	f := newForumFixture(t)
	post := f.createPost(t, f.alice)

	views := []string{"bob-id", "bob-id", "", "alice-id", "bob-id"}
	var res *domain.ViewResult
	var err error
	for _, viewer := range views {
		res, err = f.svc.ViewPost(ctx, post.ID, domain.ViewRequest{UserID: viewer})
		require.NoError(t, err)
	}
	assert.True(t, res.Success)
	assert.Equal(t, 5, res.Views)
	assert.Equal(t, 2, res.SeenCount)
	assert.GreaterOrEqual(t, res.Views, res.SeenCount)

	_, err = f.svc.ViewPost(ctx, "missing", domain.ViewRequest{})
	requireAppError(t, err, http.StatusNotFound, "Post not found")
}

func TestForum_Share(t *testing.T) {
	ctx := context.Background()
	f := newForumFixture(t)
	post := f.createPost(t, f.alice)

	n, err := f.svc.SharePost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = f.svc.SharePost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestForum_Replies(t *testing.T) {
	ctx := context.Background()
	f := newForumFixture(t)
	post := f.createPost(t, f.alice)
	f.notifier.reset()

	_, err := f.svc.CreateReply(ctx, f.bob, post.ID, domain.CreateReplyRequest{Content: "  "})
	requireAppError(t, err, http.StatusBadRequest, "Content is required")
	_, err = f.svc.CreateReply(ctx, f.bob, "missing", domain.CreateReplyRequest{Content: "hi"})
	requireAppError(t, err, http.StatusNotFound, "Post not found")

	f.clock.Advance(time.Minute)
	first, err := f.svc.CreateReply(ctx, f.bob, post.ID, domain.CreateReplyRequest{Content: "Lovely"})
	require.NoError(t, err)
	sent, ok := f.notifier.last("forum")
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", sent.to)
	assert.Equal(t, []string{"alice", "First date", "New Reply"}, sent.args)

	// Replying to your own post does not notify.
	f.notifier.reset()
	f.clock.Advance(time.Minute)
	second, err := f.svc.CreateReply(ctx, f.alice, post.ID, domain.CreateReplyRequest{Content: "Thanks!"})
	require.NoError(t, err)
	assert.Empty(t, f.notifier.kinds())

	replies, err := f.svc.ListReplies(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, replies, 2)
	assert.Equal(t, first.ID, replies[0].ID)
	assert.Equal(t, second.ID, replies[1].ID)

	stored, err := f.store.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Replies)
	assert.Equal(t, f.clock.Now(), stored.UpdatedAt)
}

func TestForum_StoreUnavailable(t *testing.T) {
	ctx := context.Background()
	f := newForumFixture(t)
	post := f.createPost(t, f.alice)
	f.store.SetOffline(true)

	_, err := f.svc.ListPosts(ctx, domain.PostFilter{})
	requireAppError(t, err, http.StatusServiceUnavailable, "Database unavailable")
	_, err = f.svc.ViewPost(ctx, post.ID, domain.ViewRequest{})
	requireAppError(t, err, http.StatusServiceUnavailable, "Database unavailable")
}

func postIDsOf(posts []*domain.ForumPost) []string {
	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}
