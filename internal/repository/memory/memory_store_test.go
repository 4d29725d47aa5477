package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/domain"
)

func TestStore_UserLookupIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.SaveUser(ctx, &domain.User{ID: "u1", Username: "Alice", Email: "Alice@Example.com"}))

	u, err := s.GetUserByEmail(ctx, "alice@example.COM")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	u, err = s.GetUserByUsername(ctx, "ALICE")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	_, err = s.GetUserByUsername(ctx, "alic")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_SaveUserUpserts(t *testing.T) {
	ctx := context.Background()
	s := New()
	u := &domain.User{ID: "u1", Username: "alice", PostCount: 1}
	require.NoError(t, s.SaveUser(ctx, u))

	u.PostCount = 2
	require.NoError(t, s.SaveUser(ctx, u))

	users, err := s.GetUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, 2, users[0].PostCount)
}

func TestStore_UpdateUserOnlineStatus(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.SaveUser(ctx, &domain.User{ID: "u1", Username: "alice"}))

	seen := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.UpdateUserOnlineStatus(ctx, "u1", true, seen))
	u, err := s.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, u.IsOnline)
	assert.Equal(t, seen, u.LastSeen)

	err = s.UpdateUserOnlineStatus(ctx, "ghost", true, seen)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.SavePost(ctx, &domain.ForumPost{ID: "p1", SeenBy: []string{"a"}}))

	p, err := s.GetPostByID(ctx, "p1")
	require.NoError(t, err)
	p.SeenBy = append(p.SeenBy, "b")
	p.Views = 10

	again, err := s.GetPostByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, again.SeenBy)
	assert.Zero(t, again.Views)
}

func TestStore_SessionExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := New(WithClock(func() time.Time { return now }))

	require.NoError(t, s.SaveSession(ctx, &domain.Session{ID: "s1", Token: "live", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, s.SaveSession(ctx, &domain.Session{ID: "s2", Token: "dead", ExpiresAt: now.Add(-time.Hour)}))

	_, err := s.GetSessionByToken(ctx, "live")
	assert.NoError(t, err)
	_, err = s.GetSessionByToken(ctx, "dead")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	n, err := s.DeleteExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, s.DeleteSession(ctx, "live"))
	_, err = s.GetSessionByToken(ctx, "live")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_PostOrdering(t *testing.T) {
	ctx := context.Background()
	s := New()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.SavePost(ctx, &domain.ForumPost{ID: "old", Category: "Memories", UserID: "u1", CreatedAt: base}))
	require.NoError(t, s.SavePost(ctx, &domain.ForumPost{ID: "new", Category: "Love Letters", UserID: "u1", CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, s.SavePost(ctx, &domain.ForumPost{ID: "mid", Category: "Memories", UserID: "u2", CreatedAt: base.Add(time.Minute)}))

	posts, err := s.GetPosts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "mid", "old"}, postIDs(posts))

	posts, err = s.GetPostsByCategory(ctx, "Memories")
	require.NoError(t, err)
	assert.Equal(t, []string{"mid", "old"}, postIDs(posts))

	posts, err = s.GetPostsByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "old"}, postIDs(posts))
}

func TestStore_Conversation(t *testing.T) {
	ctx := context.Background()
	s := New()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	msgs := []*domain.PrivateMessage{
		{ID: "m2", SenderID: "b", ReceiverID: "a", CreatedAt: base.Add(time.Minute)},
		{ID: "m1", SenderID: "a", ReceiverID: "b", CreatedAt: base},
		{ID: "m3", SenderID: "a", ReceiverID: "c", CreatedAt: base},
	}
	for _, m := range msgs {
		require.NoError(t, s.SaveMessage(ctx, m))
	}

	conv, err := s.GetMessages(ctx, "a", "b")
	require.NoError(t, err)
	require.Len(t, conv, 2)
	assert.Equal(t, "m1", conv[0].ID)
	assert.Equal(t, "m2", conv[1].ID)

	n, err := s.GetUnreadCount(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, s.MarkMessageAsRead(ctx, "m2"))
	n, err = s.GetUnreadCount(ctx, "a")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStore_Offline(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.SetOffline(true)

	_, err := s.GetUserByEmail(ctx, "a@x.com")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.ErrorIs(t, s.SavePost(ctx, &domain.ForumPost{ID: "p"}), domain.ErrStoreUnavailable)
	assert.ErrorIs(t, s.Ping(ctx), domain.ErrStoreUnavailable)

	s.SetOffline(false)
	assert.NoError(t, s.Ping(ctx))
}

func TestStore_Stats(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.SaveUser(ctx, &domain.User{ID: "u1"}))
	require.NoError(t, s.SaveAlbum(ctx, &domain.GalleryAlbum{ID: "a1"}))
	require.NoError(t, s.SaveReply(ctx, &domain.ForumReply{ID: "r1"}))

	stats, err := s.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{Users: 1, Replies: 1, Albums: 1}, *stats)

	require.NoError(t, s.DeleteAlbum(ctx, "a1"))
	_, err = s.GetAlbumByID(ctx, "a1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func postIDs(posts []*domain.ForumPost) []string {
	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}

func TestThrottle(t *testing.T) {
	ctx := context.Background()
	throttle := NewThrottle(3, 15*time.Minute)

	for i := 0; i < 3; i++ {
		ok, err := throttle.Allow(ctx, "a@x.com")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := throttle.Allow(ctx, "a@x.com")
	assert.False(t, ok)

	ok, _ = throttle.Allow(ctx, "b@x.com")
	assert.True(t, ok)

	unlimited := NewThrottle(0, time.Minute)
	for i := 0; i < 10; i++ {
		ok, _ := unlimited.Allow(ctx, "a@x.com")
		assert.True(t, ok)
	}
}
