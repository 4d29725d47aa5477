package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/domain"
	"github.com/nazzeldevelopment/nazzel-jean-website/pkg/logger"
)

func TestUsers_Profile(t *testing.T) {
	ctx := context.Background()
	c := newClock()
	store := newMemoryStore(c)
	seedUser(t, store, "alice-id", "alice", "alice@example.com", "pw")
	svc := NewUserService(store, logger.Nop(), WithClock(c.Now))

	_, err := svc.GetProfile(ctx, "")
	requireAppError(t, err, http.StatusBadRequest, "User ID is required")
	_, err = svc.GetProfile(ctx, "ghost")
	requireAppError(t, err, http.StatusNotFound, "User not found")

	bio := "<i>Romantic</i> at heart"
	status := "Engaged"
	updated, err := svc.UpdateProfile(ctx, "alice-id", domain.UpdateProfileRequest{Bio: &bio, RelationshipStatus: &status})
	require.NoError(t, err)
	assert.Equal(t, "Romantic at heart", updated.Bio)
	assert.Equal(t, "Engaged", updated.RelationshipStatus)

	// Fields left out of the request are untouched.
	location := "Manila"
	updated, err = svc.UpdateProfile(ctx, "alice-id", domain.UpdateProfileRequest{Location: &location})
	require.NoError(t, err)
	assert.Equal(t, "Manila", updated.Location)
	assert.Equal(t, "Romantic at heart", updated.Bio)

	bio = "Fish & chips <3"
	updated, err = svc.UpdateProfile(ctx, "alice-id", domain.UpdateProfileRequest{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "Fish & chips <3", updated.Bio)
	bio = "Romantic at heart"
	_, err = svc.UpdateProfile(ctx, "alice-id", domain.UpdateProfileRequest{Bio: &bio})
	require.NoError(t, err)

	bad := "It's complicated"
	_, err = svc.UpdateProfile(ctx, "alice-id", domain.UpdateProfileRequest{RelationshipStatus: &bad})
	requireAppError(t, err, http.StatusBadRequest, "Invalid relationship status")

	profile, err := svc.GetProfile(ctx, "alice-id")
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "Manila", profile.Location)
}

func TestUsers_Online(t *testing.T) {
	ctx := context.Background()
	c := newClock()
	store := newMemoryStore(c)
	seedUser(t, store, "alice-id", "alice", "alice@example.com", "pw")
	seedUser(t, store, "bob-id", "bob", "bob@example.com", "pw")
	svc := NewUserService(store, logger.Nop(), WithClock(c.Now))

	require.NoError(t, svc.SetOnline(ctx, "bob-id", true))
	require.NoError(t, svc.SetOnline(ctx, "alice-id", true))
	users, err := svc.GetOnlineUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, c.Now(), users[0].LastSeen)

	require.NoError(t, svc.SetOnline(ctx, "alice-id", false))
	users, err = svc.GetOnlineUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "bob", users[0].Username)

	err = svc.SetOnline(ctx, "ghost", true)
	requireAppError(t, err, http.StatusNotFound, "User not found")
}

func TestUsers_StatsAndSessionPurge(t *testing.T) {
	ctx := context.Background()
	c := newClock()
	store := newMemoryStore(c)
	seedUser(t, store, "alice-id", "alice", "alice@example.com", "pw")
	svc := NewUserService(store, logger.Nop(), WithClock(c.Now))

	require.NoError(t, store.SaveSession(ctx, &domain.Session{ID: "s1", UserID: "alice-id", Token: "t1", ExpiresAt: c.Now().Add(time.Hour)}))
	require.NoError(t, store.SaveSession(ctx, &domain.Session{ID: "s2", UserID: "alice-id", Token: "t2", ExpiresAt: c.Now().Add(2 * time.Hour)}))

	n, err := svc.PurgeExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	c.Advance(90 * time.Minute)
	n, err = svc.PurgeExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Users)

	store.SetOffline(true)
	_, err = svc.GetStats(ctx)
	requireAppError(t, err, http.StatusServiceUnavailable, "Database unavailable")
}
