package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlbumToken_RoundTrip(t *testing.T) {
	tm := NewTokenManager("secret")

	token, expiresAt, err := tm.GenerateAlbumToken("album-1", "user-1", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := tm.ValidateAlbumToken(token, "album-1")
	require.NoError(t, err)
	assert.Equal(t, "album-1", claims.AlbumID)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestAlbumToken_WrongAlbum(t *testing.T) {
	tm := NewTokenManager("secret")
	token, _, err := tm.GenerateAlbumToken("album-1", "user-1", time.Hour)
	require.NoError(t, err)

	_, err = tm.ValidateAlbumToken(token, "album-2")
	assert.ErrorIs(t, err, ErrTokenScope)
}

func TestAlbumToken_Expired(t *testing.T) {
	tm := &tokenManager{secretKey: []byte("secret"), now: time.Now}
	tm.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := tm.GenerateAlbumToken("album-1", "user-1", time.Hour)
	require.NoError(t, err)

	tm.now = time.Now
	_, err = tm.ValidateAlbumToken(token, "album-1")
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestAlbumToken_WrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret").GenerateAlbumToken("album-1", "user-1", time.Hour)
	require.NoError(t, err)

	_, err = NewTokenManager("other").ValidateAlbumToken(token, "album-1")
	assert.Error(t, err)
}
