package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// ErrTokenExpired is returned when a token has expired.
var ErrTokenExpired = errors.New("token is expired")

// ErrTokenScope is returned when a valid token was issued for a different album.
var ErrTokenScope = errors.New("token does not grant access to this album")

// AlbumClaims grants its bearer read access to one password-protected album.
type AlbumClaims struct {
	AlbumID string `json:"album_id"`
	UserID  string `json:"user_id"`
	jwtlib.RegisteredClaims
}

// TokenManager issues and validates album access tokens.
type TokenManager interface {
	GenerateAlbumToken(albumID, userID string, ttl time.Duration) (string, time.Time, error)
	ValidateAlbumToken(tokenString, albumID string) (*AlbumClaims, error)
}

// NewTokenManager creates a new HS256 TokenManager with the given secret key.
func NewTokenManager(secretKey string) TokenManager {
	return &tokenManager{secretKey: []byte(secretKey), now: time.Now}
}

type tokenManager struct {
	secretKey []byte
	now       func() time.Time
}

// GenerateAlbumToken signs a token for albumID and returns it with its expiry.
func (j *tokenManager) GenerateAlbumToken(albumID, userID string, ttl time.Duration) (string, time.Time, error) {
	issued := j.now()
	expiresAt := issued.Add(ttl)
	claims := AlbumClaims{
		AlbumID: albumID,
		UserID:  userID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwtlib.NewNumericDate(expiresAt),
			IssuedAt:  jwtlib.NewNumericDate(issued),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateAlbumToken parses the token and checks it was issued for albumID.
func (j *tokenManager) ValidateAlbumToken(tokenString, albumID string) (*AlbumClaims, error) {
	token, err := jwtlib.ParseWithClaims(tokenString, &AlbumClaims{}, func(token *jwtlib.Token) (interface{}, error) {
		return j.secretKey, nil
	}, jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}), jwtlib.WithTimeFunc(j.now))
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, err
	}
	claims, ok := token.Claims.(*AlbumClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.AlbumID != albumID {
		return nil, ErrTokenScope
	}
	return claims, nil
}
