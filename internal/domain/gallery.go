package domain

import (
	"context"
	"time"
)

type GalleryPhoto struct {
	ID         string    `json:"id" bson:"id"`
	AlbumID    string    `json:"albumId" bson:"albumId"`
	URL        string    `json:"url" bson:"url"`
	Caption    string    `json:"caption,omitempty" bson:"caption,omitempty"`
	UploadedBy string    `json:"uploadedBy" bson:"uploadedBy"`
	UploadedAt time.Time `json:"uploadedAt" bson:"uploadedAt"`
}

type GalleryAlbum struct {
	ID          string         `json:"id" bson:"id"`
	Title       string         `json:"title" bson:"title"`
	Description string         `json:"description,omitempty" bson:"description,omitempty"`
	IsPrivate   bool           `json:"isPrivate" bson:"isPrivate"`
	Password    string         `json:"-" bson:"password,omitempty"` // argon2id encoded
	CoverImage  string         `json:"coverImage,omitempty" bson:"coverImage,omitempty"`
	Photos      []GalleryPhoto `json:"photos" bson:"photos"`
	CreatedBy   string         `json:"createdBy" bson:"createdBy"`
	CreatedAt   time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// HasPassword reports whether unlocking requires a password.
func (a *GalleryAlbum) HasPassword() bool {
	return a.Password != ""
}

type CreateAlbumRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	IsPrivate   bool   `json:"isPrivate"`
	Password    string `json:"password,omitempty"`
	CoverImage  string `json:"coverImage,omitempty"`
}

type AddPhotoRequest struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

type UnlockAlbumRequest struct {
	Password string `json:"password"`
}

type AlbumAccess struct {
	Success    bool      `json:"success"`
	AlbumToken string    `json:"albumToken"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

type AlbumRepository interface {
	GetAlbums(ctx context.Context) ([]*GalleryAlbum, error)
	SaveAlbum(ctx context.Context, album *GalleryAlbum) error
	GetAlbumByID(ctx context.Context, id string) (*GalleryAlbum, error)
	DeleteAlbum(ctx context.Context, id string) error
	GetAlbumsByUser(ctx context.Context, userID string) ([]*GalleryAlbum, error)
}

type GalleryService interface {
	ListAlbums(ctx context.Context, userID string) ([]*GalleryAlbum, error)
	CreateAlbum(ctx context.Context, owner *User, req CreateAlbumRequest) (*GalleryAlbum, error)
	// GetAlbum returns a private album only to its owner or to a holder of a valid album token.
	GetAlbum(ctx context.Context, viewer *User, albumID, albumToken string) (*GalleryAlbum, error)
	UnlockAlbum(ctx context.Context, albumID string, req UnlockAlbumRequest) (*AlbumAccess, error)
	AddPhoto(ctx context.Context, owner *User, albumID string, req AddPhotoRequest) (*GalleryAlbum, error)
	DeleteAlbum(ctx context.Context, owner *User, albumID string) error
}
