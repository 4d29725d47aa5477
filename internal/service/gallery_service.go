package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/credential"
	"github.com/nazzeldevelopment/nazzel-jean-website/internal/domain"
	"github.com/nazzeldevelopment/nazzel-jean-website/pkg/jwt"
	"github.com/nazzeldevelopment/nazzel-jean-website/pkg/logger"
)

// AlbumTokenTTL is how long an unlocked album stays readable.
const AlbumTokenTTL = time.Hour

type galleryService struct {
	albums domain.AlbumRepository
	tokens jwt.TokenManager
	log    *logger.Logger
	now    func() time.Time
	hash   func(string) (string, error)
	policy *bluemonday.Policy
}

func NewGalleryService(albums domain.AlbumRepository, tokens jwt.TokenManager, log *logger.Logger, opts ...Option) domain.GalleryService {
	o := buildOptions(opts)
	return &galleryService{
		albums: albums,
		tokens: tokens,
		log:    log.WithComponent("gallery"),
		now:    o.now,
		hash:   o.hash,
		policy: bluemonday.StrictPolicy(),
	}
}

// ListAlbums lists every album, or only those created by userID. Private albums are listed without photos.
func (s *galleryService) ListAlbums(ctx context.Context, userID string) ([]*domain.GalleryAlbum, error) {
	var (
		albums []*domain.GalleryAlbum
		err    error
	)
	if userID = strings.TrimSpace(userID); userID != "" {
		albums, err = s.albums.GetAlbumsByUser(ctx, userID)
	} else {
		albums, err = s.albums.GetAlbums(ctx)
	}
	if err != nil {
		return nil, storeError(err)
	}
	for _, a := range albums {
		if a.IsPrivate {
			a.Photos = []domain.GalleryPhoto{}
		}
	}
	return albums, nil
}

func (s *galleryService) CreateAlbum(ctx context.Context, owner *domain.User, req domain.CreateAlbumRequest) (*domain.GalleryAlbum, error) {
	title := plainText(s.policy, req.Title)
	if title == "" {
		return nil, domain.NewBadRequest("Title is required")
	}
	now := s.now()
	album := &domain.GalleryAlbum{
		ID:          uuid.NewString(),
		Title:       title,
		Description: plainText(s.policy, req.Description),
		IsPrivate:   req.IsPrivate,
		CoverImage:  strings.TrimSpace(req.CoverImage),
		Photos:      []domain.GalleryPhoto{},
		CreatedBy:   owner.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.IsPrivate && req.Password != "" {
		hashed, err := s.hash(req.Password)
		if err != nil {
			return nil, err
		}
		album.Password = hashed
	}
	if err := s.albums.SaveAlbum(ctx, album); err != nil {
		return nil, storeError(err)
	}
	s.log.Info("album created", zap.String("album_id", album.ID), zap.String("user_id", owner.ID))
	return album, nil
}

func (s *galleryService) GetAlbum(ctx context.Context, viewer *domain.User, albumID, albumToken string) (*domain.GalleryAlbum, error) {
	album, err := s.getAlbum(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if !album.IsPrivate || (viewer != nil && viewer.ID == album.CreatedBy) {
		return album, nil
	}
	if albumToken != "" {
		if _, err := s.tokens.ValidateAlbumToken(albumToken, album.ID); err == nil {
			return album, nil
		}
	}
	return nil, domain.NewForbidden("Album is locked")
}

func (s *galleryService) UnlockAlbum(ctx context.Context, albumID string, req domain.UnlockAlbumRequest) (*domain.AlbumAccess, error) {
	album, err := s.getAlbum(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if album.HasPassword() && !credential.VerifyPassword(req.Password, album.Password) {
		return nil, domain.NewUnauthorized("Invalid album password")
	}
	token, expiresAt, err := s.tokens.GenerateAlbumToken(album.ID, "", AlbumTokenTTL)
	if err != nil {
		return nil, err
	}
	return &domain.AlbumAccess{Success: true, AlbumToken: token, ExpiresAt: expiresAt}, nil
}

func (s *galleryService) AddPhoto(ctx context.Context, owner *domain.User, albumID string, req domain.AddPhotoRequest) (*domain.GalleryAlbum, error) {
	url := strings.TrimSpace(req.URL)
	if url == "" {
		return nil, domain.NewBadRequest("Photo URL is required")
	}
	album, err := s.ownedAlbum(ctx, owner, albumID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	album.Photos = append(album.Photos, domain.GalleryPhoto{
		ID:         uuid.NewString(),
		AlbumID:    album.ID,
		URL:        url,
		Caption:    plainText(s.policy, req.Caption),
		UploadedBy: owner.ID,
		UploadedAt: now,
	})
	album.UpdatedAt = now
	if err := s.albums.SaveAlbum(ctx, album); err != nil {
		return nil, storeError(err)
	}
	return album, nil
}

func (s *galleryService) DeleteAlbum(ctx context.Context, owner *domain.User, albumID string) error {
	album, err := s.ownedAlbum(ctx, owner, albumID)
	if err != nil {
		return err
	}
	if err := s.albums.DeleteAlbum(ctx, album.ID); err != nil {
		if domain.IsNotFound(err) {
			return domain.NewNotFound("Album not found")
		}
		return storeError(err)
	}
	s.log.Info("album deleted", zap.String("album_id", album.ID), zap.String("user_id", owner.ID))
	return nil
}

func (s *galleryService) getAlbum(ctx context.Context, albumID string) (*domain.GalleryAlbum, error) {
	album, err := s.albums.GetAlbumByID(ctx, albumID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewNotFound("Album not found")
		}
		return nil, storeError(err)
	}
	return album, nil
}

// ownedAlbum loads an album the user may modify: its creator or an admin.
func (s *galleryService) ownedAlbum(ctx context.Context, user *domain.User, albumID string) (*domain.GalleryAlbum, error) {
	album, err := s.getAlbum(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if album.CreatedBy != user.ID && user.Role != domain.RoleAdmin {
		return nil, domain.NewForbidden("Forbidden")
	}
	return album, nil
}
