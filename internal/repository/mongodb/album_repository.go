package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/domain"
)

func (s *store) GetAlbums(ctx context.Context) ([]*domain.GalleryAlbum, error) {
	return findMany[domain.GalleryAlbum](ctx, s, albumsCollection, bson.M{}, newestFirst, "get albums")
}

func (s *store) SaveAlbum(ctx context.Context, album *domain.GalleryAlbum) error {
	return s.upsert(ctx, albumsCollection, bson.M{"id": album.ID}, album, "save album")
}

func (s *store) GetAlbumByID(ctx context.Context, id string) (*domain.GalleryAlbum, error) {
	return findOne[domain.GalleryAlbum](ctx, s, albumsCollection, bson.M{"id": id}, "get album")
}

func (s *store) DeleteAlbum(ctx context.Context, id string) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()
	if _, err := s.db.Collection(albumsCollection).DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return unavailable("delete album", err)
	}
	return nil
}

func (s *store) GetAlbumsByUser(ctx context.Context, userID string) ([]*domain.GalleryAlbum, error) {
	return findMany[domain.GalleryAlbum](ctx, s, albumsCollection, bson.M{"createdBy": userID}, newestFirst, "get albums by user")
}
