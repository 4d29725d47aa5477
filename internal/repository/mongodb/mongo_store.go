package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/domain"
)

const (
	usersCollection    = "users"
	sessionsCollection = "sessions"
	postsCollection    = "forumPosts"
	repliesCollection  = "forumReplies"
	messagesCollection = "privateMessages"
	typingCollection   = "typingStatuses"
	albumsCollection   = "galleryAlbums"
)

var (
	newestFirst = bson.D{{Key: "createdAt", Value: -1}}
	oldestFirst = bson.D{{Key: "createdAt", Value: 1}}
)

// store implements domain.Store on MongoDB. Documents are addressed by the
// application "id" field; Mongo's _id is never exposed.
type store struct {
	client  *mongo.Client
	db      *mongo.Database
	timeout time.Duration
}

var _ domain.Store = (*store)(nil)

// NewStore connects to uri, verifies the connection and ensures indexes.
func NewStore(ctx context.Context, uri, database string, timeout time.Duration) (domain.Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, unavailable("connect to mongodb", err)
	}
	s := &store{client: client, db: client.Database(database), timeout: timeout}
	if err := s.Ping(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("failed to %s: %w: %w", op, domain.ErrStoreUnavailable, err)
}

func (s *store) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func (s *store) Ping(ctx context.Context) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return unavailable("ping mongodb", err)
	}
	return nil
}

func (s *store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *store) ensureIndexes(ctx context.Context) error {
	caseInsensitive := &options.Collation{Locale: "en", Strength: 2}
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetCollation(caseInsensitive)},
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true).SetCollation(caseInsensitive)},
			{Keys: bson.D{{Key: "isOnline", Value: 1}}},
		},
		sessionsCollection: {
			{Keys: bson.D{{Key: "token", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "userId", Value: 1}}},
			{Keys: bson.D{{Key: "expiresAt", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
		},
		postsCollection: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "userId", Value: 1}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
			{Keys: newestFirst},
		},
		repliesCollection: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "postId", Value: 1}, {Key: "createdAt", Value: 1}}},
		},
		messagesCollection: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "senderId", Value: 1}, {Key: "receiverId", Value: 1}}},
			{Keys: bson.D{{Key: "receiverId", Value: 1}, {Key: "isRead", Value: 1}}},
			{Keys: oldestFirst},
		},
		typingCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		albumsCollection: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "createdBy", Value: 1}}},
			{Keys: newestFirst},
			{Keys: bson.D{{Key: "isPrivate", Value: 1}}},
		},
	}
	for name, models := range indexes {
		ictx, cancel := s.opContext(ctx)
		_, err := s.db.Collection(name).Indexes().CreateMany(ictx, models)
		cancel()
		if err != nil {
			return unavailable("create indexes on "+name, err)
		}
	}
	return nil
}

// upsert replaces the whole document so cleared optional fields are removed.
func (s *store) upsert(ctx context.Context, collection string, filter bson.M, doc any, op string) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()
	_, err := s.db.Collection(collection).ReplaceOne(ctx, filter, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return unavailable(op, err)
	}
	return nil
}

func findOne[T any](ctx context.Context, s *store, collection string, filter bson.M, op string) (*T, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()
	var out T
	err := s.db.Collection(collection).FindOne(ctx, filter).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, unavailable(op, err)
	}
	return &out, nil
}

func findMany[T any](ctx context.Context, s *store, collection string, filter bson.M, sort bson.D, op string) ([]*T, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()
	opts := options.Find()
	if sort != nil {
		opts.SetSort(sort)
	}
	cursor, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, unavailable(op, err)
	}
	out := []*T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, unavailable(op, err)
	}
	return out, nil
}

func (s *store) count(ctx context.Context, collection string, filter bson.M) (int64, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()
	n, err := s.db.Collection(collection).CountDocuments(ctx, filter)
	if err != nil {
		return 0, unavailable("count "+collection, err)
	}
	return n, nil
}

// exactFold matches the whole field value ignoring case, with regex metacharacters quoted.
func exactFold(value string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(value) + "$", Options: "i"}
}

func (s *store) GetStats(ctx context.Context) (*domain.Stats, error) {
	var stats domain.Stats
	targets := []struct {
		collection string
		dst        *int64
	}{
		{usersCollection, &stats.Users},
		{postsCollection, &stats.Posts},
		{repliesCollection, &stats.Replies},
		{messagesCollection, &stats.Messages},
		{albumsCollection, &stats.Albums},
	}
	for _, t := range targets {
		n, err := s.count(ctx, t.collection, bson.M{})
		if err != nil {
			return nil, err
		}
		*t.dst = n
	}
	return &stats, nil
}
