package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/domain"
)

// GetUsers returns every user document.
func (s *store) GetUsers(ctx context.Context) ([]*domain.User, error) {
	return findMany[domain.User](ctx, s, usersCollection, bson.M{}, oldestFirst, "get users")
}

// SaveUser inserts or replaces the user keyed by its id.
func (s *store) SaveUser(ctx context.Context, user *domain.User) error {
	return s.upsert(ctx, usersCollection, bson.M{"id": user.ID}, user, "save user")
}

// GetUserByID retrieves a user by id.
func (s *store) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return findOne[domain.User](ctx, s, usersCollection, bson.M{"id": id}, "get user")
}

// GetUserByEmail retrieves a user by email, ignoring case.
func (s *store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return findOne[domain.User](ctx, s, usersCollection, bson.M{"email": exactFold(email)}, "get user by email")
}

// GetUserByUsername retrieves a user by username, ignoring case.
func (s *store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return findOne[domain.User](ctx, s, usersCollection, bson.M{"username": exactFold(username)}, "get user by username")
}

func (s *store) GetOnlineUsers(ctx context.Context) ([]*domain.User, error) {
	return findMany[domain.User](ctx, s, usersCollection, bson.M{"isOnline": true}, bson.D{{Key: "username", Value: 1}}, "get online users")
}

func (s *store) UpdateUserOnlineStatus(ctx context.Context, userID string, isOnline bool, lastSeen time.Time) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()
	update := bson.M{"$set": bson.M{"isOnline": isOnline, "lastSeen": lastSeen}}
	res, err := s.db.Collection(usersCollection).UpdateOne(ctx, bson.M{"id": userID}, update)
	if err != nil {
		return unavailable("update online status", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SaveSession stores a new session.
func (s *store) SaveSession(ctx context.Context, session *domain.Session) error {
	return s.upsert(ctx, sessionsCollection, bson.M{"token": session.Token}, session, "save session")
}

// GetSessionByToken returns the session only while it has not expired.
func (s *store) GetSessionByToken(ctx context.Context, token string) (*domain.Session, error) {
	filter := bson.M{"token": token, "expiresAt": bson.M{"$gt": time.Now()}}
	return findOne[domain.Session](ctx, s, sessionsCollection, filter, "get session")
}

func (s *store) DeleteSession(ctx context.Context, token string) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()
	if _, err := s.db.Collection(sessionsCollection).DeleteOne(ctx, bson.M{"token": token}); err != nil {
		return unavailable("delete session", err)
	}
	return nil
}

// DeleteExpiredSessions removes sessions the TTL index has not reaped yet.
func (s *store) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()
	res, err := s.db.Collection(sessionsCollection).DeleteMany(ctx, bson.M{"expiresAt": bson.M{"$lt": time.Now()}})
	if err != nil {
		return 0, unavailable("delete expired sessions", err)
	}
	return res.DeletedCount, nil
}
