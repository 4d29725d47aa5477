// Package memory is an in-process domain.Store for tests and local development.
// State is lost on restart and is not shared between instances.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/domain"
)

type Option func(*Store)

// WithClock overrides the time source used for session expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store keeps every collection in maps keyed by the application id.
type Store struct {
	mu       sync.RWMutex
	now      func() time.Time
	offline  bool
	users    map[string]*domain.User
	sessions map[string]*domain.Session // by token
	posts    map[string]*domain.ForumPost
	replies  map[string]*domain.ForumReply
	messages map[string]*domain.PrivateMessage
	typing   map[string]*domain.TypingStatus // by user id
	albums   map[string]*domain.GalleryAlbum
}

var _ domain.Store = (*Store)(nil)

func New(opts ...Option) *Store {
	s := &Store{
		now:      time.Now,
		users:    make(map[string]*domain.User),
		sessions: make(map[string]*domain.Session),
		posts:    make(map[string]*domain.ForumPost),
		replies:  make(map[string]*domain.ForumReply),
		messages: make(map[string]*domain.PrivateMessage),
		typing:   make(map[string]*domain.TypingStatus),
		albums:   make(map[string]*domain.GalleryAlbum),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetOffline makes every operation fail with domain.ErrStoreUnavailable,
// simulating an unreachable database.
func (s *Store) SetOffline(offline bool) {
	s.mu.Lock()
	s.offline = offline
	s.mu.Unlock()
}

func (s *Store) check(op string) error {
	if s.offline {
		return fmt.Errorf("failed to %s: %w", op, domain.ErrStoreUnavailable)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.check("ping store")
}

func (s *Store) Close(ctx context.Context) error {
	return nil
}

func (s *Store) GetStats(ctx context.Context) (*domain.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check("get stats"); err != nil {
		return nil, err
	}
	return &domain.Stats{
		Users:    int64(len(s.users)),
		Posts:    int64(len(s.posts)),
		Replies:  int64(len(s.replies)),
		Messages: int64(len(s.messages)),
		Albums:   int64(len(s.albums)),
	}, nil
}

// Users

func (s *Store) GetUsers(ctx context.Context) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check("get users"); err != nil {
		return nil, err
	}
	users := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, cloneUser(u))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

func (s *Store) SaveUser(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("save user"); err != nil {
		return err
	}
	s.users[user.ID] = cloneUser(user)
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check("get user"); err != nil {
		return nil, err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneUser(u), nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findUser("get user by email", func(u *domain.User) bool { return strings.EqualFold(u.Email, email) })
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.findUser("get user by username", func(u *domain.User) bool { return strings.EqualFold(u.Username, username) })
}

func (s *Store) findUser(op string, match func(*domain.User) bool) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(op); err != nil {
		return nil, err
	}
	for _, u := range s.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Store) GetOnlineUsers(ctx context.Context) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check("get online users"); err != nil {
		return nil, err
	}
	var users []*domain.User
	for _, u := range s.users {
		if u.IsOnline {
			users = append(users, cloneUser(u))
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (s *Store) UpdateUserOnlineStatus(ctx context.Context, userID string, isOnline bool, lastSeen time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("update online status"); err != nil {
		return err
	}
	u, ok := s.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.IsOnline = isOnline
	u.LastSeen = lastSeen
	return nil
}

// Sessions

func (s *Store) SaveSession(ctx context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("save session"); err != nil {
		return err
	}
	cp := *session
	s.sessions[session.Token] = &cp
	return nil
}

func (s *Store) GetSessionByToken(ctx context.Context, token string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check("get session"); err != nil {
		return nil, err
	}
	session, ok := s.sessions[token]
	if !ok || !session.ExpiresAt.After(s.now()) {
		return nil, domain.ErrNotFound
	}
	cp := *session
	return &cp, nil
}

func (s *Store) DeleteSession(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("delete session"); err != nil {
		return err
	}
	delete(s.sessions, token)
	return nil
}

func (s *Store) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("delete expired sessions"); err != nil {
		return 0, err
	}
	now := s.now()
	var n int64
	for token, session := range s.sessions {
		if session.ExpiresAt.Before(now) {
			delete(s.sessions, token)
			n++
		}
	}
	return n, nil
}

// Forum posts

func (s *Store) GetPosts(ctx context.Context) ([]*domain.ForumPost, error) {
	return s.filterPosts("get posts", func(*domain.ForumPost) bool { return true })
}

func (s *Store) GetPostsByCategory(ctx context.Context, category string) ([]*domain.ForumPost, error) {
	return s.filterPosts("get posts by category", func(p *domain.ForumPost) bool { return p.Category == category })
}

func (s *Store) GetPostsByUser(ctx context.Context, userID string) ([]*domain.ForumPost, error) {
	return s.filterPosts("get posts by user", func(p *domain.ForumPost) bool { return p.UserID == userID })
}

// filterPosts returns matching posts, newest first.
func (s *Store) filterPosts(op string, match func(*domain.ForumPost) bool) ([]*domain.ForumPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(op); err != nil {
		return nil, err
	}
	posts := []*domain.ForumPost{}
	for _, p := range s.posts {
		if match(p) {
			posts = append(posts, clonePost(p))
		}
	}
	sort.SliceStable(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	return posts, nil
}

func (s *Store) SavePost(ctx context.Context, post *domain.ForumPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("save post"); err != nil {
		return err
	}
	s.posts[post.ID] = clonePost(post)
	return nil
}

func (s *Store) GetPostByID(ctx context.Context, id string) (*domain.ForumPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check("get post"); err != nil {
		return nil, err
	}
	p, ok := s.posts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clonePost(p), nil
}

// Forum replies

func (s *Store) GetReplies(ctx context.Context, postID string) ([]*domain.ForumReply, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check("get replies"); err != nil {
		return nil, err
	}
	replies := []*domain.ForumReply{}
	for _, r := range s.replies {
		if r.PostID == postID {
			replies = append(replies, cloneReply(r))
		}
	}
	sort.SliceStable(replies, func(i, j int) bool { return replies[i].CreatedAt.Before(replies[j].CreatedAt) })
	return replies, nil
}

func (s *Store) SaveReply(ctx context.Context, reply *domain.ForumReply) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("save reply"); err != nil {
		return err
	}
	s.replies[reply.ID] = cloneReply(reply)
	return nil
}

func (s *Store) GetReplyByID(ctx context.Context, id string) (*domain.ForumReply, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check("get reply"); err != nil {
		return nil, err
	}
	r, ok := s.replies[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneReply(r), nil
}

// Private messages

func (s *Store) GetMessages(ctx context.Context, userID1, userID2 string) ([]*domain.PrivateMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check("get messages"); err != nil {
		return nil, err
	}
	messages := []*domain.PrivateMessage{}
	for _, m := range s.messages {
		if (m.SenderID == userID1 && m.ReceiverID == userID2) || (m.SenderID == userID2 && m.ReceiverID == userID1) {
			cp := *m
			messages = append(messages, &cp)
		}
	}
	sort.SliceStable(messages, func(i, j int) bool { return messages[i].CreatedAt.Before(messages[j].CreatedAt) })
	return messages, nil
}

func (s *Store) SaveMessage(ctx context.Context, message *domain.PrivateMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("save message"); err != nil {
		return err
	}
	cp := *message
	s.messages[message.ID] = &cp
	return nil
}

func (s *Store) GetMessageByID(ctx context.Context, id string) (*domain.PrivateMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check("get message"); err != nil {
		return nil, err
	}
	m, ok := s.messages[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (s *Store) MarkMessageAsRead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("mark message as read"); err != nil {
		return err
	}
	if m, ok := s.messages[id]; ok {
		m.IsRead = true
	}
	return nil
}

func (s *Store) GetUnreadCount(ctx context.Context, userID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check("get unread count"); err != nil {
		return 0, err
	}
	var n int64
	for _, m := range s.messages {
		if m.ReceiverID == userID && !m.IsRead {
			n++
		}
	}
	return n, nil
}

// Typing status

func (s *Store) GetTypingStatus(ctx context.Context, userID string) (*domain.TypingStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check("get typing status"); err != nil {
		return nil, err
	}
	status, ok := s.typing[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *status
	return &cp, nil
}

func (s *Store) UpdateTypingStatus(ctx context.Context, status *domain.TypingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("update typing status"); err != nil {
		return err
	}
	cp := *status
	s.typing[status.UserID] = &cp
	return nil
}

// Gallery albums

func (s *Store) GetAlbums(ctx context.Context) ([]*domain.GalleryAlbum, error) {
	return s.filterAlbums("get albums", func(*domain.GalleryAlbum) bool { return true })
}

func (s *Store) GetAlbumsByUser(ctx context.Context, userID string) ([]*domain.GalleryAlbum, error) {
	return s.filterAlbums("get albums by user", func(a *domain.GalleryAlbum) bool { return a.CreatedBy == userID })
}

func (s *Store) filterAlbums(op string, match func(*domain.GalleryAlbum) bool) ([]*domain.GalleryAlbum, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(op); err != nil {
		return nil, err
	}
	albums := []*domain.GalleryAlbum{}
	for _, a := range s.albums {
		if match(a) {
			albums = append(albums, cloneAlbum(a))
		}
	}
	sort.SliceStable(albums, func(i, j int) bool { return albums[i].CreatedAt.After(albums[j].CreatedAt) })
	return albums, nil
}

func (s *Store) SaveAlbum(ctx context.Context, album *domain.GalleryAlbum) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("save album"); err != nil {
		return err
	}
	s.albums[album.ID] = cloneAlbum(album)
	return nil
}

func (s *Store) GetAlbumByID(ctx context.Context, id string) (*domain.GalleryAlbum, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check("get album"); err != nil {
		return nil, err
	}
	a, ok := s.albums[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneAlbum(a), nil
}

func (s *Store) DeleteAlbum(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("delete album"); err != nil {
		return err
	}
	delete(s.albums, id)
	return nil
}
