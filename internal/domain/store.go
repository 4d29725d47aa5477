package domain

import "context"

type Stats struct {
	Users    int64 `json:"users"`
	Posts    int64 `json:"posts"`
	Replies  int64 `json:"replies"`
	Messages int64 `json:"messages"`
	Albums   int64 `json:"albums"`
}

// Store is the persistence gateway. Lookups of missing entities return
// ErrNotFound; connectivity and driver failures wrap ErrStoreUnavailable.
type Store interface {
	UserRepository
	SessionRepository
	PostRepository
	ReplyRepository
	MessageRepository
	TypingRepository
	AlbumRepository

	Ping(ctx context.Context) error
	GetStats(ctx context.Context) (*Stats, error)
	Close(ctx context.Context) error
}

// Throttle limits how often an action may happen for a key.
type Throttle interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Notifier delivers outbound email without blocking the caller.
// Implementations log delivery failures and never report them back.
type Notifier interface {
	SendVerification(to, username, code string)
	SendPasswordReset(to, username, code string)
	SendPasswordChanged(to, username string)
	SendWelcome(to, username string)
	SendForumNotification(to, username, postTitle, kind string)
	// AdminLog sends a plain-text audit entry to the site administrator.
	AdminLog(subject, message string)
}
