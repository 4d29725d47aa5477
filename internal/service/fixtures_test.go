package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/credential"
	"github.com/nazzeldevelopment/nazzel-jean-website/internal/domain"
	"github.com/nazzeldevelopment/nazzel-jean-website/internal/repository/memory"
)

var fastParams = credential.Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func fastHash(password string) (string, error) {
	return credential.HashPasswordWithParams(password, fastParams)
}

// clock is a settable time source shared by the store and the services.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type sentNotification struct {
	kind string
	to   string
	args []string
}

// recordingNotifier captures queued notifications instead of sending them.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (n *recordingNotifier) record(kind, to string, args ...string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentNotification{kind: kind, to: to, args: args})
}

func (n *recordingNotifier) SendVerification(to, username, code string) {
	n.record("verification", to, username, code)
}

func (n *recordingNotifier) SendPasswordReset(to, username, code string) {
	n.record("password_reset", to, username, code)
}

func (n *recordingNotifier) SendPasswordChanged(to, username string) {
	n.record("password_changed", to, username)
}

func (n *recordingNotifier) SendWelcome(to, username string) {
	n.record("welcome", to, username)
}

func (n *recordingNotifier) SendForumNotification(to, username, postTitle, kind string) {
	n.record("forum", to, username, postTitle, kind)
}

func (n *recordingNotifier) AdminLog(subject, message string) {
	n.record("admin_log", "", subject, message)
}

func (n *recordingNotifier) kinds() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.sent))
	for i, s := range n.sent {
		out[i] = s.kind
	}
	return out
}

func (n *recordingNotifier) last(kind string) (sentNotification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := len(n.sent) - 1; i >= 0; i-- {
		if n.sent[i].kind == kind {
			return n.sent[i], true
		}
	}
	return sentNotification{}, false
}

func (n *recordingNotifier) reset() {
	n.mu.Lock()
	n.sent = nil
	n.mu.Unlock()
}

type mockRecaptcha struct {
	mock.Mock
}

func (m *mockRecaptcha) Enabled() bool {
	return m.Called().Bool(0)
}

func (m *mockRecaptcha) Verify(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func disabledRecaptcha() *mockRecaptcha {
	m := &mockRecaptcha{}
	m.On("Enabled").Return(false)
	return m
}

// seedUser stores a verified member with the given password.
func seedUser(t *testing.T, store domain.Store, id, username, email, password string) *domain.User {
	t.Helper()
	hashed, err := fastHash(password)
	require.NoError(t, err)
	u := &domain.User{
		ID:         id,
		Username:   username,
		Email:      email,
		Password:   hashed,
		IsVerified: true,
		Role:       domain.RoleMember,
	}
	require.NoError(t, store.SaveUser(context.Background(), u))
	return u
}

func newMemoryStore(c *clock) *memory.Store {
	return memory.New(memory.WithClock(c.Now))
}
