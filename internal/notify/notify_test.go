package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nazzeldevelopment/nazzel-jean-website/pkg/logger"
)

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(to, subject, htmlBody string) error {
	args := m.Called(to, subject, htmlBody)
	return args.Error(0)
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentEmail
}

type sentEmail struct {
	to, subject, body string
}

func (r *recordingMailer) Send(to, subject, htmlBody string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sentEmail{to: to, subject: subject, body: htmlBody})
	return nil
}

func (r *recordingMailer) emails() []sentEmail {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]sentEmail(nil), r.sent...)
}

func TestSender_Subjects(t *testing.T) {
	rec := &recordingMailer{}
	s := NewSender(rec, "noreply@site.test", "admin@site.test", "https://site.test")

	require.NoError(t, s.SendVerificationEmail("a@x.com", "alice", "123456"))
	require.NoError(t, s.SendPasswordResetEmail("a@x.com", "alice", "654321"))
	require.NoError(t, s.SendWelcomeEmail("a@x.com", "alice"))
	require.NoError(t, s.SendForumNotificationEmail("a@x.com", "alice", "Our Trip", "New Reply"))
	require.NoError(t, s.SendAdminLog("New signup", "alice signed up"))

	sent := rec.emails()
	require.Len(t, sent, 5)
	assert.Equal(t, "✨ Verify Your Email - Nazzel & Avionna", sent[0].subject)
	assert.Contains(t, sent[0].body, "123456")
	assert.Contains(t, sent[0].body, "https://site.test/verify?code=123456")
	assert.Equal(t, "🔐 Reset Your Password - Nazzel & Avionna", sent[1].subject)
	assert.Equal(t, "🎉 Welcome to Our Community!", sent[2].subject)
	assert.Equal(t, "🔔 New Activity in Forum - Our Trip", sent[3].subject)
	assert.Equal(t, "admin@site.test", sent[4].to)
	assert.Equal(t, "[Admin Log] New signup", sent[4].subject)
}

func TestSender_EscapesUserText(t *testing.T) {
	rec := &recordingMailer{}
	s := NewSender(rec, "noreply@site.test", "admin@site.test", "https://site.test")

	require.NoError(t, s.SendAdminLog("User login", "<script>alert(1)</script> logged in"))
	body := rec.emails()[0].body
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestSender_AdminLogWithoutRecipient(t *testing.T) {
	m := &mockMailer{}
	s := NewSender(m, "noreply@site.test", "", "https://site.test")

	assert.ErrorIs(t, s.SendAdminLog("x", "y"), ErrAdminEmailNotConfigured)
	m.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestSender_SendSample(t *testing.T) {
	rec := &recordingMailer{}
	s := NewSender(rec, "noreply@site.test", "admin@site.test", "https://site.test")

	for _, kind := range Kinds {
		t.Run(kind, func(t *testing.T) {
			assert.NoError(t, s.SendSample(kind, "tester@x.com"))
		})
	}
	assert.Len(t, rec.emails(), len(Kinds))
	assert.Error(t, s.SendSample("carrier-pigeon", "tester@x.com"))
}

func TestQueue_DeliversAndSwallowsFailures(t *testing.T) {
	m := &mockMailer{}
	m.On("Send", "ok@x.com", mock.Anything, mock.Anything).Return(nil)
	m.On("Send", "bad@x.com", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	q := NewQueue(NewSender(m, "noreply@site.test", "", "https://site.test"), 10, 2, logger.Nop())
	q.SendWelcome("bad@x.com", "bob")
	q.SendWelcome("ok@x.com", "alice")
	q.AdminLog("skipped", "no admin recipient")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, q.Close(ctx))

	m.AssertNumberOfCalls(t, "Send", 2)
	m.AssertExpectations(t)
}

func TestQueue_DropsWhenFull(t *testing.T) {
	rec := &recordingMailer{}
	// No workers, so nothing leaves the buffer.
	q := NewQueue(NewSender(rec, "noreply@site.test", "", "https://site.test"), 1, 0, logger.Nop())

	q.SendWelcome("a@x.com", "a")
	q.SendWelcome("b@x.com", "b")
	assert.Len(t, q.jobs, 1)

	require.NoError(t, q.Close(context.Background()))
	assert.Empty(t, rec.emails())
}

type blockingMailer struct {
	release chan struct{}
	count   int
	mu      sync.Mutex
}

func (b *blockingMailer) Send(to, subject, htmlBody string) error {
	<-b.release
	b.mu.Lock()
	b.count++
	b.mu.Unlock()
	return nil
}

func TestQueue_CloseDrainsPending(t *testing.T) {
	b := &blockingMailer{release: make(chan struct{})}
	q := NewQueue(NewSender(b, "noreply@site.test", "", "https://site.test"), 10, 1, logger.Nop())
	for i := 0; i < 3; i++ {
		q.SendWelcome("x@x.com", "tester")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, q.Close(ctx), context.DeadlineExceeded)

	close(b.release)
	require.NoError(t, q.Close(context.Background()))
	assert.Equal(t, 3, b.count)

	// Closed queues drop silently.
	q.SendWelcome("late@x.com", "late")
	assert.Equal(t, 3, b.count)
}
