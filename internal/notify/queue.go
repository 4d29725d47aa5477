package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/domain"
	"github.com/nazzeldevelopment/nazzel-jean-website/pkg/logger"
	"github.com/nazzeldevelopment/nazzel-jean-website/pkg/metrics"
)

type job struct {
	kind string
	to   string
	send func() error
}

// Queue delivers emails from a bounded buffer on a fixed set of workers.
// Enqueueing never blocks: when the buffer is full the email is dropped.
type Queue struct {
	sender *Sender
	log    *logger.Logger
	jobs   chan job
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

var _ domain.Notifier = (*Queue)(nil)

func NewQueue(sender *Sender, size, workers int, log *logger.Logger) *Queue {
	q := &Queue{
		sender: sender,
		log:    log.WithComponent("notify"),
		jobs:   make(chan job, size),
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.work()
	}
	return q
}

func (q *Queue) SendVerification(to, username, code string) {
	q.enqueue(KindVerification, to, func() error { return q.sender.SendVerificationEmail(to, username, code) })
}

func (q *Queue) SendPasswordReset(to, username, code string) {
	q.enqueue(KindPasswordReset, to, func() error { return q.sender.SendPasswordResetEmail(to, username, code) })
}

func (q *Queue) SendPasswordChanged(to, username string) {
	q.enqueue(KindPasswordChanged, to, func() error { return q.sender.SendPasswordChangedEmail(to, username) })
}

func (q *Queue) SendWelcome(to, username string) {
	q.enqueue(KindWelcome, to, func() error { return q.sender.SendWelcomeEmail(to, username) })
}

func (q *Queue) SendForumNotification(to, username, postTitle, kind string) {
	q.enqueue(KindForum, to, func() error { return q.sender.SendForumNotificationEmail(to, username, postTitle, kind) })
}

func (q *Queue) AdminLog(subject, message string) {
	if !q.sender.AdminConfigured() {
		q.log.Debug("admin email not configured, skipping admin log", zap.String("subject", subject))
		return
	}
	q.enqueue(KindAdminLog, q.sender.adminEmail, func() error { return q.sender.SendAdminLog(subject, message) })
}

func (q *Queue) enqueue(kind, to string, send func() error) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		metrics.EmailsDropped.Inc()
		q.log.Warn("email queue closed, dropping email", zap.String("kind", kind), zap.String("to", to))
		return
	}
	select {
	case q.jobs <- job{kind: kind, to: to, send: send}:
	default:
		metrics.EmailsDropped.Inc()
		q.log.Warn("email queue full, dropping email", zap.String("kind", kind), zap.String("to", to))
	}
}

func (q *Queue) work() {
	defer q.wg.Done()
	for j := range q.jobs {
		q.deliver(j)
	}
}

func (q *Queue) deliver(j job) {
	defer func() {
		if r := recover(); r != nil {
			metrics.EmailsTotal.WithLabelValues(j.kind, "failed").Inc()
			q.log.Error("email delivery panicked", zap.String("kind", j.kind), zap.Any("panic", r))
		}
	}()
	if err := j.send(); err != nil {
		metrics.EmailsTotal.WithLabelValues(j.kind, "failed").Inc()
		q.log.Error("email delivery failed", zap.String("kind", j.kind), zap.String("to", j.to), zap.Error(err))
		return
	}
	metrics.EmailsTotal.WithLabelValues(j.kind, "sent").Inc()
	q.log.Debug("email sent", zap.String("kind", j.kind), zap.String("to", j.to))
}

// Close stops accepting emails and waits for queued ones to be delivered,
// giving up when ctx is done.
func (q *Queue) Close(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		q.log.Warn("email queue drain interrupted", zap.Int("pending", len(q.jobs)))
		return ctx.Err()
	}
}
