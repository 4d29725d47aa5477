package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/domain"
	"github.com/nazzeldevelopment/nazzel-jean-website/pkg/logger"
)

type countingPurger struct {
	domain.UserService
	calls atomic.Int32
}

func (p *countingPurger) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	if p.calls.Add(1) == 1 {
		return 0, errors.New("store unavailable")
	}
	return 1, nil
}

func TestRunSessionJanitor(t *testing.T) {
	purger := &countingPurger{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunSessionJanitor(ctx, purger, 5*time.Millisecond, logger.Nop())
		close(done)
	}()

	// A failed purge does not stop the loop.
	assert.Eventually(t, func() bool { return purger.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}
