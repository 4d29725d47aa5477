package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/domain"
	"github.com/nazzeldevelopment/nazzel-jean-website/pkg/logger"
)

// RunSessionJanitor purges expired sessions every interval until ctx is done.
func RunSessionJanitor(ctx context.Context, users domain.UserService, interval time.Duration, log *logger.Logger) {
	log = log.WithComponent("session_janitor")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := users.PurgeExpiredSessions(ctx)
			if err != nil {
				log.Warn("session purge failed", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Info("purged expired sessions", zap.Int64("count", n))
			}
		}
	}
}
