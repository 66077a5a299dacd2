package workers

import (
	"context"
	"time"

	"gigwork_backend/internal/logger"
	"gigwork_backend/internal/services"
)

// DigestWorker runs the daily job match digest once per day at a fixed
// wall-clock hour. No cross-instance coordination: two instances running
// the same hour can double-send, which is accepted.
type DigestWorker struct {
	notifications services.NotificationService
	hour          int
	nowFunc       func() time.Time
}

func NewDigestWorker(notifications services.NotificationService, hour int) *DigestWorker {
	return &DigestWorker{
		notifications: notifications,
		hour:          hour,
		nowFunc:       time.Now,
	}
}

func (w *DigestWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *DigestWorker) run(ctx context.Context) {
	for {
		now := w.nowFunc()
		timer := time.NewTimer(nextOccurrence(now, w.hour).Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			logger.Info("digest worker stopped")
			return
		case <-timer.C:
			if err := w.notifications.RunDailyDigest(); err != nil {
				logger.WorkerLog("digest", "run", err)
			}
		}
	}
}

// nextOccurrence returns the next time the given local hour comes around.
func nextOccurrence(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
