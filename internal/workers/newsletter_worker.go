package workers

import (
	"context"
	"time"

	"gigwork_backend/internal/logger"
	"gigwork_backend/internal/services"
)

// NewsletterWorker emails category followers once per day about jobs
// published in the preceding 24 hours.
type NewsletterWorker struct {
	notifications services.NotificationService
	hour          int
	nowFunc       func() time.Time
}

func NewNewsletterWorker(notifications services.NotificationService, hour int) *NewsletterWorker {
	return &NewsletterWorker{
		notifications: notifications,
		hour:          hour,
		nowFunc:       time.Now,
	}
}

func (w *NewsletterWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *NewsletterWorker) run(ctx context.Context) {
	for {
		now := w.nowFunc()
		timer := time.NewTimer(nextOccurrence(now, w.hour).Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			logger.Info("newsletter worker stopped")
			return
		case <-timer.C:
			since := w.nowFunc().Add(-24 * time.Hour)
			if err := w.notifications.RunCategoryNewsletter(since); err != nil {
				logger.WorkerLog("newsletter", "run", err)
			}
		}
	}
}
