package workers

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"gigwork_backend/internal/logger"
	"gigwork_backend/internal/services"
)

// slotSchedule is the per-day publication plan: a calendar day key and
// the random times chosen for it. It is owned by the worker and
// recomputed exactly once per day.
type slotSchedule struct {
	dateKey string
	slots   []time.Time
	fired   []bool
}

// ContentWorker drip-publishes seeded draft listings at random minutes
// through the day so the board does not fill up in one burst. An hourly
// tick checks whether one of today's slots falls inside the current
// hour; if so a one-shot timer is armed for the remaining delay. Each
// slot fires at most once per day, and a day change regenerates the
// schedule and disarms any pending timer.
type ContentWorker struct {
	jobs        services.JobService
	slotsPerDay int
	nowFunc     func() time.Time
	randFunc    func(n int) int

	mu         sync.Mutex
	schedule   slotSchedule
	armedTimer *time.Timer
	armedSlot  int
}

func NewContentWorker(jobs services.JobService, slotsPerDay int) *ContentWorker {
	return &ContentWorker{
		jobs:        jobs,
		slotsPerDay: slotsPerDay,
		nowFunc:     time.Now,
		randFunc:    rand.Intn,
		armedSlot:   -1,
	}
}

func (w *ContentWorker) Start(ctx context.Context) {
	if w.slotsPerDay <= 0 {
		return
	}
	go w.run(ctx)
}

func (w *ContentWorker) run(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	w.tick(w.nowFunc())
	for {
		select {
		case <-ctx.Done():
			w.disarm()
			logger.Info("content worker stopped")
			return
		case <-ticker.C:
			w.tick(w.nowFunc())
		}
	}
}

// tick regenerates the schedule on a day change and arms a timer when an
// upcoming slot falls before the next tick.
func (w *ContentWorker) tick(now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.ensureScheduleLocked(now)

	if w.armedTimer != nil {
		return
	}

	horizon := now.Add(1 * time.Hour)
	for i, slot := range w.schedule.slots {
		if w.schedule.fired[i] || slot.Before(now) || !slot.Before(horizon) {
			continue
		}
		idx := i
		w.armedSlot = idx
		w.armedTimer = time.AfterFunc(slot.Sub(now), func() { w.fire(idx) })
		return
	}
}

// ensureScheduleLocked rebuilds the slot plan when the calendar day
// changes, dropping any timer armed for the old day.
func (w *ContentWorker) ensureScheduleLocked(now time.Time) {
	key := now.Format("2006-01-02")
	if w.schedule.dateKey == key {
		return
	}

	if w.armedTimer != nil {
		w.armedTimer.Stop()
		w.armedTimer = nil
		w.armedSlot = -1
	}

	slots := make([]time.Time, 0, w.slotsPerDay)
	for i := 0; i < w.slotsPerDay; i++ {
		// Daytime hours only, random minute within the hour.
		hour := 8 + w.randFunc(12)
		minute := w.randFunc(60)
		slots = append(slots, time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location()))
	}

	w.schedule = slotSchedule{
		dateKey: key,
		slots:   slots,
		fired:   make([]bool, len(slots)),
	}
}

func (w *ContentWorker) fire(idx int) {
	w.mu.Lock()
	if idx >= len(w.schedule.fired) || w.schedule.fired[idx] {
		w.mu.Unlock()
		return
	}
	w.schedule.fired[idx] = true
	if w.armedSlot == idx {
		w.armedTimer = nil
		w.armedSlot = -1
	}
	w.mu.Unlock()

	if err := w.jobs.PublishSeededDraft(); err != nil {
		logger.WorkerLog("content", "publish", err)
	}
}

func (w *ContentWorker) disarm() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.armedTimer != nil {
		w.armedTimer.Stop()
		w.armedTimer = nil
		w.armedSlot = -1
	}
}
