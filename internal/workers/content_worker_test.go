package workers

import (
	"testing"
	"time"

	"gigwork_backend/internal/models"
	"gigwork_backend/internal/services"
	"gigwork_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubJobService counts seeded publishes; everything else is unused by
// the worker.
type stubJobService struct {
	publishes int
}

var _ services.JobService = (*stubJobService)(nil)

func (s *stubJobService) PublishSeededDraft() error {
	s.publishes++
	return nil
}

func (s *stubJobService) CreateDraft(string, *dto.CreateJobRequest) (*dto.JobResponse, error) {
	return nil, nil
}
func (s *stubJobService) CreateOwnerlessDraft(*dto.CreateJobRequest) (*models.Job, error) {
	return nil, nil
}
func (s *stubJobService) Publish(string, string) error            { return nil }
func (s *stubJobService) TransferAndPublish(string, string) error { return nil }
func (s *stubJobService) Reject(string, string, string) error     { return nil }
func (s *stubJobService) Close(string, string) error              { return nil }
func (s *stubJobService) Update(string, string, *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	return nil, nil
}
func (s *stubJobService) GetJob(string, string) (*dto.JobResponse, error)  { return nil, nil }
func (s *stubJobService) GetPreview(string) (*dto.JobResponse, error)      { return nil, nil }
func (s *stubJobService) ListPublished(int, int) (*dto.JobListResponse, error) {
	return nil, nil
}
func (s *stubJobService) ListByAuthor(string) (*dto.JobListResponse, error) { return nil, nil }

// testContentWorker returns a worker with a scripted random source:
// values are consumed pairwise as (hour offset from 8, minute).
func testContentWorker(jobs *stubJobService, randValues []int) *ContentWorker {
	w := NewContentWorker(jobs, 2)
	i := 0
	w.randFunc = func(n int) int {
		v := randValues[i%len(randValues)]
		i++
		return v
	}
	return w
}

func TestContentWorkerArmsSlotInCurrentHour(t *testing.T) {
	jobs := &stubJobService{}
	// Slots: 9:30 and 10:45.
	w := testContentWorker(jobs, []int{1, 30, 2, 45})

	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	w.tick(now)

	assert.Equal(t, "2025-06-02", w.schedule.dateKey)
	require.Len(t, w.schedule.slots, 2)
	require.NotNil(t, w.armedTimer)
	assert.Equal(t, 0, w.armedSlot)

	// Drop the real timer and fire the slot by hand.
	w.disarm()
	w.fire(0)
	assert.Equal(t, 1, jobs.publishes)

	// The slot never fires twice.
	w.fire(0)
	assert.Equal(t, 1, jobs.publishes)
}

func TestContentWorkerIgnoresSlotsOutsideCurrentHour(t *testing.T) {
	jobs := &stubJobService{}
	w := testContentWorker(jobs, []int{1, 30, 2, 45})

	// At 08:00 neither the 9:30 nor the 10:45 slot is within the hour.
	w.tick(time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC))
	assert.Nil(t, w.armedTimer)

	// The 10:45 slot arms at the 10:00 tick.
	w.tick(time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC))
	require.NotNil(t, w.armedTimer)
	assert.Equal(t, 1, w.armedSlot)
	w.disarm()
}

func TestContentWorkerRegeneratesScheduleOnNewDay(t *testing.T) {
	jobs := &stubJobService{}
	w := testContentWorker(jobs, []int{1, 30, 2, 45})

	w.tick(time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC))
	require.NotNil(t, w.armedTimer)
	w.fire(0)
	assert.Equal(t, 1, jobs.publishes)

	// Midnight tick: new date key, fired state reset, old timer gone.
	w.tick(time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2025-06-03", w.schedule.dateKey)
	assert.Nil(t, w.armedTimer)
	for _, fired := range w.schedule.fired {
		assert.False(t, fired)
	}

	// Yesterday's slot index fires again on the fresh schedule.
	w.fire(0)
	assert.Equal(t, 2, jobs.publishes)
}

func TestNextOccurrence(t *testing.T) {
	now := time.Date(2025, 6, 2, 7, 30, 0, 0, time.UTC)

	next := nextOccurrence(now, 8)
	assert.Equal(t, time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC), next)

	// Past today's hour rolls over to tomorrow.
	next = nextOccurrence(time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC), 8)
	assert.Equal(t, time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC), next)
}
