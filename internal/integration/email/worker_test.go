package email

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendly/backend/internal/application/adapter"
	"github.com/spendly/backend/internal/domain/entity"
	domainerror "github.com/spendly/backend/internal/domain/error"
	"github.com/spendly/backend/internal/integration/email/templates"
)

type memQueue struct {
	jobs map[uuid.UUID]*entity.EmailJob
}

func newMemQueue() *memQueue {
	return &memQueue{jobs: map[uuid.UUID]*entity.EmailJob{}}
}

func (q *memQueue) Create(_ context.Context, job *entity.EmailJob) error {
	copied := *job
	q.jobs[job.ID] = &copied
	return nil
}

func (q *memQueue) GetPendingJobs(_ context.Context, now time.Time, limit int) ([]*entity.EmailJob, error) {
	var due []*entity.EmailJob
	for _, job := range q.jobs {
		if job.Status == entity.EmailStatusPending && !job.ScheduledAt.After(now) {
			copied := *job
			due = append(due, &copied)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].ScheduledAt.Before(due[j].ScheduledAt) })
	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (q *memQueue) Update(_ context.Context, job *entity.EmailJob) error {
	copied := *job
	q.jobs[job.ID] = &copied
	return nil
}

func (q *memQueue) GetByID(_ context.Context, id uuid.UUID) (*entity.EmailJob, error) {
	job, ok := q.jobs[id]
	if !ok {
		return nil, domainerror.ErrEmailJobNotFound
	}
	return job, nil
}

func (q *memQueue) byRecipient(email string) []*entity.EmailJob {
	var jobs []*entity.EmailJob
	for _, job := range q.jobs {
		if job.RecipientEmail == email {
			jobs = append(jobs, job)
		}
	}
	return jobs
}

func (q *memQueue) DeleteSentBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	for id, job := range q.jobs {
		if job.Status == entity.EmailStatusSent && job.ProcessedAt != nil && job.ProcessedAt.Before(cutoff) {
			delete(q.jobs, id)
			deleted++
		}
	}
	return deleted, nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var workerNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func setupWorker(t *testing.T) (*Service, *Worker, *memQueue, *MockEmailSender) {
	t.Helper()

	renderer, err := templates.NewRenderer()
	require.NoError(t, err)

	queue := newMemQueue()
	sender := NewMockEmailSender()
	clock := fixedClock{now: workerNow}

	service := NewService(queue, clock, "https://app.spendly.test")
	worker := NewWorker(queue, sender, renderer, clock, DefaultWorkerConfig())
	return service, worker, queue, sender
}

func queueGoalReached(t *testing.T, service *Service) {
	t.Helper()
	err := service.QueueGoalReachedEmail(context.Background(), adapter.QueueGoalReachedInput{
		UserID:       "user_1",
		UserEmail:    "ana@example.com",
		UserName:     "Ana",
		GoalName:     "Vacation",
		TargetAmount: "100.00",
		SavedAmount:  "100.00",
	})
	require.NoError(t, err)
}

func onlyJob(t *testing.T, queue *memQueue) *entity.EmailJob {
	t.Helper()
	jobs := queue.byRecipient("ana@example.com")
	require.Len(t, jobs, 1)
	return jobs[0]
}

func TestService_QueueGoalReachedEmail(t *testing.T) {
	t.Run("queues a pending goal reached job", func(t *testing.T) {
		service, _, queue, _ := setupWorker(t)

		queueGoalReached(t, service)

		job := onlyJob(t, queue)
		assert.Equal(t, entity.TemplateGoalReached, job.TemplateType)
		assert.Equal(t, entity.EmailStatusPending, job.Status)
		assert.Equal(t, "You reached your goal: Vacation", job.Subject)
		assert.Equal(t, "https://app.spendly.test/goals", job.TemplateData["goals_url"])
		assert.Equal(t, workerNow, job.ScheduledAt)
	})

	t.Run("rejects an empty recipient", func(t *testing.T) {
		service, _, queue, _ := setupWorker(t)

		err := service.QueueGoalReachedEmail(context.Background(), adapter.QueueGoalReachedInput{GoalName: "Car"})

		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerror.ErrEmailQueueFailed))
		assert.Empty(t, queue.jobs)
	})
}

func TestWorker_ProcessNow(t *testing.T) {
	t.Run("renders and sends a due job", func(t *testing.T) {
		service, worker, queue, sender := setupWorker(t)
		queueGoalReached(t, service)

		worker.ProcessNow(context.Background())

		require.Len(t, sender.SentEmails, 1)
		sent := sender.SentEmails[0]
		assert.Equal(t, "ana@example.com", sent.To)
		assert.Contains(t, sent.HTML, "Vacation")
		assert.Contains(t, sent.Text, "Saved 100.00 of a 100.00 target.")

		job := onlyJob(t, queue)
		assert.Equal(t, entity.EmailStatusSent, job.Status)
		assert.Equal(t, "mock-1", job.ResendID)
		require.NotNil(t, job.ProcessedAt)
		assert.Equal(t, workerNow, *job.ProcessedAt)
	})

	t.Run("permanent failure is not retried", func(t *testing.T) {
		service, worker, queue, sender := setupWorker(t)
		queueGoalReached(t, service)
		sender.SetFailure(errors.New("422 validation error"), true)

		worker.ProcessNow(context.Background())

		job := onlyJob(t, queue)
		assert.Equal(t, entity.EmailStatusFailed, job.Status)
		assert.Equal(t, 1, job.Attempts)
	})

	t.Run("temporary failure is rescheduled", func(t *testing.T) {
		service, worker, queue, sender := setupWorker(t)
		queueGoalReached(t, service)
		sender.SetFailure(errors.New("503 service unavailable"), false)

		worker.ProcessNow(context.Background())

		job := onlyJob(t, queue)
		assert.Equal(t, entity.EmailStatusPending, job.Status)
		assert.Equal(t, 1, job.Attempts)
		assert.Equal(t, workerNow.Add(time.Minute), job.ScheduledAt)

		sender.Reset()
		worker.ProcessNow(context.Background())
		assert.Empty(t, sender.SentEmails, "retry must wait for its backoff")
	})

	t.Run("unknown template fails permanently", func(t *testing.T) {
		_, worker, queue, sender := setupWorker(t)
		job := entity.NewEmailJob("newsletter", "ana@example.com", "Ana", "Hi", nil, workerNow)
		require.NoError(t, queue.Create(context.Background(), job))

		worker.ProcessNow(context.Background())

		assert.Empty(t, sender.SentEmails)
		assert.Equal(t, entity.EmailStatusFailed, onlyJob(t, queue).Status)
	})
}

func TestIsPermanentError(t *testing.T) {
	tests := []struct {
		err  string
		want bool
	}{
		{"422 validation_error: invalid from address", true},
		{"401 unauthorized", true},
		{"429 rate limit exceeded", false},
		{"500 internal server error", false},
		{"dial tcp: connection refused", false},
	}

	for _, tt := range tests {
		t.Run(tt.err, func(t *testing.T) {
			assert.Equal(t, tt.want, isPermanentError(errors.New(tt.err)))
		})
	}
}
