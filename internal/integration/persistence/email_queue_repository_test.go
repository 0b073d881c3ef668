package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendly/backend/internal/domain/entity"
	domainerror "github.com/spendly/backend/internal/domain/error"
)

func TestEmailQueueRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewEmailQueueRepository(newTestDB(t))

	now := time.Now().UTC()
	job := entity.NewEmailJob(entity.TemplateGoalReached, "ana@example.com", "Ana", "Goal reached",
		map[string]interface{}{"goal_name": "Vacation"}, now)
	require.NoError(t, repo.Create(ctx, job))

	t.Run("due jobs are returned with their data", func(t *testing.T) {
		jobs, err := repo.GetPendingJobs(ctx, now.Add(time.Second), 10)
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, "Vacation", jobs[0].TemplateData["goal_name"])
	})

	t.Run("future jobs are not due", func(t *testing.T) {
		jobs, err := repo.GetPendingJobs(ctx, now.Add(-time.Hour), 10)
		require.NoError(t, err)
		assert.Empty(t, jobs)
	})

	t.Run("sent jobs are purged after retention", func(t *testing.T) {
		job.MarkSent("re_123", now)
		require.NoError(t, repo.Update(ctx, job))

		stored, err := repo.GetByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.EmailStatusSent, stored.Status)
		assert.Equal(t, "re_123", stored.ResendID)

		deleted, err := repo.DeleteSentBefore(ctx, now.Add(-time.Hour))
		require.NoError(t, err)
		assert.Zero(t, deleted)

		deleted, err = repo.DeleteSentBefore(ctx, now.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)

		_, err = repo.GetByID(ctx, job.ID)
		assert.ErrorIs(t, err, domainerror.ErrEmailJobNotFound)
	})
}
