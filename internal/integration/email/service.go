// Package email provides email sending functionality.
package email

import (
	"context"
	"fmt"

	"github.com/spendly/backend/internal/application/adapter"
	"github.com/spendly/backend/internal/domain/entity"
	domainerror "github.com/spendly/backend/internal/domain/error"
)

// Service handles email queueing operations.
type Service struct {
	queue      adapter.EmailQueueRepository
	clock      adapter.Clock
	appBaseURL string
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository, clock adapter.Clock, appBaseURL string) *Service {
	return &Service{
		queue:      queue,
		clock:      clock,
		appBaseURL: appBaseURL,
	}
}

// QueueGoalReachedEmail queues the congratulation sent when a goal reaches its target.
func (s *Service) QueueGoalReachedEmail(ctx context.Context, input adapter.QueueGoalReachedInput) error {
	if input.UserEmail == "" {
		return domainerror.NewEmailError(
			domainerror.CodeEmailQueueFailed,
			"recipient email is required",
			domainerror.ErrEmailQueueFailed,
		)
	}

	subject := fmt.Sprintf("You reached your goal: %s", input.GoalName)

	templateData := map[string]interface{}{
		"user_id":       input.UserID,
		"user_name":     input.UserName,
		"goal_name":     input.GoalName,
		"target_amount": input.TargetAmount,
		"saved_amount":  input.SavedAmount,
		"goals_url":     s.appBaseURL + "/goals",
	}

	job := entity.NewEmailJob(
		entity.TemplateGoalReached,
		input.UserEmail,
		input.UserName,
		subject,
		templateData,
		s.clock.Now(),
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.CodeEmailQueueFailed,
			"failed to queue goal reached email",
			err,
		)
	}

	return nil
}

// Ensure Service implements adapter.EmailService.
var _ adapter.EmailService = (*Service)(nil)
