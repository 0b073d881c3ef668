package goal

import (
	"context"
	"fmt"

	"github.com/spendly/backend/internal/application/adapter"
	"github.com/spendly/backend/internal/domain/entity"
)

// ListGoalsInput represents the input for listing goals.
type ListGoalsInput struct {
	UserID string
}

// ListGoalsOutput represents the output of listing goals.
type ListGoalsOutput struct {
	Goals      []*entity.Goal
	TotalCount int
}

// ListGoalsUseCase lists the caller's goals, newest first.
type ListGoalsUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewListGoalsUseCase creates a new ListGoalsUseCase instance.
func NewListGoalsUseCase(goalRepo adapter.GoalRepository) *ListGoalsUseCase {
	return &ListGoalsUseCase{
		goalRepo: goalRepo,
	}
}

// Execute lists the goals.
func (uc *ListGoalsUseCase) Execute(ctx context.Context, input ListGoalsInput) (*ListGoalsOutput, error) {
	goals, err := uc.goalRepo.FindByOwner(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	return &ListGoalsOutput{
		Goals:      goals,
		TotalCount: len(goals),
	}, nil
}
