package goal

import (
	"context"

	"github.com/spendly/backend/internal/application/adapter"
	"github.com/spendly/backend/internal/application/guard"
	"github.com/spendly/backend/internal/domain/entity"
)

// GetGoalInput represents the input for getting a goal.
type GetGoalInput struct {
	GoalID string
	UserID string
}

// GetGoalOutput represents the output of getting a goal.
type GetGoalOutput struct {
	Goal *entity.Goal
}

// GetGoalUseCase handles getting a goal by ID.
type GetGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewGetGoalUseCase creates a new GetGoalUseCase instance.
func NewGetGoalUseCase(goalRepo adapter.GoalRepository) *GetGoalUseCase {
	return &GetGoalUseCase{
		goalRepo: goalRepo,
	}
}

// Execute fetches the goal.
func (uc *GetGoalUseCase) Execute(ctx context.Context, input GetGoalInput) (*GetGoalOutput, error) {
	id, err := parseGoalID(input.GoalID)
	if err != nil {
		return nil, err
	}

	goal, err := guard.Owned(ctx, guard.GoalPolicy, id, input.UserID, guard.ActionAccess,
		uc.goalRepo.FindByID, guard.GoalOwner)
	if err != nil {
		return nil, err
	}

	return &GetGoalOutput{
		Goal: goal,
	}, nil
}
