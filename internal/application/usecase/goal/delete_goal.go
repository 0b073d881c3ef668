package goal

import (
	"context"
	"errors"
	"fmt"

	"github.com/spendly/backend/internal/application/adapter"
	"github.com/spendly/backend/internal/application/guard"
	"github.com/spendly/backend/internal/domain/entity"
	domainerror "github.com/spendly/backend/internal/domain/error"
)

// DeleteGoalInput represents the input for goal deletion.
type DeleteGoalInput struct {
	GoalID string
	UserID string
}

// DeleteGoalOutput represents the output of goal deletion.
type DeleteGoalOutput struct {
	Goal *entity.Goal
}

// DeleteGoalUseCase handles goal deletion logic.
type DeleteGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewDeleteGoalUseCase creates a new DeleteGoalUseCase instance.
func NewDeleteGoalUseCase(goalRepo adapter.GoalRepository) *DeleteGoalUseCase {
	return &DeleteGoalUseCase{
		goalRepo: goalRepo,
	}
}

// Execute performs the goal deletion. Contributions go with the goal.
func (uc *DeleteGoalUseCase) Execute(ctx context.Context, input DeleteGoalInput) (*DeleteGoalOutput, error) {
	id, err := parseGoalID(input.GoalID)
	if err != nil {
		return nil, err
	}

	goal, err := guard.Owned(ctx, guard.GoalPolicy, id, input.UserID, guard.ActionDelete,
		uc.goalRepo.FindByID, guard.GoalOwner)
	if err != nil {
		return nil, err
	}

	if err := uc.goalRepo.Delete(ctx, goal.ID); err != nil {
		if errors.Is(err, domainerror.ErrRecordNotFound) {
			return nil, domainerror.NotFound(domainerror.CodeGoalNotFound, domainerror.MsgGoalNotFoundOrDeleted, err)
		}
		return nil, fmt.Errorf("failed to delete goal: %w", err)
	}

	return &DeleteGoalOutput{
		Goal: goal,
	}, nil
}
