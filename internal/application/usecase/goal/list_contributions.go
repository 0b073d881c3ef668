package goal

import (
	"context"
	"fmt"

	"github.com/spendly/backend/internal/application/adapter"
	"github.com/spendly/backend/internal/application/guard"
	"github.com/spendly/backend/internal/domain/entity"
)

// ListContributionsInput represents the input for listing a goal's contributions.
type ListContributionsInput struct {
	GoalID string
	UserID string
}

// ListContributionsOutput represents the output of listing contributions.
type ListContributionsOutput struct {
	Contributions []*entity.Contribution
	TotalCount    int
}

// ListContributionsUseCase lists contributions of a goal owned by the caller.
type ListContributionsUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewListContributionsUseCase creates a new ListContributionsUseCase instance.
func NewListContributionsUseCase(goalRepo adapter.GoalRepository) *ListContributionsUseCase {
	return &ListContributionsUseCase{
		goalRepo: goalRepo,
	}
}

// Execute lists the contributions, newest first.
func (uc *ListContributionsUseCase) Execute(ctx context.Context, input ListContributionsInput) (*ListContributionsOutput, error) {
	id, err := parseGoalID(input.GoalID)
	if err != nil {
		return nil, err
	}

	goal, err := guard.Owned(ctx, guard.GoalPolicy, id, input.UserID, guard.ActionAccess,
		uc.goalRepo.FindByID, guard.GoalOwner)
	if err != nil {
		return nil, err
	}

	contributions, err := uc.goalRepo.FindContributions(ctx, goal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributions: %w", err)
	}

	return &ListContributionsOutput{
		Contributions: contributions,
		TotalCount:    len(contributions),
	}, nil
}
