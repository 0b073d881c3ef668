package goal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spendly/backend/internal/application/adapter"
	"github.com/spendly/backend/internal/application/guard"
	"github.com/spendly/backend/internal/application/validation"
	"github.com/spendly/backend/internal/domain/entity"
	domainerror "github.com/spendly/backend/internal/domain/error"
)

// UpdateGoalInput represents the input for goal update.
// Nil fields are left unchanged. The saved amount only moves through contributions.
type UpdateGoalInput struct {
	GoalID       string
	Name         *string
	TargetAmount *float64
	TargetDate   *string
	Icon         *string
	Color        *string
	UserID       string
}

// UpdateGoalOutput represents the output of goal update.
type UpdateGoalOutput struct {
	Goal *entity.Goal
}

// UpdateGoalUseCase handles goal update logic.
type UpdateGoalUseCase struct {
	goalRepo adapter.GoalRepository
	clock    adapter.Clock
}

// NewUpdateGoalUseCase creates a new UpdateGoalUseCase instance.
func NewUpdateGoalUseCase(goalRepo adapter.GoalRepository, clock adapter.Clock) *UpdateGoalUseCase {
	return &UpdateGoalUseCase{
		goalRepo: goalRepo,
		clock:    clock,
	}
}

// Execute performs the goal update.
func (uc *UpdateGoalUseCase) Execute(ctx context.Context, input UpdateGoalInput) (*UpdateGoalOutput, error) {
	id, err := parseGoalID(input.GoalID)
	if err != nil {
		return nil, err
	}

	goal, err := guard.Owned(ctx, guard.GoalPolicy, id, input.UserID, guard.ActionUpdate,
		uc.goalRepo.FindByID, guard.GoalOwner)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name, err := validateName(*input.Name)
		if err != nil {
			return nil, err
		}

		if !strings.EqualFold(name, goal.Name) {
			exists, err := uc.goalRepo.ExistsByName(ctx, name, input.UserID, &goal.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to check goal name existence: %w", err)
			}
			if exists {
				return nil, domainerror.Conflict(domainerror.CodeGoalNameExists, domainerror.MsgGoalNameExists, nil)
			}
		}
		goal.Name = name
	}

	if input.TargetAmount != nil {
		if goal.TargetAmount, err = validateTarget(*input.TargetAmount); err != nil {
			return nil, err
		}
	}

	if input.TargetDate != nil {
		if goal.TargetDate, err = futureDate(*input.TargetDate, uc.clock); err != nil {
			return nil, err
		}
	}

	if input.Icon != nil {
		if goal.Icon, err = validateIcon(*input.Icon); err != nil {
			return nil, err
		}
	}

	if input.Color != nil {
		if goal.Color, err = validation.HexColor(*input.Color, domainerror.CodeGoalColorInvalid); err != nil {
			return nil, err
		}
	}

	goal.Touch(input.UserID, uc.clock.Now())

	if err := uc.goalRepo.Update(ctx, goal); err != nil {
		switch {
		case errors.Is(err, domainerror.ErrRecordNotFound):
			return nil, domainerror.NotFound(domainerror.CodeGoalNotFound, domainerror.MsgGoalNotFoundOrDeleted, err)
		case errors.Is(err, domainerror.ErrUniqueViolation):
			return nil, domainerror.Conflict(domainerror.CodeGoalNameExists, domainerror.MsgGoalNameExists, err)
		}
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	return &UpdateGoalOutput{
		Goal: goal,
	}, nil
}
