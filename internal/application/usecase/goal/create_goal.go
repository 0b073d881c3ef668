// Package goal contains goal and contribution use cases.
package goal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendly/backend/internal/application/adapter"
	"github.com/spendly/backend/internal/application/validation"
	"github.com/spendly/backend/internal/domain/entity"
	domainerror "github.com/spendly/backend/internal/domain/error"
)

// CreateGoalInput represents the input for goal creation.
// Nil fields were absent from the request.
type CreateGoalInput struct {
	Name         *string
	TargetAmount *float64
	SavedAmount  *float64 // Optional, defaults to 0
	TargetDate   *string  // Optional
	Icon         *string  // Optional, defaults to DefaultGoalIcon
	Color        *string  // Optional, defaults to DefaultGoalColor
	UserID       string
}

// CreateGoalOutput represents the output of goal creation.
type CreateGoalOutput struct {
	Goal *entity.Goal
}

// CreateGoalUseCase handles goal creation logic.
type CreateGoalUseCase struct {
	goalRepo adapter.GoalRepository
	clock    adapter.Clock
}

// NewCreateGoalUseCase creates a new CreateGoalUseCase instance.
func NewCreateGoalUseCase(goalRepo adapter.GoalRepository, clock adapter.Clock) *CreateGoalUseCase {
	return &CreateGoalUseCase{
		goalRepo: goalRepo,
		clock:    clock,
	}
}

// Execute performs the goal creation.
func (uc *CreateGoalUseCase) Execute(ctx context.Context, input CreateGoalInput) (*CreateGoalOutput, error) {
	if input.Name == nil || input.TargetAmount == nil {
		return nil, domainerror.Validation(
			domainerror.CodeGoalNameRequired,
			validation.MissingFields("name", "targetAmount"),
		)
	}

	name, err := validateName(*input.Name)
	if err != nil {
		return nil, err
	}
	target, err := validateTarget(*input.TargetAmount)
	if err != nil {
		return nil, err
	}

	saved := decimal.Zero
	if input.SavedAmount != nil {
		if saved, err = validation.NonNegativeAmount(*input.SavedAmount, "Saved amount", domainerror.CodeGoalSavedInvalid); err != nil {
			return nil, err
		}
	}

	var targetDate *time.Time
	if input.TargetDate != nil {
		if targetDate, err = futureDate(*input.TargetDate, uc.clock); err != nil {
			return nil, err
		}
	}

	icon := entity.DefaultGoalIcon
	if input.Icon != nil {
		if icon, err = validateIcon(*input.Icon); err != nil {
			return nil, err
		}
	}

	color := entity.DefaultGoalColor
	if input.Color != nil {
		if color, err = validation.HexColor(*input.Color, domainerror.CodeGoalColorInvalid); err != nil {
			return nil, err
		}
	}

	exists, err := uc.goalRepo.ExistsByName(ctx, name, input.UserID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check goal name existence: %w", err)
	}
	if exists {
		return nil, domainerror.Conflict(domainerror.CodeGoalNameExists, domainerror.MsgGoalNameExists, nil)
	}

	goal := entity.NewGoal(name, icon, color, target, saved, targetDate, input.UserID)

	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		if errors.Is(err, domainerror.ErrUniqueViolation) {
			return nil, domainerror.Conflict(domainerror.CodeGoalNameExists, domainerror.MsgGoalNameExists, err)
		}
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return &CreateGoalOutput{
		Goal: goal,
	}, nil
}

// futureDate parses a target date that must be strictly in the future.
func futureDate(raw string, clock adapter.Clock) (*time.Time, error) {
	t, err := validation.FutureDate(raw, clock.Now(), domainerror.CodeGoalTargetDateInvalid)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func validateName(name string) (string, error) {
	return validation.NonEmptyString(name, validation.MaxNameLength, "Name", domainerror.CodeGoalNameRequired)
}

func validateTarget(value float64) (decimal.Decimal, error) {
	return validation.PositiveAmount(value, "Target amount", domainerror.CodeGoalTargetInvalid)
}

func validateIcon(icon string) (string, error) {
	return validation.NonEmptyString(icon, validation.MaxIconLength, "Icon", domainerror.CodeGoalIconInvalid)
}

func parseGoalID(raw string) (uuid.UUID, error) {
	return validation.ID(raw, "Goal", domainerror.CodeGoalIDRequired, domainerror.CodeGoalIDInvalid)
}
