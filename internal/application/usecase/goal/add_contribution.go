package goal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spendly/backend/internal/application/adapter"
	"github.com/spendly/backend/internal/application/guard"
	"github.com/spendly/backend/internal/application/validation"
	"github.com/spendly/backend/internal/domain/entity"
	domainerror "github.com/spendly/backend/internal/domain/error"
)

// AddContributionInput represents the input for adding a contribution.
type AddContributionInput struct {
	GoalID      string
	Amount      *float64
	Description *string
	UserID      string
	UserEmail   string // Recipient of the goal reached email, may be empty
	UserName    string
}

// AddContributionOutput returns the new contribution and the goal after the increment.
type AddContributionOutput struct {
	Contribution *entity.Contribution
	Goal         *entity.Goal
}

// AddContributionUseCase records a deposit towards a goal.
type AddContributionUseCase struct {
	goalRepo     adapter.GoalRepository
	emailService adapter.EmailService
}

// NewAddContributionUseCase creates a new AddContributionUseCase instance.
// emailService may be nil, in which case no notification is queued.
func NewAddContributionUseCase(goalRepo adapter.GoalRepository, emailService adapter.EmailService) *AddContributionUseCase {
	return &AddContributionUseCase{
		goalRepo:     goalRepo,
		emailService: emailService,
	}
}

// Execute adds the contribution.
func (uc *AddContributionUseCase) Execute(ctx context.Context, input AddContributionInput) (*AddContributionOutput, error) {
	id, err := parseGoalID(input.GoalID)
	if err != nil {
		return nil, err
	}

	goal, err := guard.Owned(ctx, guard.GoalPolicy, id, input.UserID, guard.ActionAccess,
		uc.goalRepo.FindByID, guard.GoalOwner)
	if err != nil {
		return nil, err
	}

	if input.Amount == nil {
		return nil, domainerror.Validation(domainerror.CodeContributionAmount, validation.AmountMessage("Amount"))
	}
	amount, err := validation.PositiveAmount(*input.Amount, "Amount", domainerror.CodeContributionAmount)
	if err != nil {
		return nil, err
	}

	var description *string
	if input.Description != nil {
		d, err := validation.OptionalString(*input.Description, validation.MaxDescriptionLength,
			"Description", domainerror.CodeContributionDescTooLong)
		if err != nil {
			return nil, err
		}
		if d != "" {
			description = &d
		}
	}

	contribution := entity.NewContribution(goal.ID, amount, description, input.UserID)

	updated, err := uc.goalRepo.AddContribution(ctx, contribution)
	if err != nil {
		if errors.Is(err, domainerror.ErrRecordNotFound) || errors.Is(err, domainerror.ErrForeignKeyViolation) {
			return nil, domainerror.NotFound(domainerror.CodeGoalNotFound, domainerror.MsgGoalNotFoundOrDeleted, err)
		}
		return nil, fmt.Errorf("failed to add contribution: %w", err)
	}

	if updated.ReachedBy(amount) {
		uc.notifyGoalReached(ctx, input, updated)
	}

	return &AddContributionOutput{
		Contribution: contribution,
		Goal:         updated,
	}, nil
}

// notifyGoalReached queues the goal reached email. Failures are logged only;
// the contribution is already committed.
func (uc *AddContributionUseCase) notifyGoalReached(ctx context.Context, input AddContributionInput, goal *entity.Goal) {
	if uc.emailService == nil || input.UserEmail == "" {
		return
	}

	err := uc.emailService.QueueGoalReachedEmail(ctx, adapter.QueueGoalReachedInput{
		UserID:       input.UserID,
		UserEmail:    input.UserEmail,
		UserName:     input.UserName,
		GoalName:     goal.Name,
		TargetAmount: goal.TargetAmount.StringFixed(2),
		SavedAmount:  goal.SavedAmount.StringFixed(2),
	})
	if err != nil {
		slog.Warn("Failed to queue goal reached email", "goal_id", goal.ID, "user_id", input.UserID, "error", err)
	}
}
