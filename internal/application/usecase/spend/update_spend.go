package spend

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

// UpdateSpendInput represents the input for spend update.
// Nil fields are left unchanged.
type UpdateSpendInput struct {
	SpendID       string
	Amount        *float64
	Description   *string
	CategoryID    *string
	PaymentMethod *string
	Date          *string
	Notes         *string
	UserID        string
}

// UpdateSpendOutput represents the output of spend update.
type UpdateSpendOutput struct {
	Spend *entity.Spend
}

// UpdateSpendUseCase handles spend update logic.
type UpdateSpendUseCase struct {
	spendRepo    adapter.SpendRepository
	categoryRepo adapter.CategoryRepository
	clock        adapter.Clock
}

// NewUpdateSpendUseCase creates a new UpdateSpendUseCase instance.
func NewUpdateSpendUseCase(
	spendRepo adapter.SpendRepository,
	categoryRepo adapter.CategoryRepository,
	clock adapter.Clock,
) *UpdateSpendUseCase {
	return &UpdateSpendUseCase{
		spendRepo:    spendRepo,
		categoryRepo: categoryRepo,
		clock:        clock,
	}
}

// Execute performs the spend update.
func (uc *UpdateSpendUseCase) Execute(ctx context.Context, input UpdateSpendInput) (*UpdateSpendOutput, error) {
	id, err := parseSpendID(input.SpendID)
	if err != nil {
		return nil, err
	}

	spend, err := guard.Owned(ctx, guard.SpendPolicy, id, input.UserID, guard.ActionUpdate,
		uc.spendRepo.FindByID, guard.SpendOwner)
	if err != nil {
		return nil, err
	}

	if input.Amount != nil {
		if spend.Amount, err = validateAmount(*input.Amount); err != nil {
			return nil, err
		}
	}

	if input.Description != nil {
		if spend.Description, err = validateDescription(*input.Description); err != nil {
			return nil, err
		}
	}

	if input.CategoryID != nil {
		if strings.TrimSpace(*input.CategoryID) == "" {
			return nil, domainerror.Validation(domainerror.CodeSpendCategoryRequired, "Category ID must be a non-empty string")
		}
		category, err := accessibleCategory(ctx, uc.categoryRepo, strings.TrimSpace(*input.CategoryID), input.UserID)
		if err != nil {
			return nil, err
		}
		spend.CategoryID = category.ID
		spend.Category = category
	}

	if input.PaymentMethod != nil {
		if spend.PaymentMethod, err = validation.PaymentMethod(*input.PaymentMethod, domainerror.CodeSpendPaymentMethodInvalid); err != nil {
			return nil, err
		}
	}

	if input.Date != nil {
		if spend.Date, err = validation.Date(*input.Date, "Date", domainerror.CodeSpendDateInvalid); err != nil {
			return nil, err
		}
	}

	if input.Notes != nil {
		if spend.Notes, err = validateNotes(*input.Notes); err != nil {
			return nil, err
		}
	}

	spend.Touch(input.UserID, uc.clock.Now())

	if err := uc.spendRepo.Update(ctx, spend); err != nil {
		switch {
		case errors.Is(err, domainerror.ErrRecordNotFound):
			return nil, domainerror.NotFound(domainerror.CodeSpendNotFound, domainerror.MsgSpendNotFoundOrDeleted, err)
		case errors.Is(err, domainerror.ErrForeignKeyViolation):
			return nil, invalidCategory(err)
		}
		return nil, fmt.Errorf("failed to update spend: %w", err)
	}

	// Re-read so the embedded category reflects its current state
	updated, err := uc.spendRepo.FindByID(ctx, spend.ID)
	if err != nil {
		if errors.Is(err, domainerror.ErrRecordNotFound) {
			return nil, domainerror.NotFound(domainerror.CodeSpendNotFound, domainerror.MsgSpendNotFoundOrDeleted, err)
		}
		return nil, fmt.Errorf("failed to reload spend: %w", err)
	}

	return &UpdateSpendOutput{
		Spend: updated,
	}, nil
}
