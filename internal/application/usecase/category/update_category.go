package category

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

// UpdateCategoryInput represents the input for category update.
// Nil fields are left unchanged.
type UpdateCategoryInput struct {
	CategoryID string
	Name       *string
	Icon       *string
	Color      *string
	UserID     string
}

// UpdateCategoryOutput represents the output of category update.
type UpdateCategoryOutput struct {
	Category *entity.Category
}

// UpdateCategoryUseCase handles category update logic.
type UpdateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	clock        adapter.Clock
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(categoryRepo adapter.CategoryRepository, clock adapter.Clock) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{
		categoryRepo: categoryRepo,
		clock:        clock,
	}
}

// Execute performs the category update.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	id, err := parseCategoryID(input.CategoryID)
	if err != nil {
		return nil, err
	}

	category, err := guard.Owned(ctx, guard.CategoryPolicy, id, input.UserID, guard.ActionUpdate,
		uc.categoryRepo.FindByID, guard.CategoryOwner)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name, err := validateName(*input.Name)
		if err != nil {
			return nil, err
		}

		if !strings.EqualFold(name, category.Name) {
			exists, err := uc.categoryRepo.ExistsByName(ctx, name, input.UserID, &category.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to check category name existence: %w", err)
			}
			if exists {
				return nil, domainerror.Conflict(domainerror.CodeCategoryNameExists, domainerror.MsgCategoryNameExists, nil)
			}
		}
		category.Name = name
	}

	if input.Icon != nil {
		icon, err := validateIcon(*input.Icon)
		if err != nil {
			return nil, err
		}
		category.Icon = icon
	}

	if input.Color != nil {
		color, err := validation.HexColor(*input.Color, domainerror.CodeInvalidColorFormat)
		if err != nil {
			return nil, err
		}
		category.Color = color
	}

	category.Touch(input.UserID, uc.clock.Now())

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		switch {
		case errors.Is(err, domainerror.ErrRecordNotFound):
			return nil, domainerror.NotFound(domainerror.CodeCategoryNotFound, domainerror.MsgCategoryNotFoundOrDeleted, err)
		case errors.Is(err, domainerror.ErrUniqueViolation):
			return nil, domainerror.Conflict(domainerror.CodeCategoryNameExists, domainerror.MsgCategoryNameExists, err)
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return &UpdateCategoryOutput{
		Category: category,
	}, nil
}
