// Package category contains category-related use cases.
package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/spendly/backend/internal/application/adapter"
	"github.com/spendly/backend/internal/application/validation"
	"github.com/spendly/backend/internal/domain/entity"
	domainerror "github.com/spendly/backend/internal/domain/error"
)

// CreateCategoryInput represents the input for category creation.
// Nil fields were absent from the request.
type CreateCategoryInput struct {
	Name   *string
	Icon   *string
	Color  *string
	UserID string
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.Category
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	if input.Name == nil || input.Icon == nil || input.Color == nil {
		return nil, domainerror.Validation(
			domainerror.CodeCategoryNameRequired,
			validation.MissingFields("name", "icon", "color"),
		)
	}

	name, err := validateName(*input.Name)
	if err != nil {
		return nil, err
	}
	icon, err := validateIcon(*input.Icon)
	if err != nil {
		return nil, err
	}
	color, err := validation.HexColor(*input.Color, domainerror.CodeInvalidColorFormat)
	if err != nil {
		return nil, err
	}

	// Check if the name is taken among the user's and the system categories
	exists, err := uc.categoryRepo.ExistsByName(ctx, name, input.UserID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name existence: %w", err)
	}
	if exists {
		return nil, domainerror.Conflict(domainerror.CodeCategoryNameExists, domainerror.MsgCategoryNameExists, nil)
	}

	category := entity.NewCategory(name, icon, color, input.UserID)

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, domainerror.ErrUniqueViolation) {
			return nil, domainerror.Conflict(domainerror.CodeCategoryNameExists, domainerror.MsgCategoryNameExists, err)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &CreateCategoryOutput{
		Category: category,
	}, nil
}

func validateName(name string) (string, error) {
	return validation.NonEmptyString(name, validation.MaxNameLength, "Name", domainerror.CodeCategoryNameRequired)
}

func validateIcon(icon string) (string, error) {
	return validation.NonEmptyString(icon, validation.MaxIconLength, "Icon", domainerror.CodeCategoryIconRequired)
}

func parseCategoryID(raw string) (uuid.UUID, error) {
	return validation.ID(raw, "Category", domainerror.CodeCategoryIDRequired, domainerror.CodeCategoryIDInvalid)
}
