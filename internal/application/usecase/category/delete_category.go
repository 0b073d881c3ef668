package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/spendly/backend/internal/application/adapter"
	"github.com/spendly/backend/internal/application/guard"
	"github.com/spendly/backend/internal/domain/entity"
	domainerror "github.com/spendly/backend/internal/domain/error"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	CategoryID string
	UserID     string
}

// DeleteCategoryOutput represents the output of category deletion.
type DeleteCategoryOutput struct {
	Category *entity.Category
}

// DeleteCategoryUseCase handles category deletion logic.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	spendRepo    adapter.SpendRepository
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(categoryRepo adapter.CategoryRepository, spendRepo adapter.SpendRepository) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo: categoryRepo,
		spendRepo:    spendRepo,
	}
}

// Execute performs the category deletion. Categories still referenced by spends are kept.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) (*DeleteCategoryOutput, error) {
	id, err := parseCategoryID(input.CategoryID)
	if err != nil {
		return nil, err
	}

	category, err := guard.Owned(ctx, guard.CategoryPolicy, id, input.UserID, guard.ActionDelete,
		uc.categoryRepo.FindByID, guard.CategoryOwner)
	if err != nil {
		return nil, err
	}

	count, err := uc.spendRepo.CountByCategory(ctx, category.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count category spends: %w", err)
	}
	if count > 0 {
		return nil, domainerror.Conflict(domainerror.CodeCategoryInUse, domainerror.MsgCategoryInUse, nil)
	}

	if err := uc.categoryRepo.Delete(ctx, category.ID); err != nil {
		switch {
		case errors.Is(err, domainerror.ErrRecordNotFound):
			return nil, domainerror.NotFound(domainerror.CodeCategoryNotFound, domainerror.MsgCategoryNotFoundOrDeleted, err)
		case errors.Is(err, domainerror.ErrForeignKeyViolation):
			return nil, domainerror.Conflict(domainerror.CodeCategoryInUse, domainerror.MsgCategoryInUse, err)
		}
		return nil, fmt.Errorf("failed to delete category: %w", err)
	}

	return &DeleteCategoryOutput{
		Category: category,
	}, nil
}
