// Package spend contains spend-related use cases.
package spend

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendly/backend/internal/application/adapter"
	"github.com/spendly/backend/internal/application/validation"
	"github.com/spendly/backend/internal/domain/entity"
	domainerror "github.com/spendly/backend/internal/domain/error"
)

// CreateSpendInput represents the input for spend creation.
// Nil fields were absent from the request.
type CreateSpendInput struct {
	Amount        *float64
	Description   *string
	CategoryID    *string
	PaymentMethod *string
	Date          *string // Optional, defaults to now
	Notes         *string // Optional, defaults to ""
	UserID        string
}

// CreateSpendOutput represents the output of spend creation.
type CreateSpendOutput struct {
	Spend *entity.Spend
}

// CreateSpendUseCase handles spend creation logic.
type CreateSpendUseCase struct {
	spendRepo    adapter.SpendRepository
	categoryRepo adapter.CategoryRepository
	clock        adapter.Clock
}

// NewCreateSpendUseCase creates a new CreateSpendUseCase instance.
func NewCreateSpendUseCase(
	spendRepo adapter.SpendRepository,
	categoryRepo adapter.CategoryRepository,
	clock adapter.Clock,
) *CreateSpendUseCase {
	return &CreateSpendUseCase{
		spendRepo:    spendRepo,
		categoryRepo: categoryRepo,
		clock:        clock,
	}
}

// Execute performs the spend creation.
func (uc *CreateSpendUseCase) Execute(ctx context.Context, input CreateSpendInput) (*CreateSpendOutput, error) {
	if input.Amount == nil || input.Description == nil || input.CategoryID == nil || input.PaymentMethod == nil {
		return nil, domainerror.Validation(
			domainerror.CodeSpendAmountInvalid,
			validation.MissingFields("amount", "description", "categoryId", "paymentMethod"),
		)
	}

	amount, err := validateAmount(*input.Amount)
	if err != nil {
		return nil, err
	}
	method, err := validation.PaymentMethod(*input.PaymentMethod, domainerror.CodeSpendPaymentMethodInvalid)
	if err != nil {
		return nil, err
	}
	description, err := validateDescription(*input.Description)
	if err != nil {
		return nil, err
	}

	date := uc.clock.Now()
	if input.Date != nil {
		if date, err = validation.Date(*input.Date, "Date", domainerror.CodeSpendDateInvalid); err != nil {
			return nil, err
		}
	}

	notes := ""
	if input.Notes != nil {
		if notes, err = validateNotes(*input.Notes); err != nil {
			return nil, err
		}
	}

	category, err := accessibleCategory(ctx, uc.categoryRepo, *input.CategoryID, input.UserID)
	if err != nil {
		return nil, err
	}

	spend := entity.NewSpend(amount, description, category.ID, method, date, notes, input.UserID)

	if err := uc.spendRepo.Create(ctx, spend); err != nil {
		if errors.Is(err, domainerror.ErrForeignKeyViolation) {
			return nil, invalidCategory(err)
		}
		return nil, fmt.Errorf("failed to create spend: %w", err)
	}
	spend.Category = category

	return &CreateSpendOutput{
		Spend: spend,
	}, nil
}

// accessibleCategory loads the category a spend points at. Categories that are
// missing or owned by another user are reported the same way.
func accessibleCategory(ctx context.Context, repo adapter.CategoryRepository, rawID, userID string) (*entity.Category, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, invalidCategory(nil)
	}

	category, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrRecordNotFound) {
			return nil, invalidCategory(err)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	if !category.IsAccessibleBy(userID) {
		return nil, invalidCategory(nil)
	}

	return category, nil
}

func invalidCategory(err error) error {
	return domainerror.New(domainerror.KindValidation, domainerror.CodeSpendCategoryInvalid, domainerror.MsgInvalidCategory, err)
}

func validateAmount(value float64) (decimal.Decimal, error) {
	return validation.PositiveAmount(value, "Amount", domainerror.CodeSpendAmountInvalid)
}

func validateDescription(value string) (string, error) {
	return validation.NonEmptyString(value, validation.MaxDescriptionLength, "Description", domainerror.CodeSpendDescriptionRequired)
}

func validateNotes(value string) (string, error) {
	return validation.OptionalString(value, validation.MaxNotesLength, "Notes", domainerror.CodeSpendNotesTooLong)
}

func parseSpendID(raw string) (uuid.UUID, error) {
	return validation.ID(raw, "Spend", domainerror.CodeSpendIDRequired, domainerror.CodeSpendIDInvalid)
}
