package spend

import (
	"context"
	"errors"
	"fmt"

	"github.com/spendly/backend/internal/application/adapter"
	"github.com/spendly/backend/internal/application/guard"
	"github.com/spendly/backend/internal/domain/entity"
	domainerror "github.com/spendly/backend/internal/domain/error"
)

// DeleteSpendInput represents the input for spend deletion.
type DeleteSpendInput struct {
	SpendID string
	UserID  string
}

// DeleteSpendOutput represents the output of spend deletion.
type DeleteSpendOutput struct {
	Spend *entity.Spend
}

// DeleteSpendUseCase handles spend deletion logic.
type DeleteSpendUseCase struct {
	spendRepo adapter.SpendRepository
}

// NewDeleteSpendUseCase creates a new DeleteSpendUseCase instance.
func NewDeleteSpendUseCase(spendRepo adapter.SpendRepository) *DeleteSpendUseCase {
	return &DeleteSpendUseCase{
		spendRepo: spendRepo,
	}
}

// Execute performs the spend deletion.
func (uc *DeleteSpendUseCase) Execute(ctx context.Context, input DeleteSpendInput) (*DeleteSpendOutput, error) {
	id, err := parseSpendID(input.SpendID)
	if err != nil {
		return nil, err
	}

	spend, err := guard.Owned(ctx, guard.SpendPolicy, id, input.UserID, guard.ActionDelete,
		uc.spendRepo.FindByID, guard.SpendOwner)
	if err != nil {
		return nil, err
	}

	if err := uc.spendRepo.Delete(ctx, spend.ID); err != nil {
		if errors.Is(err, domainerror.ErrRecordNotFound) {
			return nil, domainerror.NotFound(domainerror.CodeSpendNotFound, domainerror.MsgSpendNotFoundOrDeleted, err)
		}
		return nil, fmt.Errorf("failed to delete spend: %w", err)
	}

	return &DeleteSpendOutput{
		Spend: spend,
	}, nil
}
