package spend

import (
	"context"

	"github.com/spendly/backend/internal/application/adapter"
	"github.com/spendly/backend/internal/application/guard"
	"github.com/spendly/backend/internal/domain/entity"
)

// GetSpendInput represents the input for fetching one spend.
type GetSpendInput struct {
	SpendID string
	UserID  string
}

// GetSpendOutput represents the output of fetching one spend.
type GetSpendOutput struct {
	Spend *entity.Spend
}

// GetSpendUseCase fetches a single spend owned by the caller.
type GetSpendUseCase struct {
	spendRepo adapter.SpendRepository
}

// NewGetSpendUseCase creates a new GetSpendUseCase instance.
func NewGetSpendUseCase(spendRepo adapter.SpendRepository) *GetSpendUseCase {
	return &GetSpendUseCase{
		spendRepo: spendRepo,
	}
}

// Execute fetches the spend.
func (uc *GetSpendUseCase) Execute(ctx context.Context, input GetSpendInput) (*GetSpendOutput, error) {
	id, err := parseSpendID(input.SpendID)
	if err != nil {
		return nil, err
	}

	spend, err := guard.Owned(ctx, guard.SpendPolicy, id, input.UserID, guard.ActionAccess,
		uc.spendRepo.FindByID, guard.SpendOwner)
	if err != nil {
		return nil, err
	}

	return &GetSpendOutput{
		Spend: spend,
	}, nil
}
