package spend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spendly/backend/internal/application/adapter"
	"github.com/spendly/backend/internal/application/validation"
	"github.com/spendly/backend/internal/domain/entity"
	domainerror "github.com/spendly/backend/internal/domain/error"
)

// ListSpendsInput represents the input for listing spends.
// Filters are raw query values; empty means unfiltered.
type ListSpendsInput struct {
	UserID        string
	CategoryID    string
	PaymentMethod string
	From          string
	To            string
}

// ListSpendsOutput represents the output of listing spends.
type ListSpendsOutput struct {
	Spends     []*entity.Spend
	TotalCount int
}

// ListSpendsUseCase lists the caller's spends, newest first.
type ListSpendsUseCase struct {
	spendRepo adapter.SpendRepository
}

// NewListSpendsUseCase creates a new ListSpendsUseCase instance.
func NewListSpendsUseCase(spendRepo adapter.SpendRepository) *ListSpendsUseCase {
	return &ListSpendsUseCase{
		spendRepo: spendRepo,
	}
}

// Execute lists the spends.
func (uc *ListSpendsUseCase) Execute(ctx context.Context, input ListSpendsInput) (*ListSpendsOutput, error) {
	filter, err := parseFilter(input)
	if err != nil {
		return nil, err
	}

	spends, err := uc.spendRepo.FindByOwner(ctx, input.UserID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list spends: %w", err)
	}

	return &ListSpendsOutput{
		Spends:     spends,
		TotalCount: len(spends),
	}, nil
}

func parseFilter(input ListSpendsInput) (entity.SpendFilter, error) {
	var filter entity.SpendFilter

	if raw := strings.TrimSpace(input.CategoryID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, invalidFilter("Invalid categoryId filter")
		}
		filter.CategoryID = &id
	}

	if raw := strings.TrimSpace(input.PaymentMethod); raw != "" {
		method, err := validation.PaymentMethod(raw, domainerror.CodeSpendFilterInvalid)
		if err != nil {
			return filter, err
		}
		filter.PaymentMethod = &method
	}

	if raw := strings.TrimSpace(input.From); raw != "" {
		from, ok := validation.ParseDate(raw)
		if !ok {
			return filter, invalidFilter("Invalid from date filter")
		}
		filter.From = &from
	}

	if raw := strings.TrimSpace(input.To); raw != "" {
		to, ok := validation.ParseDate(raw)
		if !ok {
			return filter, invalidFilter("Invalid to date filter")
		}
		if isDateOnly(raw) {
			// A bare date includes the whole day
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
		filter.To = &to
	}

	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return filter, invalidFilter("The from date must not be after the to date")
	}

	return filter, nil
}

func isDateOnly(raw string) bool {
	return len(raw) == len("2006-01-02")
}

func invalidFilter(message string) error {
	return domainerror.Validation(domainerror.CodeSpendFilterInvalid, message)
}
