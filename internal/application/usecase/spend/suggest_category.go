package spend

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/spendly/backend/internal/application/adapter"
	"github.com/spendly/backend/internal/application/validation"
	"github.com/spendly/backend/internal/domain/entity"
	domainerror "github.com/spendly/backend/internal/domain/error"
)

// SuggestCategoryInput represents the input for a category suggestion.
type SuggestCategoryInput struct {
	Description string
	Amount      *float64
	UserID      string
}

// SuggestCategoryOutput is the suggested category with the model's confidence.
type SuggestCategoryOutput struct {
	Category   *entity.Category
	Confidence float64
	Reasoning  string
}

// SuggestCategoryUseCase asks the AI service which accessible category fits a spend.
type SuggestCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	aiService    adapter.CategorySuggestionService
}

// NewSuggestCategoryUseCase creates a new SuggestCategoryUseCase instance.
func NewSuggestCategoryUseCase(
	categoryRepo adapter.CategoryRepository,
	aiService adapter.CategorySuggestionService,
) *SuggestCategoryUseCase {
	return &SuggestCategoryUseCase{
		categoryRepo: categoryRepo,
		aiService:    aiService,
	}
}

// Execute requests the suggestion.
func (uc *SuggestCategoryUseCase) Execute(ctx context.Context, input SuggestCategoryInput) (*SuggestCategoryOutput, error) {
	if !uc.aiService.IsAvailable() {
		return nil, domainerror.Unavailable(domainerror.CodeAIServiceUnavailable, domainerror.MsgAIServiceUnavailable, nil)
	}

	description, err := validation.NonEmptyString(input.Description, validation.MaxDescriptionLength,
		"Description", domainerror.CodeSuggestionDescriptionRequired)
	if err != nil {
		return nil, err
	}

	categories, err := uc.categoryRepo.FindAccessible(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if len(categories) == 0 {
		return nil, domainerror.Validation(domainerror.CodeSuggestionNoCategories, "No categories available to choose from")
	}

	request := &adapter.CategorySuggestionRequest{
		Description: description,
		Categories:  make([]*adapter.CategoryForAI, 0, len(categories)),
	}
	if input.Amount != nil {
		request.Amount = fmt.Sprintf("%.2f", *input.Amount)
	}
	for _, c := range categories {
		request.Categories = append(request.Categories, &adapter.CategoryForAI{ID: c.ID, Name: c.Name, Icon: c.Icon})
	}

	suggestion, err := uc.aiService.SuggestCategory(ctx, request)
	if err != nil {
		return nil, domainerror.Unavailable(domainerror.CodeAIServiceUnavailable, domainerror.MsgAIServiceUnavailable, err)
	}

	for _, c := range categories {
		if c.ID == suggestion.CategoryID {
			return &SuggestCategoryOutput{
				Category:   c,
				Confidence: clampConfidence(suggestion.Confidence),
				Reasoning:  strings.TrimSpace(suggestion.Reasoning),
			}, nil
		}
	}

	return nil, domainerror.Unavailable(domainerror.CodeAIInvalidResponse, domainerror.MsgAIServiceUnavailable,
		fmt.Errorf("model suggested unknown category %s", suggestion.CategoryID))
}

func clampConfidence(c float64) float64 {
	if math.IsNaN(c) {
		return 0
	}
	return math.Max(0, math.Min(1, c))
}
