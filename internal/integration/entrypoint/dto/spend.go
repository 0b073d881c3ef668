package dto

import (
	"time"

	"github.com/spendly/backend/internal/domain/entity"
)

// CreateSpendRequest represents the request body for spend creation.
type CreateSpendRequest struct {
	Amount        *float64 `json:"amount"`
	Description   *string  `json:"description"`
	CategoryID    *string  `json:"categoryId"`
	PaymentMethod *string  `json:"paymentMethod"`
	Date          *string  `json:"date,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
}

// UpdateSpendRequest represents the request body for spend update.
// Absent fields are left unchanged; explicit nulls are rejected.
type UpdateSpendRequest struct {
	Amount        *float64 `json:"amount,omitempty"`
	Description   *string  `json:"description,omitempty"`
	CategoryID    *string  `json:"categoryId,omitempty"`
	PaymentMethod *string  `json:"paymentMethod,omitempty"`
	Date          *string  `json:"date,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
}

// SuggestCategoryRequest represents the request body for a category suggestion.
type SuggestCategoryRequest struct {
	Description string   `json:"description"`
	Amount      *float64 `json:"amount,omitempty"`
}

// SpendResponse represents a single spend in API responses.
type SpendResponse struct {
	ID            string            `json:"id"`
	Amount        float64           `json:"amount"`
	Description   string            `json:"description"`
	CategoryID    string            `json:"categoryId"`
	Category      *CategoryResponse `json:"category"`
	PaymentMethod string            `json:"paymentMethod"`
	Date          time.Time         `json:"date"`
	Notes         string            `json:"notes"`
	CreatedByID   string            `json:"createdById"`
	UpdatedByID   string            `json:"updatedById"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// SpendEnvelope wraps a spend for single-resource endpoints.
type SpendEnvelope struct {
	Spend SpendResponse `json:"spend"`
}

// SpendListResponse represents the response for listing spends.
type SpendListResponse struct {
	Spends     []SpendResponse `json:"spends"`
	TotalCount int             `json:"totalCount"`
}

// SuggestionResponse is a suggested category for a spend description.
type SuggestionResponse struct {
	CategoryID   string  `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	Confidence   float64 `json:"confidence"`
	Reasoning    string  `json:"reasoning"`
}

// SuggestionEnvelope wraps a suggestion.
type SuggestionEnvelope struct {
	Suggestion SuggestionResponse `json:"suggestion"`
}

// ToSpendResponse converts a domain Spend entity to a SpendResponse DTO.
func ToSpendResponse(s *entity.Spend) SpendResponse {
	response := SpendResponse{
		ID:            s.ID.String(),
		Amount:        s.Amount.InexactFloat64(),
		Description:   s.Description,
		CategoryID:    s.CategoryID.String(),
		PaymentMethod: string(s.PaymentMethod),
		Date:          s.Date,
		Notes:         s.Notes,
		CreatedByID:   s.Owner.UserID(),
		UpdatedByID:   s.UpdatedByID,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}

	if s.Category != nil {
		cat := ToCategoryResponse(s.Category)
		response.Category = &cat
	}

	return response
}

// ToSpendListResponse converts a list of spends to SpendListResponse.
func ToSpendListResponse(list []*entity.Spend) SpendListResponse {
	spends := make([]SpendResponse, len(list))
	for i, s := range list {
		spends[i] = ToSpendResponse(s)
	}
	return SpendListResponse{
		Spends:     spends,
		TotalCount: len(spends),
	}
}

// ToSuggestionResponse converts a suggested category with its score.
func ToSuggestionResponse(cat *entity.Category, confidence float64, reasoning string) SuggestionResponse {
	return SuggestionResponse{
		CategoryID:   cat.ID.String(),
		CategoryName: cat.Name,
		Confidence:   confidence,
		Reasoning:    reasoning,
	}
}
