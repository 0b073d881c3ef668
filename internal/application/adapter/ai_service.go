// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// CategorySuggestionRequest asks for the best category for a spend description.
type CategorySuggestionRequest struct {
	Description string
	Amount      string
	Categories  []*CategoryForAI
}

// CategoryForAI represents category data for AI processing.
type CategoryForAI struct {
	ID   uuid.UUID
	Name string
	Icon string
}

// CategorySuggestion is the model's choice among the offered categories.
type CategorySuggestion struct {
	CategoryID uuid.UUID
	Confidence float64
	Reasoning  string
}

// CategorySuggestionService defines the interface for AI category suggestions.
type CategorySuggestionService interface {
	// SuggestCategory picks one of the request's categories for the description.
	SuggestCategory(ctx context.Context, request *CategorySuggestionRequest) (*CategorySuggestion, error)

	// IsAvailable checks if the AI service is available and properly configured.
	IsAvailable() bool
}
