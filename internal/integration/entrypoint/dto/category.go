package dto

import (
	"time"

	"github.com/spendly/backend/internal/domain/entity"
)

// systemOwnerLabel is the createdById shown for shared categories.
const systemOwnerLabel = entity.SystemOwnerID

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name  *string `json:"name"`
	Icon  *string `json:"icon"`
	Color *string `json:"color"`
}

// UpdateCategoryRequest represents the request body for category update.
// Absent fields are left unchanged; explicit nulls are rejected.
type UpdateCategoryRequest struct {
	Name  *string `json:"name,omitempty"`
	Icon  *string `json:"icon,omitempty"`
	Color *string `json:"color,omitempty"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	IsSystem    bool      `json:"isSystem"`
	CreatedByID string    `json:"createdById"`
	UpdatedByID string    `json:"updatedById"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CategoryEnvelope wraps a category for single-resource endpoints.
type CategoryEnvelope struct {
	Category CategoryResponse `json:"category"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
	TotalCount int                `json:"totalCount"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(cat *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          cat.ID.String(),
		Name:        cat.Name,
		Icon:        cat.Icon,
		Color:       cat.Color,
		IsSystem:    cat.Owner.IsSystem(),
		CreatedByID: ownerLabel(cat.Owner),
		UpdatedByID: cat.UpdatedByID,
		CreatedAt:   cat.CreatedAt,
		UpdatedAt:   cat.UpdatedAt,
	}
}

// ToCategoryListResponse converts a list of categories to CategoryListResponse.
func ToCategoryListResponse(cats []*entity.Category) CategoryListResponse {
	categories := make([]CategoryResponse, len(cats))
	for i, cat := range cats {
		categories[i] = ToCategoryResponse(cat)
	}
	return CategoryListResponse{
		Categories: categories,
		TotalCount: len(categories),
	}
}

func ownerLabel(owner entity.Owner) string {
	if owner.IsSystem() {
		return systemOwnerLabel
	}
	return owner.UserID()
}
