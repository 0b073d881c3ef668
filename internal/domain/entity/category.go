// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCategoryColor is the default color for categories.
const DefaultCategoryColor = "#6366F1"

// DefaultCategoryIcon is the default icon for categories.
const DefaultCategoryIcon = "tag"

// Category represents a spending category.
type Category struct {
	ID          uuid.UUID
	Name        string
	Icon        string
	Color       string
	Owner       Owner
	UpdatedByID string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // Soft-delete support
}

// NewCategory creates a new Category owned by the given user.
func NewCategory(name, icon, color string, createdBy string) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:          uuid.New(),
		Name:        name,
		Icon:        icon,
		Color:       color,
		Owner:       UserOwner(createdBy),
		UpdatedByID: createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsAccessibleBy reports whether the user may reference this category.
func (c *Category) IsAccessibleBy(userID string) bool {
	return c.Owner.IsSystem() || c.Owner.IsUser(userID)
}

// Touch records a modification by the given user.
func (c *Category) Touch(userID string, at time.Time) {
	c.UpdatedByID = userID
	c.UpdatedAt = at
}
