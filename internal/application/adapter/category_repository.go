// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/spendly/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
// Lookups return domainerror.ErrRecordNotFound when no live row matches.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindAccessible retrieves the user's categories together with system categories, sorted by name.
	FindAccessible(ctx context.Context, userID string) ([]*entity.Category, error)

	// ExistsByName checks, case-insensitively, whether a category name is taken
	// among the user's categories and system categories. excludeID skips one row (for renames).
	ExistsByName(ctx context.Context, name, userID string, excludeID *uuid.UUID) (bool, error)

	// Update writes the mutable fields of an existing category.
	Update(ctx context.Context, category *entity.Category) error

	// Delete soft-deletes a category.
	Delete(ctx context.Context, id uuid.UUID) error
}
