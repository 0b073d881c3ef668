package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/spendly/backend/internal/domain/entity"
)

// SpendRepository defines the interface for spend persistence operations.
// Returned spends carry their category.
type SpendRepository interface {
	// Create creates a new spend in the database.
	Create(ctx context.Context, spend *entity.Spend) error

	// FindByID retrieves a spend by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Spend, error)

	// FindByOwner retrieves the user's spends matching the filter, newest first.
	FindByOwner(ctx context.Context, userID string, filter entity.SpendFilter) ([]*entity.Spend, error)

	// Update writes the mutable fields of an existing spend.
	Update(ctx context.Context, spend *entity.Spend) error

	// Delete soft-deletes a spend.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByCategory counts live spends that reference a category.
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
}
