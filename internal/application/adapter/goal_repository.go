// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/spendly/backend/internal/domain/entity"
)

// GoalRepository defines the interface for goal and contribution persistence operations.
type GoalRepository interface {
	// Create creates a new goal in the database.
	Create(ctx context.Context, goal *entity.Goal) error

	// FindByID retrieves a goal by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error)

	// FindByOwner retrieves all goals for a given user, newest first.
	FindByOwner(ctx context.Context, userID string) ([]*entity.Goal, error)

	// ExistsByName checks, case-insensitively, whether the user already has a goal with this name.
	ExistsByName(ctx context.Context, name, userID string, excludeID *uuid.UUID) (bool, error)

	// Update writes the mutable fields of an existing goal.
	Update(ctx context.Context, goal *entity.Goal) error

	// Delete soft-deletes a goal and removes its contributions in one transaction.
	Delete(ctx context.Context, id uuid.UUID) error

	// AddContribution inserts the contribution and increments the goal's saved
	// amount in one transaction, returning the goal as stored after the increment.
	AddContribution(ctx context.Context, contribution *entity.Contribution) (*entity.Goal, error)

	// FindContributions retrieves a goal's contributions, newest first.
	FindContributions(ctx context.Context, goalID uuid.UUID) ([]*entity.Contribution, error)
}
